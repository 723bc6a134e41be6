package handler

import (
	"net/http"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) postsIndex(c *gin.Context) {
	user := h.getUserFromRequest(c)

	page, err := h.services.Post.ListIndex(c.Request.Context(), user, requestTime(c), pageFromQuery(c))
	if err != nil {
		h.respondError(c, err, 0)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *Handler) postsGetByID(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, err := paramInt64(c, "postID")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	post, err := h.services.Post.GetDetail(c.Request.Context(), postID, user, requestTime(c))
	if err != nil {
		h.respondError(c, err, postID)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) postsCreate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	var input dto.PostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	createdPost, err := h.services.Post.Create(c.Request.Context(), user, input)
	if err != nil {
		h.respondError(c, err, 0)
		return
	}

	location := profilePath(user.Username)
	resp := dto.NewRedirectResponse(true, "", location)
	resp.ID = &createdPost.ID

	c.Header("Location", location)
	c.JSON(http.StatusSeeOther, resp)
}

func (h *Handler) postsEdit(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, err := paramInt64(c, "postID")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	var input dto.PostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	if err := h.services.Post.Edit(c.Request.Context(), postID, user, input); err != nil {
		h.respondError(c, err, postID)
		return
	}

	redirect(c, http.StatusSeeOther, postDetailPath(postID), true, "")
}

func (h *Handler) postsDelete(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, err := paramInt64(c, "postID")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	if err := h.services.Post.Delete(c.Request.Context(), postID, user); err != nil {
		h.respondError(c, err, postID)
		return
	}

	redirect(c, http.StatusSeeOther, indexPath(), true, "")
}
