package handler

import (
	"net/http"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) commentsCreate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, err := paramInt64(c, "postID")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	var input dto.CommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	createdComment, err := h.services.Comment.Create(c.Request.Context(), postID, user, input)
	if err != nil {
		h.respondError(c, err, postID)
		return
	}

	location := postDetailPath(postID)
	resp := dto.NewRedirectResponse(true, "", location)
	resp.ID = &createdComment.ID

	c.Header("Location", location)
	c.JSON(http.StatusSeeOther, resp)
}

func (h *Handler) commentsEdit(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, err0 := paramInt64(c, "postID")
	commentID, err1 := paramInt64(c, "commentID")
	if err0 != nil || err1 != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	var input dto.CommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	if err := h.services.Comment.Edit(c.Request.Context(), postID, commentID, user, input); err != nil {
		h.respondError(c, err, postID)
		return
	}

	redirect(c, http.StatusSeeOther, postDetailPath(postID), true, "")
}

func (h *Handler) commentsDelete(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, err0 := paramInt64(c, "postID")
	commentID, err1 := paramInt64(c, "commentID")
	if err0 != nil || err1 != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	if err := h.services.Comment.Delete(c.Request.Context(), postID, commentID, user); err != nil {
		h.respondError(c, err, postID)
		return
	}

	redirect(c, http.StatusSeeOther, postDetailPath(postID), true, "")
}
