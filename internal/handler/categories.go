package handler

import (
	"net/http"
	"strings"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) categoriesPosts(c *gin.Context) {
	user := h.getUserFromRequest(c)
	slug := strings.TrimSpace(c.Param("slug"))

	category, page, err := h.services.Post.ListCategory(c.Request.Context(), slug, user, requestTime(c), pageFromQuery(c))
	if err != nil {
		h.respondError(c, err, 0)
		return
	}

	c.JSON(http.StatusOK, dto.CategoryPostsResponse{
		Category: *category,
		Page:     page,
	})
}

func (h *Handler) categoriesCreate(c *gin.Context) {
	var input dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	category, err := h.services.Category.Create(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err, 0)
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *Handler) categoriesSetPublished(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))

	var input dto.SetPublishedRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	category, err := h.services.Category.SetPublished(c.Request.Context(), slug, *input.IsPublished)
	if err != nil {
		h.respondError(c, err, 0)
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *Handler) locationsCreate(c *gin.Context) {
	var input dto.CreateLocationRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	location, err := h.services.Location.Create(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err, 0)
		return
	}

	c.JSON(http.StatusCreated, location)
}

func (h *Handler) locationsSetPublished(c *gin.Context) {
	locationID, err := paramInt64(c, "locationID")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	var input dto.SetPublishedRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	location, err := h.services.Location.SetPublished(c.Request.Context(), locationID, *input.IsPublished)
	if err != nil {
		h.respondError(c, err, 0)
		return
	}

	c.JSON(http.StatusOK, location)
}
