package handler

import (
	"net/http"
	"strings"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/gin-gonic/gin"
)

func (h *Handler) profileGet(c *gin.Context) {
	user := h.getUserFromRequest(c)
	username := strings.TrimSpace(c.Param("username"))

	owner, page, err := h.services.Post.ListProfile(c.Request.Context(), username, user, requestTime(c), pageFromQuery(c))
	if err != nil {
		h.respondError(c, err, 0)
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{
		Profile: model.UserAuthor{
			ID:        owner.ID,
			Username:  owner.Username,
			FirstName: owner.FirstName,
			LastName:  owner.LastName,
		},
		Page: page,
	})
}
