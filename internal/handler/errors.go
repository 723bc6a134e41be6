package handler

import (
	"errors"
	"net/http"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/service"
	"github.com/gin-gonic/gin"
)

var (
	errNotAuthorized = errors.New("user is not authorized")
	errNoAccess      = errors.New("no access")
	errInvalidPostID = errors.New("invalid post ID")
	errInvalidID     = errors.New("invalid ID")
)

func redirect(c *gin.Context, code int, location string, ok bool, details string) {
	c.Header("Location", location)
	c.JSON(code, dto.NewRedirectResponse(ok, details, location))
}

// respondError turns a service error into a response. A denied mutation
// sends the viewer back to the post it was aimed at.
func (h *Handler) respondError(c *gin.Context, err error, postID int64) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, service.ErrNotFound.Error()))
	case errors.Is(err, service.ErrDenied):
		redirect(c, http.StatusSeeOther, postDetailPath(postID), false, err.Error())
	case errors.Is(err, service.ErrInvalidReference),
		errors.Is(err, service.ErrSlugTaken),
		errors.Is(err, service.ErrInvalidSlug),
		errors.Is(err, service.ErrEmptyComment):
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
	case errors.Is(err, service.ErrFailedToFetchUser):
		c.JSON(http.StatusBadGateway, dto.NewBasicResponse(false, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, service.ErrInternal.Error()))
	}
}
