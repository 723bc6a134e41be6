package handler

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// requestTimeMiddleware pins the clock every visibility check of this
// request is evaluated against.
func requestTimeMiddleware(c *gin.Context) {
	c.Set(requestTimeCtxKey, time.Now())
	c.Next()
}

func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()

	h.logger.Info(
		"request",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", c.Writer.Status()),
		zap.Duration("latency", time.Since(start)),
	)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func decodeAccessToken(accessToken string) (jwt.MapClaims, error) {
	if accessToken == "" {
		return nil, errNotAuthorized
	}
	return utils.DecodeJWT(accessToken, []byte(os.Getenv("ACCESS_SECRET")))
}

func (h *Handler) getUserDataFromClaims(c *gin.Context, claims jwt.MapClaims, accessToken string) (*model.User, error) {
	idString, ok := claims["id"].(string)
	if !ok {
		return nil, errNotAuthorized
	}
	id, err := uuid.Parse(idString)
	if err != nil {
		return nil, errNotAuthorized
	}

	return h.services.User.CreateOrGet(c.Request.Context(), id, accessToken)
}

func (h *Handler) redirectToLogin(c *gin.Context) {
	location := loginPath(c.Request.URL.RequestURI())
	redirect(c, http.StatusFound, location, false, errNotAuthorized.Error())
	c.Abort()
}

func (h *Handler) authMiddleware(c *gin.Context) {
	accessToken := bearerToken(c)
	claims, err := decodeAccessToken(accessToken)
	if err != nil {
		h.redirectToLogin(c)
		return
	}

	user, err := h.getUserDataFromClaims(c, claims, accessToken)
	if err != nil {
		if errors.Is(err, errNotAuthorized) {
			h.redirectToLogin(c)
			return
		}
		h.respondError(c, err, 0)
		c.Abort()
		return
	}

	c.Set(userCtxKey, *user)

	c.Next()
}

// notRequiredAuthMiddleware identifies the viewer when it can and lets
// anonymous requests through otherwise.
func (h *Handler) notRequiredAuthMiddleware(c *gin.Context) {
	accessToken := bearerToken(c)
	claims, err := decodeAccessToken(accessToken)
	if err != nil {
		c.Next()
		return
	}

	user, err := h.getUserDataFromClaims(c, claims, accessToken)
	if err != nil {
		h.logger.Warn(
			"serving authenticated request as anonymous",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.Next()
		return
	}

	c.Set(userCtxKey, *user)

	c.Next()
}

func (h *Handler) moderatorMiddleware(c *gin.Context) {
	accessToken := bearerToken(c)
	claims, err := decodeAccessToken(accessToken)
	if err != nil {
		h.redirectToLogin(c)
		return
	}

	role, _ := claims["role"].(string)
	role = strings.ToLower(role)
	if role != "mod" && role != "admin" {
		c.JSON(http.StatusForbidden, dto.NewBasicResponse(false, errNoAccess.Error()))
		c.Abort()
		return
	}

	user, err := h.getUserDataFromClaims(c, claims, accessToken)
	if err != nil {
		if errors.Is(err, errNotAuthorized) {
			h.redirectToLogin(c)
			return
		}
		h.respondError(c, err, 0)
		c.Abort()
		return
	}

	c.Set(userCtxKey, *user)

	c.Next()
}
