package handler

import (
	"errors"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	apiPrefix = "/api/v1"

	userCtxKey        = "user"
	requestTimeCtxKey = "request-time"
)

type Handler struct {
	services *service.Service
	logger   *zap.Logger
}

func New(services *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(h.requestLogger, gin.Recovery(), requestTimeMiddleware)
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{viper.GetString("client.origin")},
		AllowMethods:     []string{"POST", "GET", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Location"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	v1 := r.Group(apiPrefix)
	{
		posts := v1.Group("/posts")
		{
			posts.GET("", h.notRequiredAuthMiddleware, h.postsIndex)
			posts.POST("", h.authMiddleware, h.postsCreate)

			post := posts.Group("/:postID")
			{
				post.GET("", h.notRequiredAuthMiddleware, h.postsGetByID)
				post.PUT("", h.authMiddleware, h.postsEdit)
				post.DELETE("", h.authMiddleware, h.postsDelete)

				comments := post.Group("/comments")
				{
					comments.POST("", h.authMiddleware, h.commentsCreate)
					comments.PUT("/:commentID", h.authMiddleware, h.commentsEdit)
					comments.DELETE("/:commentID", h.authMiddleware, h.commentsDelete)
				}
			}
		}

		categories := v1.Group("/categories")
		{
			categories.GET("/:slug/posts", h.notRequiredAuthMiddleware, h.categoriesPosts)
			categories.POST("", h.moderatorMiddleware, h.categoriesCreate)
			categories.PATCH("/:slug", h.moderatorMiddleware, h.categoriesSetPublished)
		}

		locations := v1.Group("/locations")
		{
			locations.POST("", h.moderatorMiddleware, h.locationsCreate)
			locations.PATCH("/:locationID", h.moderatorMiddleware, h.locationsSetPublished)
		}

		v1.GET("/profile/:username", h.notRequiredAuthMiddleware, h.profileGet)
	}

	return r
}

// getUserFromRequest returns nil for anonymous requests.
func (h *Handler) getUserFromRequest(c *gin.Context) *model.User {
	userReq, exists := c.Get(userCtxKey)
	if !exists {
		return nil
	}

	user, ok := userReq.(model.User)
	if !ok {
		return nil
	}

	return &user
}

func requestTime(c *gin.Context) time.Time {
	if t, ok := c.Get(requestTimeCtxKey); ok {
		if now, ok := t.(time.Time); ok {
			return now
		}
	}
	return time.Now()
}

// pageFromQuery treats a missing or non-numeric page as the first page. A
// number too large for int is still out of range and clamps like one.
func pageFromQuery(c *gin.Context) int {
	page, err := strconv.Atoi(strings.TrimSpace(c.Query("page")))
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return math.MaxInt
		}
		return 1
	}
	return page
}

func paramInt64(c *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
}

func indexPath() string {
	return apiPrefix + "/posts"
}

func postDetailPath(postID int64) string {
	return apiPrefix + "/posts/" + strconv.FormatInt(postID, 10)
}

func profilePath(username string) string {
	return apiPrefix + "/profile/" + url.PathEscape(username)
}

func loginPath(next string) string {
	return viper.GetString("auth.login-url") + "?next=" + url.QueryEscape(next)
}
