package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/service"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesPosts(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/categories/travel/posts?page=3", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "travel", env.posts.lastList.slug)
	assert.Equal(t, 3, env.posts.lastList.page)

	var resp dto.CategoryPostsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "travel", resp.Category.Slug)
}

func TestCategoriesPostsNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.posts.err = service.ErrNotFound

	w := env.do(http.MethodGet, "/api/v1/categories/hidden/posts", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoriesCreateRequiresModerator(t *testing.T) {
	env := newTestEnv(t)
	_, userToken := env.user(t, "alice", "user")
	_, modToken := env.user(t, "mod", "mod")
	body := map[string]string{"title": "Travel", "description": "trips"}

	w := env.do(http.MethodPost, "/api/v1/categories", userToken, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(http.MethodPost, "/api/v1/categories", "", body)
	assert.Equal(t, http.StatusFound, w.Code)

	w = env.do(http.MethodPost, "/api/v1/categories", modToken, body)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCategoriesCreateModeratorTokenWithoutID(t *testing.T) {
	env := newTestEnv(t)
	token := signToken(t, jwt.MapClaims{
		"role": "mod",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	w := env.do(http.MethodPost, "/api/v1/categories", token, map[string]string{"title": "Travel", "description": "trips"})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login?next="+url.QueryEscape("/api/v1/categories"), w.Header().Get("Location"))
}

func TestCategoriesSetPublished(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.user(t, "admin", "ADMIN")

	w := env.do(http.MethodPatch, "/api/v1/categories/travel", token, map[string]bool{"is_published": false})
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodPatch, "/api/v1/categories/travel", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPatch, "/api/v1/categories/missing", token, map[string]bool{"is_published": true})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLocations(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.user(t, "mod", "mod")

	w := env.do(http.MethodPost, "/api/v1/locations", token, map[string]string{"name": "Lisbon"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = env.do(http.MethodPatch, "/api/v1/locations/1", token, map[string]bool{"is_published": false})
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodPatch, "/api/v1/locations/one", token, map[string]bool{"is_published": false})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileHidesEmail(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/profile/alice", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", env.posts.lastList.username)
	assert.NotContains(t, w.Body.String(), "hidden@example.com")
}

func TestProfileNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.posts.err = service.ErrNotFound

	w := env.do(http.MethodGet, "/api/v1/profile/nobody", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}
