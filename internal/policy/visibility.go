// Package policy decides which posts a viewer may read and which records a
// viewer may change. A nil viewer is an anonymous request.
package policy

import (
	"time"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/google/uuid"
)

func IsOwner(viewer *model.User, authorID uuid.UUID) bool {
	return viewer != nil && viewer.ID == authorID
}

// CanView reports whether viewer may read post at now.
func CanView(post *model.FullPost, viewer *model.User, now time.Time) bool {
	if IsOwner(viewer, post.Post.AuthorID) {
		return true
	}
	return post.IsPublic(now)
}

// Visible is CanView expressed as a query filter.
func Visible(viewer *model.User, now time.Time) model.PostFilter {
	filter := model.PostFilter{VisibleAt: &now}
	if viewer != nil {
		id := viewer.ID
		filter.ViewerID = &id
	}
	return filter
}

// Profile selects the posts shown on owner's profile page. The owner sees
// everything they wrote.
func Profile(viewer *model.User, owner *model.User, now time.Time) model.PostFilter {
	ownerID := owner.ID
	if IsOwner(viewer, owner.ID) {
		return model.PostFilter{AuthorID: &ownerID}
	}
	return model.PostFilter{VisibleAt: &now, AuthorID: &ownerID}
}

func InCategory(filter model.PostFilter, categoryID int64) model.PostFilter {
	filter.CategoryID = &categoryID
	return filter
}
