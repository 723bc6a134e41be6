package model

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID          int64     `json:"id"`
	AuthorID    uuid.UUID `json:"author_id"`
	CategoryID  *int64    `json:"category_id"`
	LocationID  *int64    `json:"location_id"`
	Title       string    `json:"title"`
	Text        string    `json:"text"`
	Image       *string   `json:"image"`
	PubDate     time.Time `json:"pub_date"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}

// FullPost is a post joined with everything a listing shows next to it.
type FullPost struct {
	Post         Post          `json:"post"`
	Author       UserAuthor    `json:"author"`
	Category     *PostCategory `json:"category"`
	Location     *PostLocation `json:"location"`
	CommentCount int64         `json:"comment_count"`
}

type PostDetail struct {
	Post     FullPost       `json:"post"`
	Comments []*FullComment `json:"comments"`
}

// PostFilter narrows a post query. Zero value matches every post.
type PostFilter struct {
	// VisibleAt keeps only posts a non-owner may read at that instant.
	VisibleAt *time.Time
	// ViewerID re-admits the viewer's own posts when VisibleAt is set.
	ViewerID   *uuid.UUID
	CategoryID *int64
	AuthorID   *uuid.UUID
}

// Match applies the filter to an already loaded post.
func (f PostFilter) Match(p *FullPost) bool {
	if f.CategoryID != nil && (p.Post.CategoryID == nil || *p.Post.CategoryID != *f.CategoryID) {
		return false
	}
	if f.AuthorID != nil && p.Post.AuthorID != *f.AuthorID {
		return false
	}
	if f.VisibleAt == nil {
		return true
	}
	if f.ViewerID != nil && p.Post.AuthorID == *f.ViewerID {
		return true
	}
	return p.IsPublic(*f.VisibleAt)
}

// IsPublic reports whether anyone may read the post at now.
func (p *FullPost) IsPublic(now time.Time) bool {
	if !p.Post.IsPublished {
		return false
	}
	if p.Category != nil && !p.Category.IsPublished {
		return false
	}
	return !p.Post.PubDate.After(now)
}
