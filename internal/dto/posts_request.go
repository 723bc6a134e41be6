package dto

import "time"

type PostRequest struct {
	Title       string    `json:"title" binding:"required,max=256"`
	Text        string    `json:"text" binding:"required"`
	PubDate     time.Time `json:"pub_date" binding:"required"`
	CategoryID  *int64    `json:"category_id"`
	LocationID  *int64    `json:"location_id"`
	Image       *string   `json:"image" binding:"omitempty,url"`
	IsPublished *bool     `json:"is_published"`
}

// Published defaults to true when the client leaves the flag out.
func (r PostRequest) Published() bool {
	return published(r.IsPublished)
}
