package dto

import "github.com/BloggingApp/blog-service/internal/model"

type CategoryPostsResponse struct {
	Category model.Category               `json:"category"`
	Page     *model.Page[*model.FullPost] `json:"page"`
}

type ProfileResponse struct {
	Profile model.UserAuthor             `json:"profile"`
	Page    *model.Page[*model.FullPost] `json:"page"`
}
