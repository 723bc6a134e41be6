package dto

type CreateCategoryRequest struct {
	Title       string `json:"title" binding:"required,max=256"`
	Description string `json:"description" binding:"required"`
	Slug        string `json:"slug" binding:"omitempty,max=64"`
	IsPublished *bool  `json:"is_published"`
}

type CreateLocationRequest struct {
	Name        string `json:"name" binding:"required,max=256"`
	IsPublished *bool  `json:"is_published"`
}

type SetPublishedRequest struct {
	IsPublished *bool `json:"is_published" binding:"required"`
}

func published(flag *bool) bool {
	return flag == nil || *flag
}

func (r CreateCategoryRequest) Published() bool {
	return published(r.IsPublished)
}

func (r CreateLocationRequest) Published() bool {
	return published(r.IsPublished)
}
