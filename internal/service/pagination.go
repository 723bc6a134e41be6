package service

import "github.com/BloggingApp/blog-service/internal/model"

// pageBounds resolves a requested page number the way a standard paginator
// does: anything outside [1, pages] lands on the last page, and an empty
// result still has one (empty) page.
func pageBounds(requested int, total int, size int) (number int, offset int, pages int) {
	pages = (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}

	number = requested
	if number < 1 || number > pages {
		number = pages
	}

	return number, (number - 1) * size, pages
}

func newPage[T any](items []T, number int, size int, total int, pages int) *model.Page[T] {
	return &model.Page[T]{
		Items:       items,
		Number:      number,
		Size:        size,
		TotalItems:  total,
		TotalPages:  pages,
		HasNext:     number < pages,
		HasPrevious: number > 1,
	}
}
