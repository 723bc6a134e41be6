package postgres

import (
	"strconv"
	"strings"

	"github.com/BloggingApp/blog-service/internal/model"
)

// postFilterWhere renders filter as a WHERE clause over posts p joined with
// categories c. Placeholders continue after the args already passed in.
func postFilterWhere(filter model.PostFilter, args []interface{}) (string, []interface{}) {
	var conditions []string

	placeholder := func(value interface{}) string {
		args = append(args, value)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.VisibleAt != nil {
		public := "(p.is_published AND (p.category_id IS NULL OR c.is_published) AND p.pub_date <= " + placeholder(*filter.VisibleAt) + ")"
		if filter.ViewerID != nil {
			public = "(" + public + " OR p.author_id = " + placeholder(*filter.ViewerID) + ")"
		}
		conditions = append(conditions, public)
	}
	if filter.CategoryID != nil {
		conditions = append(conditions, "p.category_id = "+placeholder(*filter.CategoryID))
	}
	if filter.AuthorID != nil {
		conditions = append(conditions, "p.author_id = "+placeholder(*filter.AuthorID))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}
