package service

import (
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile("[^a-z0-9]+")

const fallbackSlug = "category"

func slugify(text string) string {
	slug := strings.ToLower(text)
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 56 {
		slug = strings.Trim(slug[:56], "-")
	}
	if slug == "" {
		return fallbackSlug
	}
	return slug
}

var validSlug = regexp.MustCompile("^[-a-zA-Z0-9_]+$")
