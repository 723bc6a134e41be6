package service

import "errors"

var (
	ErrInternal          = errors.New("internal server error")
	ErrNotFound          = errors.New("not found")
	ErrDenied            = errors.New("only the author can change this")
	ErrInvalidReference  = errors.New("category or location does not exist")
	ErrSlugTaken         = errors.New("slug is already taken")
	ErrInvalidSlug       = errors.New("slug may contain only latin letters, digits, hyphens and underscores")
	ErrFailedToFetchUser = errors.New("failed to fetch user")
	ErrEmptyComment      = errors.New("comment text is empty")
)
