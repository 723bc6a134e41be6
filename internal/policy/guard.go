package policy

import (
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/google/uuid"
)

type Decision int

const (
	Denied Decision = iota
	Allowed
)

func (d Decision) String() string {
	if d == Allowed {
		return "allowed"
	}
	return "denied"
}

// Authorize gates edits and deletes: only the author may change a record.
func Authorize(viewer *model.User, authorID uuid.UUID) Decision {
	if IsOwner(viewer, authorID) {
		return Allowed
	}
	return Denied
}
