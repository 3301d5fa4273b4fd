package common

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrMalformedID    = errors.New("malformatted id")
)

// ParseID converts a path identifier into a record id. Anything that is not a
// well-formed UUID is a cast failure and returns ErrMalformedID.
func ParseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, ErrMalformedID
	}

	return id, nil
}
