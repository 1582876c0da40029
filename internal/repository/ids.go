package repository

import (
	"fmt"

	"github.com/google/uuid"
)

// ParseID validates a record identifier taken from a URL
func ParseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%q: %w", id, ErrInvalidID)
	}
	return parsed, nil
}

func newID() string {
	return uuid.New().String()
}
