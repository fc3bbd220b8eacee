package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID generates an opaque identifier in the format <prefix>-<uuid>
func NewID(prefix string) string {
	if prefix == "" {
		return uuid.NewString()
	}
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}
