package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a 32-char hex id, the string primary key used everywhere.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
