// Package repo holds the gorm implementations of the domain repositories.
// Entity timestamps are stamped here, on the insert/update paths, instead of
// through model callbacks.
package repo

import (
	"strings"
	"time"
)

func touchInsert(createdAt, updatedAt *time.Time) {
	now := time.Now().UTC()
	*createdAt = now
	*updatedAt = now
}

func touchUpdate(updatedAt *time.Time) {
	*updatedAt = time.Now().UTC()
}

// IsDupKey detects a unique-constraint violation without depending on
// driver-specific error types (mysql and postgres word it differently).
func IsDupKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}
