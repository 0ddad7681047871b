// Package validation normalizes and validates UUID input before it reaches
// the cache or search layers.
package validation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidUUID is returned for input that is not a UUID in either the
// hyphenated 8-4-4-4-12 form or the bare 32-hex form.
var ErrInvalidUUID = errors.New("invalid UUID format")

// UUIDPattern matches hyphenated and bare UUID forms, case-insensitive.
var UUIDPattern = regexp.MustCompile(
	`^[0-9a-fA-F]{8}-?[0-9a-fA-F]{4}-?[0-9a-fA-F]{4}-?[0-9a-fA-F]{4}-?[0-9a-fA-F]{12}$`,
)

// NormalizeUUID validates raw and returns the canonical lowercase hyphenated
// 36-character form. Normalizing an already-normalized UUID is a no-op.
func NormalizeUUID(raw string) (string, error) {
	if !UUIDPattern.MatchString(raw) {
		return "", ErrInvalidUUID
	}

	id, err := uuid.Parse(strings.ToLower(strings.ReplaceAll(raw, "-", "")))
	if err != nil {
		return "", ErrInvalidUUID
	}
	return id.String(), nil
}
