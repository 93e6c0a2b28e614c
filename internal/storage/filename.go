package storage

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidName          = errors.New("invalid filename")
	ErrUnsupportedExtension = errors.New("unsupported file extension")
)

var filenamePattern = regexp.MustCompile(`(?i)^[a-z0-9._-]+\.(jpg|jpeg|png|gif)$`)

// ValidFilename reports whether name may be looked up in an upload root.
func ValidFilename(name string) bool {
	if strings.Contains(name, "..") {
		return false
	}
	return filenamePattern.MatchString(name)
}

// NewFilename builds prefix + random UUID + the lower-cased extension of original.
func NewFilename(prefix, original string) (string, error) {
	extension := strings.ToLower(filepath.Ext(original))
	name := prefix + uuid.New().String() + extension
	if !ValidFilename(name) {
		return "", ErrUnsupportedExtension
	}
	return name, nil
}
