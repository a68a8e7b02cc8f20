// Package utils contains general helper functions used across the projsnap tools.
package utils

import (
	"path/filepath"
	"strings"
)

const (
	pathSegmentSeparator = "/"
	currentDirectory     = "."
)

// RelativeSlashPath returns fullPath relative to root using forward slashes and no
// leading "./". It returns "." when both resolve to the same directory and the cleaned
// fullPath when no relative form exists.
func RelativeSlashPath(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	cleanRoot := filepath.Clean(root)
	if cleanPath == cleanRoot {
		return currentDirectory
	}
	relativePath, relErr := filepath.Rel(cleanRoot, cleanPath)
	if relErr != nil {
		return filepath.ToSlash(cleanPath)
	}
	return strings.TrimPrefix(filepath.ToSlash(relativePath), currentDirectory+pathSegmentSeparator)
}
