package errors

import "unicode"

// maxSnapshotNameLen bounds snapshot names so they stay usable as file
// names and store keys across backends.
const maxSnapshotNameLen = 128

// ValidateSnapshotName validates a snapshot name for safety and correctness.
// Names are used as file names (file store), Redis keys, and Mongo document
// IDs, so the rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateSnapshotName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "snapshot name cannot be empty")
	}
	if len(name) > maxSnapshotNameLen {
		return New(ErrCodeInvalidName, "snapshot name too long (max %d characters)", maxSnapshotNameLen)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "snapshot name contains control characters")
		}
		switch r {
		case '/', '\\', 0:
			return New(ErrCodeInvalidName, "snapshot name contains path separators")
		}
	}
	if name == "." || name == ".." {
		return New(ErrCodeInvalidName, "snapshot name cannot be a path component")
	}
	return nil
}
