package errors

import (
	"maps"
	"slices"
	"strings"
	"unicode"
)

// MaxLabelLength bounds header labels accepted from definition files and API requests.
const MaxLabelLength = 256

// MaxColumns bounds the leaf column count of a definition, whether given
// explicitly or inferred from the widest row.
const MaxColumns = 4096

// MaxLevels bounds the number of header levels in a definition.
const MaxLevels = 64

// ValidateLabel checks a header label for length and control characters.
// Empty labels are valid; they render as blank header cells.
func ValidateLabel(label string) error {
	if len(label) > MaxLabelLength {
		return New(ErrCodeInvalidHeader, "label too long (max %d characters)", MaxLabelLength)
	}
	for _, r := range label {
		if unicode.IsControl(r) && r != '\n' {
			return New(ErrCodeInvalidHeader, "label %q contains control characters", label)
		}
	}
	return nil
}

// ValidatePath validates a file path handed to an importer or exporter.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateWidth rejects leaf column counts above MaxColumns.
func ValidateWidth(columns int) error {
	if columns > MaxColumns {
		return New(ErrCodeInvalidInput, "too many columns: %d (max %d)", columns, MaxColumns)
	}
	return nil
}

// ValidateDepth rejects definitions with more than MaxLevels header levels.
func ValidateDepth(levels int) error {
	if levels > MaxLevels {
		return New(ErrCodeInvalidInput, "too many header levels: %d (max %d)", levels, MaxLevels)
	}
	return nil
}

// ValidateColumns checks that every column index lies in [0, count).
func ValidateColumns(columns []int, count int) error {
	for _, c := range columns {
		if c < 0 || c >= count {
			return New(ErrCodeInvalidInput, "column %d out of range [0, %d)", c, count)
		}
	}
	return nil
}

// ValidateFormat checks format against the set of supported names.
func ValidateFormat(format string, valid map[string]bool) error {
	if !valid[format] {
		names := slices.Sorted(maps.Keys(valid))
		return New(ErrCodeInvalidFormat, "invalid format: %s (supported: %s)", format, strings.Join(names, ", "))
	}
	return nil
}
