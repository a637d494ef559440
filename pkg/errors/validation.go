package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateGraphName validates a stored graph's name for safety and
// correctness. Graph names become storage keys (and, in the file store,
// filename components), so the rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateGraphName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "graph name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidName, "graph name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "graph name contains control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidName, "graph name cannot contain path separators")
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidName, "graph name cannot contain traversal sequences (..)")
	}

	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidName, "graph name cannot be a hidden file")
	}

	return nil
}

// typeNameRegex matches registry type names: a lowercase category and name
// separated by a single slash, e.g. "math/add".
var typeNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*/[a-z0-9][a-z0-9-]*$`)

// ValidateTypeName validates a node type name of the "category/name" form
// used as the registry and persistence key.
func ValidateTypeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "type name cannot be empty")
	}

	if !typeNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid type name: %q", name)
	}

	return nil
}

// Render output formats accepted by the render surfaces.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// ValidateRenderFormat validates a requested render output format.
func ValidateRenderFormat(format string) error {
	switch format {
	case FormatDOT, FormatSVG:
		return nil
	case "":
		return New(ErrCodeInvalidFormat, "render format cannot be empty")
	default:
		return New(ErrCodeInvalidFormat, "unsupported render format: %q (want %s or %s)", format, FormatDOT, FormatSVG)
	}
}
