package textutil

import "strings"

// pathUnsafeReplacer maps characters that would corrupt a library path to
// safe alternatives. Separators and colons become dashes so adjacent words
// stay readable; shell-hostile punctuation is dropped outright.
var pathUnsafeReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName makes an inferred title safe to use as a path segment.
// The result is trimmed of surrounding whitespace and never contains path
// separators, so a hostile or garbled title cannot escape the library root.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(pathUnsafeReplacer.Replace(name))
}

// CollapseWhitespace squeezes runs of whitespace down to single spaces and
// trims the ends.
func CollapseWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
