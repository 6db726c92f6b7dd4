package identify

import (
	"regexp"
	"strings"
)

// releaseTagRe matches a leading release-site tag: "www.<host>" optionally
// wrapped in brackets or parentheses, followed by a dash separator.
// Examples: "www.example.com - ", "[www.site.org]-", "(WWW.Site.NET) - ".
var releaseTagRe = regexp.MustCompile(`(?i)^[\[(]?\s*www\.[^\s\])]+\s*[\])]?\s*-\s*`)

// Normalize strips leading release-site tags from a file or folder name and
// trims surrounding whitespace. Stripping repeats until no tag remains, which
// also makes the function idempotent.
func Normalize(name string) string {
	name = strings.TrimSpace(name)
	for {
		stripped := releaseTagRe.ReplaceAllString(name, "")
		stripped = strings.TrimSpace(stripped)
		if stripped == name {
			return name
		}
		name = stripped
	}
}
