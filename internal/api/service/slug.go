package service

import (
	"regexp"
	"strings"
)

var (
	slugWhitespace = regexp.MustCompile(`\s+`)
	slugStripped   = regexp.MustCompile(`[*+~.()'"!:@]`)
	slugDashes     = regexp.MustCompile(`-{2,}`)
)

// Slugify derives a URL-safe identifier from a display name: lowercase,
// whitespace runs become a single dash, and *+~.()'"!:@ are stripped. The
// result is recomputed from scratch whenever a name changes so equal names
// always yield equal slugs.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugWhitespace.ReplaceAllString(s, "-")
	s = slugStripped.ReplaceAllString(s, "")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
