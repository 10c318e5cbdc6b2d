package tds

import (
	"regexp"
	"strings"
)

var (
	disallowedChars = regexp.MustCompile(`[^A-Za-z0-9_\- ]+`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
)

// Filename derives the uploaded file name from the item description:
// disallowed characters stripped, whitespace runs become single underscores.
func Filename(itemDescription string) string {
	s := disallowedChars.ReplaceAllString(itemDescription, "")
	s = whitespaceRuns.ReplaceAllString(strings.TrimSpace(s), "_")
	return s + "_TDS.pdf"
}
