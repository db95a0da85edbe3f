package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// textEntities restores the entities bluemonday adds for plain punctuation.
// Angle brackets stay escaped so encoded markup never turns back into tags.
var textEntities = strings.NewReplacer(
	"&amp;", "&",
	"&#34;", `"`,
	"&quot;", `"`,
	"&#39;", "'",
)

// SanitizeText strips every HTML tag from user supplied free text.
func SanitizeText(s string) string {
	return strings.TrimSpace(textEntities.Replace(strictPolicy.Sanitize(s)))
}

// SanitizeOptional applies SanitizeText to a patch field, keeping nil as nil.
func SanitizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := SanitizeText(*s)
	return &v
}
