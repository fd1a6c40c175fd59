package shared

import (
	"strings"

	"golang.org/x/text/language"
)

// CanonicalLanguage returns the BCP 47 canonical form of an xml:lang
// value. The boolean is false when the tag could not be parsed; the value
// is then returned lower-cased so equal spellings still share a key.
func CanonicalLanguage(value string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", true
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return strings.ToLower(trimmed), false
	}
	return tag.String(), true
}
