package core

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"

	"widget-installer/internal/shared"
	"widget-installer/internal/types"
)

const (
	maxAttributeLength = 2048
	maxTextLength      = 8192
	truncationMarker   = "..."
)

// Unicode explicit directional formatting characters.
const (
	leftToRightEmbedding = '\u202A'
	rightToLeftEmbedding = '\u202B'
	popDirectional       = '\u202C'
	leftToRightOverride  = '\u202D'
	rightToLeftOverride  = '\u202E'
)

type direction int

const (
	directionNone direction = iota
	directionLTR
	directionRTL
	directionLRO
	directionRLO
)

func parseDirection(value string) (direction, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "ltr":
		return directionLTR, true
	case "rtl":
		return directionRTL, true
	case "lro":
		return directionLRO, true
	case "rlo":
		return directionRLO, true
	default:
		return directionNone, false
	}
}

func (d direction) apply(text string) string {
	var mark rune
	switch d {
	case directionLTR:
		mark = leftToRightEmbedding
	case directionRTL:
		mark = rightToLeftEmbedding
	case directionLRO:
		mark = leftToRightOverride
	case directionRLO:
		mark = rightToLeftOverride
	default:
		return text
	}
	return string(mark) + text + string(popDirectional)
}

// directionAttribute reads a dir attribute; unknown values keep the
// current direction.
func directionAttribute(current direction, element string, attribute types.XMLAttribute) direction {
	dir, ok := parseDirection(attribute.Value)
	if !ok {
		log.Warn().
			Str("element", element).
			Str("dir", attribute.Value).
			Msg("ignoring unknown text direction")
		return current
	}
	return dir
}

func normalizeAttribute(value string) string {
	return shared.ClipString(shared.NormalizeSpace(value), maxAttributeLength, "")
}

func normalizeText(value string) string {
	return shared.ClipString(shared.NormalizeSpace(value), maxTextLength, truncationMarker)
}

// isPlainAttribute reports whether the attribute carries no namespace.
func isPlainAttribute(attribute types.XMLAttribute) bool {
	return attribute.Namespace == "" && attribute.Prefix == ""
}

func parseBool(value string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

// boolAttribute parses a true/false attribute, logging and returning
// fallback for anything else.
func boolAttribute(element string, attribute types.XMLAttribute, fallback bool) bool {
	value, ok := parseBool(attribute.Value)
	if !ok {
		log.Warn().
			Str("element", element).
			Str("attribute", attribute.Name).
			Str("value", attribute.Value).
			Msg("ignoring non-boolean attribute value")
		return fallback
	}
	return value
}

// leadingDigits parses the decimal digits at the start of value and
// ignores whatever follows them.
func leadingDigits(value string) (int, bool) {
	trimmed := strings.TrimSpace(value)
	end := strings.IndexFunc(trimmed, func(r rune) bool { return !unicode.IsDigit(r) || r > unicode.MaxASCII })
	if end == -1 {
		end = len(trimmed)
	}
	if end == 0 {
		return 0, false
	}
	parsed, err := strconv.Atoi(trimmed[:end])
	if err != nil {
		return 0, false
	}
	return parsed, true
}

// positiveInt parses a strictly positive decimal integer.
func positiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

func appendUnique[T comparable](list []T, value T) []T {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}

func stringPtr(value string) *string {
	return &value
}
