// Package shared provides common utility functions used across multiple
// packages in the widget-installer codebase.
package shared

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// NormalizeSpace collapses every run of white space into a single space
// and trims the result.
func NormalizeSpace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// ClipString shortens value to at most limit runes. When the value is
// clipped and marker is non-empty, the marker replaces the tail so the
// result still fits in limit runes.
func ClipString(value string, limit int, marker string) string {
	if limit <= 0 || utf8.RuneCountInString(value) <= limit {
		return value
	}
	keep := limit
	markerLen := utf8.RuneCountInString(marker)
	if markerLen < limit {
		keep = limit - markerLen
	} else {
		marker = ""
	}
	runes := []rune(value)
	return string(runes[:keep]) + marker
}

// ErrorMessage returns the builder message of an errbuilder error, or the
// plain error text for anything else.
func ErrorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
