package shared

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"golang.org/x/net/idna"
)

// ValidateIRI reports whether value is an absolute IRI: valid UTF-8, no
// white space or control characters, a scheme, and a host that survives
// IDNA lookup processing when one is present.
func ValidateIRI(value string) error {
	if value == "" {
		return invalidIRI(value, "empty value")
	}
	if !utf8.ValidString(value) {
		return invalidIRI(value, "not valid UTF-8")
	}
	for _, r := range value {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return invalidIRI(value, "contains white space or control characters")
		}
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid IRI %q", value)).
			WithCause(err)
	}
	if parsed.Scheme == "" {
		return invalidIRI(value, "missing scheme")
	}
	if host := parsed.Hostname(); host != "" {
		if err := ValidateHost(host); err != nil {
			return err
		}
	}
	return nil
}

// ValidateOrigin checks an IRI that must name a scheme and a host, such
// as an access origin.
func ValidateOrigin(value string) error {
	if err := ValidateIRI(value); err != nil {
		return err
	}
	parsed, _ := url.Parse(value)
	if parsed.Host == "" {
		return invalidIRI(value, "missing host")
	}
	return nil
}

// ValidateHost checks a bare host name or IP literal.
func ValidateHost(host string) error {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
	if net.ParseIP(trimmed) != nil {
		return nil
	}
	if _, err := idna.Lookup.ToASCII(host); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid host %q", host)).
			WithCause(err)
	}
	return nil
}

func invalidIRI(value string, reason string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid IRI %q: %s", value, reason))
}
