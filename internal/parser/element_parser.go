// Package parser drives a grammar of element parsers over a stream of XML
// pull events. Each open element owns one ElementParser on an explicit
// stack; parsers commit their findings in Verify when the element closes.
package parser

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"widget-installer/internal/types"
)

// ElementParser is the grammar node for one recognised XML element.
type ElementParser interface {
	// AcceptElement is called once with the element's own opening tag.
	AcceptElement(element types.XMLElement) error
	// AcceptAttribute is called for each attribute of the opening tag, in
	// document order.
	AcceptAttribute(attribute types.XMLAttribute) error
	// AcceptText may be called several times; text can arrive in chunks.
	AcceptText(text types.XMLText) error
	// ChildParser resolves the parser for a nested element.
	ChildParser(namespace string, name string) (Factory, error)
	// Verify runs exactly once when the element closes.
	Verify() error
}

type Factory func() ElementParser

// Errorf builds the structural error every grammar violation surfaces as.
func Errorf(format string, args ...any) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf(format, args...))
}

// IsStructuralError reports whether err is a configuration parse failure.
func IsStructuralError(err error) bool {
	return err != nil && errbuilder.CodeOf(err) == errbuilder.CodeInvalidArgument
}
