package parser

import "widget-installer/internal/types"

// IgnoringParser swallows an element and its whole subtree.
type IgnoringParser struct{}

func NewIgnoringParser() ElementParser {
	return IgnoringParser{}
}

func (IgnoringParser) AcceptElement(types.XMLElement) error     { return nil }
func (IgnoringParser) AcceptAttribute(types.XMLAttribute) error { return nil }
func (IgnoringParser) AcceptText(types.XMLText) error           { return nil }
func (IgnoringParser) Verify() error                            { return nil }

func (IgnoringParser) ChildParser(string, string) (Factory, error) {
	return NewIgnoringParser, nil
}

// DenyAllParser marks a position where no element may appear. It fails as
// soon as it is handed anything.
type DenyAllParser struct{}

func NewDenyAllParser() ElementParser {
	return DenyAllParser{}
}

func (DenyAllParser) AcceptElement(element types.XMLElement) error {
	return Errorf("element %q is not allowed here", element.Name)
}

func (DenyAllParser) AcceptAttribute(attribute types.XMLAttribute) error {
	return Errorf("attribute %q is not allowed here", attribute.Name)
}

func (DenyAllParser) AcceptText(types.XMLText) error {
	return Errorf("text content is not allowed here")
}

func (DenyAllParser) ChildParser(_ string, name string) (Factory, error) {
	return nil, Errorf("element %q is not allowed here", name)
}

func (DenyAllParser) Verify() error { return nil }
