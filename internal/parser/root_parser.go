package parser

import "widget-installer/internal/types"

// RootParser accepts exactly one top-level element and hands it to the
// grammar root built by newRoot. The namespace is left for the grammar
// root to check.
type RootParser[T ElementParser] struct {
	tag      string
	newRoot  func() T
	accepted bool
}

func NewRootParser[T ElementParser](tag string, newRoot func() T) *RootParser[T] {
	return &RootParser[T]{tag: tag, newRoot: newRoot}
}

func (p *RootParser[T]) ChildParser(_ string, name string) (Factory, error) {
	if name != p.tag {
		return nil, Errorf("expected root element %q, found %q", p.tag, name)
	}
	if p.accepted {
		return nil, Errorf("document has more than one root element: second %q", name)
	}
	p.accepted = true
	return func() ElementParser { return p.newRoot() }, nil
}

func (p *RootParser[T]) AcceptElement(types.XMLElement) error     { return nil }
func (p *RootParser[T]) AcceptAttribute(types.XMLAttribute) error { return nil }
func (p *RootParser[T]) AcceptText(types.XMLText) error           { return nil }
func (p *RootParser[T]) Verify() error                            { return nil }
