package types

type XMLEventKind int

const (
	XMLEventStartElement XMLEventKind = iota
	XMLEventEndElement
	XMLEventText
)

func (k XMLEventKind) String() string {
	switch k {
	case XMLEventStartElement:
		return "start"
	case XMLEventEndElement:
		return "end"
	case XMLEventText:
		return "text"
	default:
		return "unknown"
	}
}

// XMLElement is an opening tag. Lang is the xml:lang in effect for the
// element, inherited from the nearest ancestor that declares one.
type XMLElement struct {
	Name      string
	Namespace string
	Lang      string
}

// XMLAttribute is one attribute of an opening tag. Prefix is only set for
// namespace declarations ("xmlns") and the xml namespace ("xml").
type XMLAttribute struct {
	Prefix    string
	Name      string
	Value     string
	Namespace string
	Lang      string
}

// XMLText is character data. Namespace and Lang are those of the enclosing
// element.
type XMLText struct {
	Value     string
	Namespace string
	Lang      string
}

// XMLEvent is one pull event. Depth is the nesting level of the element
// the event belongs to: the document element is at depth 0 and text
// directly inside an element at depth d is reported at depth d+1.
type XMLEvent struct {
	Kind       XMLEventKind
	Depth      int
	Element    XMLElement
	Attributes []XMLAttribute
	Text       XMLText
}
