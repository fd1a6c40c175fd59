package core

import (
	"strings"

	"github.com/rs/zerolog/log"

	"widget-installer/internal/parser"
	"widget-installer/internal/types"
)

// appControlParser collects one tizen:app-control. Its src and operation
// children are mandatory; uri and mime children may repeat.
type appControlParser struct {
	data         *types.ConfigData
	control      types.AppControl
	hasSrc       bool
	hasOperation bool
}

func newAppControlParser(data *types.ConfigData) *appControlParser {
	return &appControlParser{data: data}
}

func (p *appControlParser) AcceptElement(types.XMLElement) error {
	return nil
}

func (p *appControlParser) AcceptAttribute(types.XMLAttribute) error {
	return nil
}

func (p *appControlParser) AcceptText(types.XMLText) error {
	return nil
}

func (p *appControlParser) ChildParser(namespace string, name string) (parser.Factory, error) {
	if namespace != TizenWidgetNamespace {
		return parser.NewIgnoringParser, nil
	}
	switch name {
	case "src":
		return func() parser.ElementParser { return &appControlChildParser{element: name, commit: p.setSrc} }, nil
	case "operation":
		return func() parser.ElementParser { return &appControlChildParser{element: name, commit: p.setOperation} }, nil
	case "uri":
		return func() parser.ElementParser { return &appControlChildParser{element: name, commit: p.addURI} }, nil
	case "mime":
		return func() parser.ElementParser { return &appControlChildParser{element: name, commit: p.addMIME} }, nil
	}
	return parser.NewIgnoringParser, nil
}

func (p *appControlParser) setSrc(child *appControlChildParser) error {
	if p.hasSrc {
		return parser.Errorf("tizen:app-control must contain exactly one src element")
	}
	p.control.Src = child.name
	p.hasSrc = true
	if reload := child.value("reload"); reload != "" {
		p.control.Reload = boolAttribute("tizen:src", types.XMLAttribute{Name: "reload", Value: reload}, false)
	}
	switch disposition := child.value("disposition"); disposition {
	case "":
	case "window":
		p.control.Disposition = types.AppControlDispositionWindow
	case "inline":
		p.control.Disposition = types.AppControlDispositionInline
	default:
		log.Warn().Str("disposition", disposition).Msg("ignoring unknown app-control disposition")
	}
	return nil
}

func (p *appControlParser) setOperation(child *appControlChildParser) error {
	if p.hasOperation {
		return parser.Errorf("tizen:app-control must contain exactly one operation element")
	}
	p.control.Operation = child.name
	p.hasOperation = true
	return nil
}

func (p *appControlParser) addURI(child *appControlChildParser) error {
	p.control.URIs = appendUnique(p.control.URIs, child.name)
	return nil
}

func (p *appControlParser) addMIME(child *appControlChildParser) error {
	p.control.MIMEs = appendUnique(p.control.MIMEs, child.name)
	return nil
}

func (p *appControlParser) Verify() error {
	if !p.hasSrc {
		return parser.Errorf("tizen:app-control is missing the src element")
	}
	if !p.hasOperation {
		return parser.Errorf("tizen:app-control is missing the operation element")
	}
	for _, existing := range p.data.AppControls {
		if existing.Equal(p.control) {
			return parser.Errorf("tizen:app-control element is duplicated (src %q, operation %q)", p.control.Src, p.control.Operation)
		}
	}
	p.data.AppControls = append(p.data.AppControls, p.control)
	return nil
}

// appControlChildParser reads the name attribute of an app-control child
// and hands itself to commit once the element closes.
type appControlChildParser struct {
	attributeParser
	element string
	name    string
	commit  func(*appControlChildParser) error
}

func (p *appControlChildParser) Verify() error {
	p.name = p.value("name")
	if p.name == "" {
		return parser.Errorf("tizen:app-control %s element is missing the name attribute", p.element)
	}
	if p.element == "mime" {
		p.name = strings.ToLower(p.name)
	}
	return p.commit(p)
}
