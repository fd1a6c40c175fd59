package core

import (
	"github.com/rs/zerolog/log"

	"widget-installer/internal/parser"
	"widget-installer/internal/types"
)

// accountParser builds the account-provider record. Only the first
// tizen:account element is kept.
type accountParser struct {
	data     *types.ConfigData
	provider types.AccountProvider
}

func newAccountParser(data *types.ConfigData) *accountParser {
	return &accountParser{data: data}
}

func (p *accountParser) AcceptElement(types.XMLElement) error {
	return nil
}

func (p *accountParser) AcceptAttribute(attribute types.XMLAttribute) error {
	if isPlainAttribute(attribute) && attribute.Name == "multiple-account-support" {
		p.provider.MultipleAccountSupport = boolAttribute("account", attribute, false)
	}
	return nil
}

func (p *accountParser) AcceptText(types.XMLText) error {
	return nil
}

func (p *accountParser) ChildParser(namespace string, name string) (parser.Factory, error) {
	if namespace != TizenWidgetNamespace {
		return parser.NewIgnoringParser, nil
	}
	switch name {
	case "icon":
		return func() parser.ElementParser { return &accountTextParser{commit: p.addIcon} }, nil
	case "display-name":
		return func() parser.ElementParser { return &accountTextParser{commit: p.addDisplayName} }, nil
	case "capability":
		return func() parser.ElementParser { return &accountTextParser{commit: p.addCapability} }, nil
	}
	return parser.NewIgnoringParser, nil
}

func (p *accountParser) addIcon(child *accountTextParser) {
	section := child.value("section")
	if section == "" || child.text == "" {
		log.Warn().Str("section", section).Msg("ignoring account icon without section or path")
		return
	}
	p.provider.Icons = append(p.provider.Icons, types.AccountIcon{Section: section, Path: child.text})
}

func (p *accountParser) addDisplayName(child *accountTextParser) {
	if child.text == "" {
		return
	}
	p.provider.DisplayNames = appendUnique(p.provider.DisplayNames, types.LocalizedString{Lang: child.lang, Value: child.text})
}

func (p *accountParser) addCapability(child *accountTextParser) {
	if child.text == "" {
		return
	}
	p.provider.Capabilities = appendUnique(p.provider.Capabilities, child.text)
}

func (p *accountParser) Verify() error {
	if p.data.Account != nil {
		log.Warn().Msg("ignoring repeated tizen:account element")
		return nil
	}
	provider := p.provider
	p.data.Account = &provider
	return nil
}

// accountTextParser reads the text and attributes of an account child.
type accountTextParser struct {
	attributeParser
	lang    string
	builder textCollector
	text    string
	commit  func(*accountTextParser)
}

func (p *accountTextParser) AcceptElement(element types.XMLElement) error {
	p.builder.start(element)
	p.lang = element.Lang
	return nil
}

func (p *accountTextParser) AcceptText(text types.XMLText) error {
	p.builder.add(text)
	return nil
}

func (p *accountTextParser) Verify() error {
	p.text = p.builder.value()
	p.commit(p)
	return nil
}
