package core

import (
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"widget-installer/internal/parser"
	"widget-installer/internal/shared"
	"widget-installer/internal/types"
)

// textCollector accumulates the chunks of an element's text together with
// its language and direction.
type textCollector struct {
	element string
	lang    string
	dir     direction
	text    strings.Builder
}

func (c *textCollector) start(element types.XMLElement) {
	c.element = element.Name
	c.lang = element.Lang
}

func (c *textCollector) add(text types.XMLText) {
	c.text.WriteString(text.Value)
}

// value returns the normalised text with its direction marks applied.
func (c *textCollector) value() string {
	return c.dir.apply(normalizeText(c.text.String()))
}

func (c *textCollector) direction(attribute types.XMLAttribute) {
	c.dir = directionAttribute(c.dir, c.element, attribute)
}

type nameParser struct {
	data      *types.ConfigData
	text      textCollector
	shortName *string
}

func newNameParser(data *types.ConfigData) *nameParser {
	return &nameParser{data: data}
}

func (p *nameParser) AcceptElement(element types.XMLElement) error {
	p.text.start(element)
	return nil
}

func (p *nameParser) AcceptAttribute(attribute types.XMLAttribute) error {
	if !isPlainAttribute(attribute) {
		return nil
	}
	switch attribute.Name {
	case "short":
		p.shortName = stringPtr(normalizeAttribute(attribute.Value))
	case "dir":
		p.text.direction(attribute)
	}
	return nil
}

func (p *nameParser) AcceptText(text types.XMLText) error {
	p.text.add(text)
	return nil
}

func (p *nameParser) ChildParser(string, string) (parser.Factory, error) {
	return parser.NewIgnoringParser, nil
}

func (p *nameParser) Verify() error {
	entry := p.data.Localized(p.text.lang)
	if entry.Name == nil {
		entry.Name = stringPtr(p.text.value())
	}
	if p.shortName != nil && entry.ShortName == nil {
		entry.ShortName = stringPtr(p.text.dir.apply(*p.shortName))
	}
	return nil
}

type descriptionParser struct {
	data *types.ConfigData
	text textCollector
}

func newDescriptionParser(data *types.ConfigData) *descriptionParser {
	return &descriptionParser{data: data}
}

func (p *descriptionParser) AcceptElement(element types.XMLElement) error {
	p.text.start(element)
	return nil
}

func (p *descriptionParser) AcceptAttribute(attribute types.XMLAttribute) error {
	if isPlainAttribute(attribute) && attribute.Name == "dir" {
		p.text.direction(attribute)
	}
	return nil
}

func (p *descriptionParser) AcceptText(text types.XMLText) error {
	p.text.add(text)
	return nil
}

func (p *descriptionParser) ChildParser(string, string) (parser.Factory, error) {
	return parser.NewIgnoringParser, nil
}

func (p *descriptionParser) Verify() error {
	entry := p.data.Localized(p.text.lang)
	if entry.Description == nil {
		entry.Description = stringPtr(p.text.value())
	}
	return nil
}

// licenseParser records the license text and its href. An href without a
// scheme points at a file inside the package.
type licenseParser struct {
	data *types.ConfigData
	text textCollector
	href string
}

func newLicenseParser(data *types.ConfigData) *licenseParser {
	return &licenseParser{data: data}
}

func (p *licenseParser) AcceptElement(element types.XMLElement) error {
	p.text.start(element)
	return nil
}

func (p *licenseParser) AcceptAttribute(attribute types.XMLAttribute) error {
	if !isPlainAttribute(attribute) {
		return nil
	}
	switch attribute.Name {
	case "href":
		p.href = normalizeAttribute(attribute.Value)
	case "dir":
		p.text.direction(attribute)
	}
	return nil
}

func (p *licenseParser) AcceptText(text types.XMLText) error {
	p.text.add(text)
	return nil
}

func (p *licenseParser) ChildParser(string, string) (parser.Factory, error) {
	return parser.NewIgnoringParser, nil
}

func (p *licenseParser) Verify() error {
	entry := p.data.Localized(p.text.lang)
	if entry.License == nil {
		entry.License = stringPtr(p.text.value())
	}
	if p.href == "" {
		return nil
	}
	if parsed, err := url.Parse(p.href); err == nil && parsed.Scheme != "" {
		if err := shared.ValidateIRI(p.href); err != nil {
			log.Warn().Str("href", p.href).Err(err).Msg("ignoring invalid license href")
			return nil
		}
		if entry.LicenseHref == nil {
			entry.LicenseHref = stringPtr(p.href)
		}
		return nil
	}
	if entry.LicenseFile == nil {
		entry.LicenseFile = stringPtr(p.href)
	}
	return nil
}

// authorParser commits each author field only if no earlier author
// element set it.
type authorParser struct {
	data  *types.ConfigData
	text  textCollector
	href  string
	email string
}

func newAuthorParser(data *types.ConfigData) *authorParser {
	return &authorParser{data: data}
}

func (p *authorParser) AcceptElement(element types.XMLElement) error {
	p.text.start(element)
	return nil
}

func (p *authorParser) AcceptAttribute(attribute types.XMLAttribute) error {
	if !isPlainAttribute(attribute) {
		return nil
	}
	switch attribute.Name {
	case "href":
		href := normalizeAttribute(attribute.Value)
		if err := shared.ValidateIRI(href); err != nil {
			log.Warn().Str("href", href).Err(err).Msg("ignoring invalid author href")
			return nil
		}
		p.href = href
	case "email":
		p.email = normalizeAttribute(attribute.Value)
	case "dir":
		p.text.direction(attribute)
	}
	return nil
}

func (p *authorParser) AcceptText(text types.XMLText) error {
	p.text.add(text)
	return nil
}

func (p *authorParser) ChildParser(string, string) (parser.Factory, error) {
	return parser.NewIgnoringParser, nil
}

func (p *authorParser) Verify() error {
	author := &p.data.Author
	if author.Name == nil {
		author.Name = stringPtr(p.text.value())
	}
	if author.Href == nil && p.href != "" {
		author.Href = stringPtr(p.href)
	}
	if author.Email == nil && p.email != "" {
		author.Email = stringPtr(p.email)
	}
	return nil
}
