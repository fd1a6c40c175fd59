package core

import (
	"strings"

	"github.com/rs/zerolog/log"

	"widget-installer/internal/parser"
	"widget-installer/internal/shared"
	"widget-installer/internal/types"
)

const (
	W3CWidgetNamespace   = "http://www.w3.org/ns/widgets"
	TizenWidgetNamespace = "http://tizen.org/ns/widgets"

	WidgetTag = "widget"
)

var knownViewModes = map[string]struct{}{
	"windowed":   {},
	"floating":   {},
	"fullscreen": {},
	"maximized":  {},
	"minimized":  {},
}

// WidgetParser is the grammar root for config.xml. It owns the
// ConfigData record that every nested parser writes into.
type WidgetParser struct {
	data *types.ConfigData
}

func NewWidgetParser(data *types.ConfigData) *WidgetParser {
	return &WidgetParser{data: data}
}

func (p *WidgetParser) AcceptElement(element types.XMLElement) error {
	if element.Namespace != W3CWidgetNamespace {
		return parser.Errorf("widget element must be in the %s namespace, found %q", W3CWidgetNamespace, element.Namespace)
	}
	return nil
}

func (p *WidgetParser) AcceptAttribute(attribute types.XMLAttribute) error {
	if attribute.Prefix == "xmlns" {
		p.data.Namespaces = appendUnique(p.data.Namespaces, strings.TrimSpace(attribute.Value))
		return nil
	}
	if !isPlainAttribute(attribute) {
		return nil
	}
	value := normalizeAttribute(attribute.Value)
	switch attribute.Name {
	case "id":
		if err := shared.ValidateIRI(value); err != nil {
			log.Warn().Str("id", value).Err(err).Msg("ignoring invalid widget id")
			return nil
		}
		p.data.ID = value
	case "version":
		p.data.Version = value
	case "min-version":
		if err := validateVersion("min-version", value); err != nil {
			return err
		}
		p.data.MinVersion = value
	case "width":
		p.data.Width = dimensionAttribute(attribute)
	case "height":
		p.data.Height = dimensionAttribute(attribute)
	case "viewmodes":
		for _, mode := range strings.Fields(value) {
			if _, ok := knownViewModes[mode]; !ok {
				log.Warn().Str("viewmode", mode).Msg("ignoring unknown view mode")
				continue
			}
			p.data.ViewModes = appendUnique(p.data.ViewModes, mode)
		}
	case "defaultlocale":
		locale, ok := shared.CanonicalLanguage(value)
		if !ok {
			log.Warn().Str("defaultlocale", value).Msg("default locale is not a valid language tag")
		}
		p.data.DefaultLocale = locale
	}
	return nil
}

// dimensionAttribute reads the leading digits of a widget width or height;
// trailing characters are ignored and a value without digits is dropped.
func dimensionAttribute(attribute types.XMLAttribute) int {
	value, ok := leadingDigits(attribute.Value)
	if !ok || value <= 0 {
		log.Warn().Str(attribute.Name, attribute.Value).Msg("ignoring invalid widget dimension")
		return 0
	}
	return value
}

func (p *WidgetParser) AcceptText(types.XMLText) error {
	return nil
}

func (p *WidgetParser) ChildParser(namespace string, name string) (parser.Factory, error) {
	data := p.data
	switch namespace {
	case W3CWidgetNamespace:
		switch name {
		case "name":
			return func() parser.ElementParser { return newNameParser(data) }, nil
		case "description":
			return func() parser.ElementParser { return newDescriptionParser(data) }, nil
		case "author":
			return func() parser.ElementParser { return newAuthorParser(data) }, nil
		case "license":
			return func() parser.ElementParser { return newLicenseParser(data) }, nil
		case "icon":
			return func() parser.ElementParser { return newIconParser(data) }, nil
		case "access":
			return func() parser.ElementParser { return newAccessParser(data) }, nil
		case "content":
			return func() parser.ElementParser { return newContentParser(data) }, nil
		case "preference":
			return func() parser.ElementParser { return newPreferenceParser(data) }, nil
		case "feature":
			return func() parser.ElementParser { return newFeatureParser(data) }, nil
		}
	case TizenWidgetNamespace:
		switch name {
		case "icon":
			return func() parser.ElementParser { return newIconParser(data) }, nil
		case "content":
			return func() parser.ElementParser { return newContentParser(data) }, nil
		case "setting":
			return func() parser.ElementParser { return newSettingParser(data) }, nil
		case "application":
			return func() parser.ElementParser { return newApplicationParser(data) }, nil
		case "app-control":
			return func() parser.ElementParser { return newAppControlParser(data) }, nil
		case "category":
			return func() parser.ElementParser { return newCategoryParser(data) }, nil
		case "splash":
			return func() parser.ElementParser { return newSplashParser(data) }, nil
		case "background":
			return func() parser.ElementParser { return newBackgroundParser(data) }, nil
		case "privilege":
			return func() parser.ElementParser { return newPrivilegeParser(data) }, nil
		case "metadata":
			return func() parser.ElementParser { return newMetadataParser(data) }, nil
		case "account":
			return func() parser.ElementParser { return newAccountParser(data) }, nil
		case "app-widget":
			return func() parser.ElementParser { return newAppWidgetParser(data) }, nil
		case "content-security-policy":
			return func() parser.ElementParser { return newCSPParser(data, false) }, nil
		case "content-security-policy-report-only":
			return func() parser.ElementParser { return newCSPParser(data, true) }, nil
		case "allow-navigation":
			return func() parser.ElementParser { return newAllowNavigationParser(data) }, nil
		}
	}
	return parser.NewIgnoringParser, nil
}

func (p *WidgetParser) Verify() error {
	return nil
}
