package core

import (
	"github.com/rs/zerolog/log"

	"widget-installer/internal/parser"
	"widget-installer/internal/shared"
	"widget-installer/internal/types"
)

// iconParser handles both the W3C icon and its Tizen variant, which adds
// the small flag.
type iconParser struct {
	data   *types.ConfigData
	icon   types.Icon
	hasSrc bool
}

func newIconParser(data *types.ConfigData) *iconParser {
	return &iconParser{data: data}
}

func (p *iconParser) AcceptElement(types.XMLElement) error {
	return nil
}

func (p *iconParser) AcceptAttribute(attribute types.XMLAttribute) error {
	if attribute.Name == "small" && (isPlainAttribute(attribute) || attribute.Namespace == TizenWidgetNamespace) {
		p.icon.Small = boolAttribute("icon", attribute, false)
		return nil
	}
	if !isPlainAttribute(attribute) {
		return nil
	}
	switch attribute.Name {
	case "src":
		p.icon.Src = normalizeAttribute(attribute.Value)
		p.hasSrc = p.icon.Src != ""
	case "width", "height":
		value, ok := positiveInt(attribute.Value)
		if !ok {
			log.Warn().Str(attribute.Name, attribute.Value).Msg("ignoring invalid icon dimension")
			return nil
		}
		if attribute.Name == "width" {
			p.icon.Width = value
		} else {
			p.icon.Height = value
		}
	}
	return nil
}

func (p *iconParser) AcceptText(types.XMLText) error {
	return nil
}

func (p *iconParser) ChildParser(string, string) (parser.Factory, error) {
	return parser.NewDenyAllParser, nil
}

func (p *iconParser) Verify() error {
	if !p.hasSrc {
		log.Warn().Msg("ignoring icon without src")
		return nil
	}
	p.data.Icons = appendUnique(p.data.Icons, p.icon)
	return nil
}

type accessParser struct {
	data   *types.ConfigData
	access types.AccessInfo
	valid  bool
}

func newAccessParser(data *types.ConfigData) *accessParser {
	return &accessParser{data: data}
}

func (p *accessParser) AcceptElement(types.XMLElement) error {
	return nil
}

func (p *accessParser) AcceptAttribute(attribute types.XMLAttribute) error {
	if !isPlainAttribute(attribute) {
		return nil
	}
	switch attribute.Name {
	case "origin":
		origin := normalizeAttribute(attribute.Value)
		if origin != "*" {
			if err := shared.ValidateOrigin(origin); err != nil {
				log.Warn().Str("origin", origin).Err(err).Msg("ignoring invalid access origin")
				return nil
			}
		}
		p.access.Origin = origin
		p.valid = true
	case "subdomains":
		p.access.Subdomains = boolAttribute("access", attribute, false)
	}
	return nil
}

func (p *accessParser) AcceptText(types.XMLText) error {
	return nil
}

func (p *accessParser) ChildParser(string, string) (parser.Factory, error) {
	return parser.NewIgnoringParser, nil
}

func (p *accessParser) Verify() error {
	if !p.valid {
		return nil
	}
	p.data.Access = appendUnique(p.data.Access, p.access)
	return nil
}

type contentParser struct {
	data  *types.ConfigData
	start types.StartFile
}

func newContentParser(data *types.ConfigData) *contentParser {
	return &contentParser{data: data}
}

func (p *contentParser) AcceptElement(types.XMLElement) error {
	return nil
}

func (p *contentParser) AcceptAttribute(attribute types.XMLAttribute) error {
	if !isPlainAttribute(attribute) {
		return nil
	}
	switch attribute.Name {
	case "src":
		p.start.Src = normalizeAttribute(attribute.Value)
	case "type":
		p.start.Type = normalizeAttribute(attribute.Value)
	case "encoding":
		p.start.Encoding = normalizeAttribute(attribute.Value)
	}
	return nil
}

func (p *contentParser) AcceptText(types.XMLText) error {
	return nil
}

func (p *contentParser) ChildParser(string, string) (parser.Factory, error) {
	return parser.NewIgnoringParser, nil
}

func (p *contentParser) Verify() error {
	if p.data.StartFile != nil {
		return nil
	}
	if p.start.Src == "" {
		log.Warn().Msg("ignoring content without src")
		return nil
	}
	start := p.start
	p.data.StartFile = &start
	return nil
}

type preferenceParser struct {
	data       *types.ConfigData
	preference types.Preference
	hasName    bool
}

func newPreferenceParser(data *types.ConfigData) *preferenceParser {
	return &preferenceParser{data: data}
}

func (p *preferenceParser) AcceptElement(types.XMLElement) error {
	return nil
}

func (p *preferenceParser) AcceptAttribute(attribute types.XMLAttribute) error {
	if !isPlainAttribute(attribute) {
		return nil
	}
	switch attribute.Name {
	case "name":
		p.preference.Name = normalizeAttribute(attribute.Value)
		p.hasName = p.preference.Name != ""
	case "value":
		p.preference.Value = normalizeAttribute(attribute.Value)
	case "readonly":
		p.preference.ReadOnly = boolAttribute("preference", attribute, false)
	}
	return nil
}

func (p *preferenceParser) AcceptText(types.XMLText) error {
	return nil
}

func (p *preferenceParser) ChildParser(string, string) (parser.Factory, error) {
	return parser.NewIgnoringParser, nil
}

func (p *preferenceParser) Verify() error {
	if !p.hasName {
		log.Warn().Msg("ignoring preference without name")
		return nil
	}
	for _, existing := range p.data.Preferences {
		if existing.Name == p.preference.Name {
			log.Warn().Str("name", p.preference.Name).Msg("ignoring duplicate preference")
			return nil
		}
	}
	p.data.Preferences = append(p.data.Preferences, p.preference)
	return nil
}

// featureParser collects a feature and its param children. Features are
// keyed by name; a repeated name merges nothing and is dropped.
type featureParser struct {
	data    *types.ConfigData
	feature types.Feature
}

func newFeatureParser(data *types.ConfigData) *featureParser {
	return &featureParser{data: data, feature: types.Feature{Required: true}}
}

func (p *featureParser) AcceptElement(types.XMLElement) error {
	return nil
}

func (p *featureParser) AcceptAttribute(attribute types.XMLAttribute) error {
	if !isPlainAttribute(attribute) {
		return nil
	}
	switch attribute.Name {
	case "name":
		name := normalizeAttribute(attribute.Value)
		if err := shared.ValidateIRI(name); err != nil {
			log.Warn().Str("name", name).Err(err).Msg("ignoring feature with invalid name")
			return nil
		}
		p.feature.Name = name
	case "required":
		p.feature.Required = boolAttribute("feature", attribute, true)
	}
	return nil
}

func (p *featureParser) AcceptText(types.XMLText) error {
	return nil
}

func (p *featureParser) ChildParser(namespace string, name string) (parser.Factory, error) {
	if namespace == W3CWidgetNamespace && name == "param" {
		return func() parser.ElementParser { return &featureParamParser{feature: &p.feature} }, nil
	}
	return parser.NewIgnoringParser, nil
}

func (p *featureParser) Verify() error {
	if p.feature.Name == "" {
		return nil
	}
	addFeature(p.data, p.feature)
	return nil
}

func addFeature(data *types.ConfigData, feature types.Feature) {
	for _, existing := range data.Features {
		if existing.Name == feature.Name {
			return
		}
	}
	data.Features = append(data.Features, feature)
}

type featureParamParser struct {
	feature *types.Feature
	param   types.FeatureParam
}

func (p *featureParamParser) AcceptElement(types.XMLElement) error {
	return nil
}

func (p *featureParamParser) AcceptAttribute(attribute types.XMLAttribute) error {
	if !isPlainAttribute(attribute) {
		return nil
	}
	switch attribute.Name {
	case "name":
		p.param.Name = normalizeAttribute(attribute.Value)
	case "value":
		p.param.Value = normalizeAttribute(attribute.Value)
	}
	return nil
}

func (p *featureParamParser) AcceptText(types.XMLText) error {
	return nil
}

func (p *featureParamParser) ChildParser(string, string) (parser.Factory, error) {
	return parser.NewIgnoringParser, nil
}

func (p *featureParamParser) Verify() error {
	if p.param.Name == "" {
		log.Warn().Msg("ignoring feature param without name")
		return nil
	}
	p.feature.Params = append(p.feature.Params, p.param)
	return nil
}
