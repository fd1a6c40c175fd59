package core

import (
	"github.com/rs/zerolog/log"

	"widget-installer/internal/parser"
	"widget-installer/internal/types"
)

// attributeParser is the base for Tizen elements that carry only plain
// attributes: subtrees are ignored and text is dropped.
type attributeParser struct {
	values map[string]string
}

func (p *attributeParser) AcceptElement(types.XMLElement) error {
	return nil
}

func (p *attributeParser) AcceptAttribute(attribute types.XMLAttribute) error {
	if !isPlainAttribute(attribute) {
		return nil
	}
	if p.values == nil {
		p.values = map[string]string{}
	}
	p.values[attribute.Name] = normalizeAttribute(attribute.Value)
	return nil
}

func (p *attributeParser) AcceptText(types.XMLText) error {
	return nil
}

func (p *attributeParser) ChildParser(string, string) (parser.Factory, error) {
	return parser.NewIgnoringParser, nil
}

func (p *attributeParser) value(name string) string {
	return p.values[name]
}

// settingParser turns every attribute of a tizen:setting into a
// name/value pair.
type settingParser struct {
	data     *types.ConfigData
	settings []types.Setting
}

func newSettingParser(data *types.ConfigData) *settingParser {
	return &settingParser{data: data}
}

func (p *settingParser) AcceptElement(types.XMLElement) error {
	return nil
}

func (p *settingParser) AcceptAttribute(attribute types.XMLAttribute) error {
	if !isPlainAttribute(attribute) {
		return nil
	}
	p.settings = append(p.settings, types.Setting{
		Name:  attribute.Name,
		Value: normalizeAttribute(attribute.Value),
	})
	return nil
}

func (p *settingParser) AcceptText(types.XMLText) error {
	return nil
}

func (p *settingParser) ChildParser(string, string) (parser.Factory, error) {
	return parser.NewIgnoringParser, nil
}

func (p *settingParser) Verify() error {
	for _, setting := range p.settings {
		p.data.Settings = appendUnique(p.data.Settings, setting)
	}
	return nil
}

type applicationParser struct {
	attributeParser
	data *types.ConfigData
}

func newApplicationParser(data *types.ConfigData) *applicationParser {
	return &applicationParser{data: data}
}

func (p *applicationParser) Verify() error {
	if p.data.Application != nil {
		return parser.Errorf("tizen:application element must occur only once")
	}
	info := types.ApplicationInfo{
		ID:              p.value("id"),
		PackageID:       p.value("package"),
		RequiredVersion: p.value("required_version"),
		LaunchMode:      p.value("launch_mode"),
	}
	if info.ID == "" {
		return parser.Errorf("tizen:application is missing the id attribute")
	}
	if info.PackageID == "" {
		return parser.Errorf("tizen:application is missing the package attribute")
	}
	if err := validatePackageID(info.PackageID); err != nil {
		return err
	}
	if err := validateAppID(info.ID, info.PackageID); err != nil {
		return err
	}
	if info.RequiredVersion != "" {
		if err := validateVersion("required_version", info.RequiredVersion); err != nil {
			return err
		}
	}
	p.data.Application = &info
	return nil
}

type categoryParser struct {
	attributeParser
	data *types.ConfigData
}

func newCategoryParser(data *types.ConfigData) *categoryParser {
	return &categoryParser{data: data}
}

func (p *categoryParser) Verify() error {
	name := p.value("name")
	if name == "" {
		log.Warn().Msg("ignoring category without name")
		return nil
	}
	p.data.Categories = appendUnique(p.data.Categories, name)
	return nil
}

// srcParser commits the src attribute of tizen:splash or tizen:background
// into target unless an earlier element already did.
type srcParser struct {
	attributeParser
	element string
	target  **string
}

func newSplashParser(data *types.ConfigData) *srcParser {
	return &srcParser{element: "splash", target: &data.SplashImage}
}

func newBackgroundParser(data *types.ConfigData) *srcParser {
	return &srcParser{element: "background", target: &data.BackgroundPage}
}

func (p *srcParser) Verify() error {
	if *p.target != nil {
		return nil
	}
	src := p.value("src")
	if src == "" {
		log.Warn().Str("element", p.element).Msg("ignoring element without src")
		return nil
	}
	*p.target = stringPtr(src)
	return nil
}

// privilegeParser records the privilege and mirrors it as a required
// feature.
type privilegeParser struct {
	attributeParser
	data *types.ConfigData
}

func newPrivilegeParser(data *types.ConfigData) *privilegeParser {
	return &privilegeParser{data: data}
}

func (p *privilegeParser) Verify() error {
	name := p.value("name")
	if name == "" {
		log.Warn().Msg("ignoring privilege without name")
		return nil
	}
	p.data.Privileges = appendUnique(p.data.Privileges, name)
	addFeature(p.data, types.Feature{Name: name, Required: true})
	return nil
}

type metadataParser struct {
	attributeParser
	data *types.ConfigData
}

func newMetadataParser(data *types.ConfigData) *metadataParser {
	return &metadataParser{data: data}
}

func (p *metadataParser) Verify() error {
	key := p.value("key")
	if key == "" {
		log.Warn().Msg("ignoring metadata without key")
		return nil
	}
	for _, existing := range p.data.Metadata {
		if existing.Key == key {
			log.Warn().Str("key", key).Msg("ignoring duplicate metadata key")
			return nil
		}
	}
	p.data.Metadata = append(p.data.Metadata, types.Metadata{Key: key, Value: p.value("value")})
	return nil
}
