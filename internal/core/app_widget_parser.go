package core

import (
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"widget-installer/internal/parser"
	"widget-installer/internal/types"
)

const (
	// minUpdatePeriod is the shortest app-widget refresh interval in seconds.
	minUpdatePeriod = 1800.0

	minPopupDimension = 1
	maxPopupDimension = 380
)

// appWidgetParser collects one tizen:app-widget with its labels, icon and
// box-content. A widget without box-content or without a label is
// rejected.
type appWidgetParser struct {
	data       *types.ConfigData
	widget     types.AppWidget
	hasContent bool
}

func newAppWidgetParser(data *types.ConfigData) *appWidgetParser {
	return &appWidgetParser{data: data}
}

func (p *appWidgetParser) AcceptElement(types.XMLElement) error {
	return nil
}

func (p *appWidgetParser) AcceptAttribute(attribute types.XMLAttribute) error {
	if !isPlainAttribute(attribute) {
		return nil
	}
	value := normalizeAttribute(attribute.Value)
	switch attribute.Name {
	case "id":
		p.widget.ID = value
	case "primary":
		p.widget.Primary = boolAttribute("app-widget", attribute, false)
	case "auto-launch":
		p.widget.AutoLaunch = boolAttribute("app-widget", attribute, false)
	case "update-period":
		period, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(period) || math.IsInf(period, 0) {
			log.Warn().Str("update-period", value).Msg("ignoring invalid app-widget update period")
			return nil
		}
		p.widget.UpdatePeriod = math.Max(period, minUpdatePeriod)
	}
	return nil
}

func (p *appWidgetParser) AcceptText(types.XMLText) error {
	return nil
}

func (p *appWidgetParser) ChildParser(namespace string, name string) (parser.Factory, error) {
	if namespace != TizenWidgetNamespace {
		return parser.NewIgnoringParser, nil
	}
	switch name {
	case "box-label":
		return func() parser.ElementParser { return &boxLabelParser{widget: &p.widget} }, nil
	case "box-icon":
		return func() parser.ElementParser { return &boxIconParser{widget: &p.widget} }, nil
	case "box-content":
		return func() parser.ElementParser { return &boxContentParser{owner: p} }, nil
	}
	return parser.NewIgnoringParser, nil
}

func (p *appWidgetParser) Verify() error {
	if p.widget.ID == "" {
		return parser.Errorf("tizen:app-widget is missing the id attribute")
	}
	if !p.hasContent {
		return parser.Errorf("tizen:app-widget %q must contain a box-content element", p.widget.ID)
	}
	if len(p.widget.Labels) == 0 {
		return parser.Errorf("tizen:app-widget %q must contain at least one box-label element", p.widget.ID)
	}
	for _, existing := range p.data.AppWidgets {
		if existing.ID == p.widget.ID {
			return parser.Errorf("tizen:app-widget id %q is declared more than once", p.widget.ID)
		}
	}
	p.data.AppWidgets = append(p.data.AppWidgets, p.widget)
	return nil
}

type boxLabelParser struct {
	attributeParser
	widget *types.AppWidget
	text   textCollector
}

func (p *boxLabelParser) AcceptElement(element types.XMLElement) error {
	p.text.start(element)
	return nil
}

func (p *boxLabelParser) AcceptText(text types.XMLText) error {
	p.text.add(text)
	return nil
}

func (p *boxLabelParser) Verify() error {
	label := p.text.value()
	if label == "" {
		log.Warn().Str("app-widget", p.widget.ID).Msg("ignoring empty box-label")
		return nil
	}
	p.widget.Labels = append(p.widget.Labels, types.LocalizedString{Lang: p.text.lang, Value: label})
	return nil
}

type boxIconParser struct {
	attributeParser
	widget *types.AppWidget
}

func (p *boxIconParser) Verify() error {
	src := p.value("src")
	if src == "" {
		return parser.Errorf("tizen:box-icon is missing the src attribute")
	}
	if p.widget.Icon != "" {
		return parser.Errorf("tizen:app-widget %q declares more than one box-icon", p.widget.ID)
	}
	p.widget.Icon = src
	return nil
}

type boxContentParser struct {
	attributeParser
	owner   *appWidgetParser
	content types.AppWidgetContent
}

func (p *boxContentParser) ChildParser(namespace string, name string) (parser.Factory, error) {
	if namespace != TizenWidgetNamespace {
		return parser.NewIgnoringParser, nil
	}
	switch name {
	case "box-size":
		return func() parser.ElementParser { return &boxSizeParser{content: &p.content} }, nil
	case "pd":
		return func() parser.ElementParser { return &popupParser{content: &p.content} }, nil
	}
	return parser.NewIgnoringParser, nil
}

func (p *boxContentParser) Verify() error {
	if p.owner.hasContent {
		return parser.Errorf("tizen:app-widget %q declares more than one box-content", p.owner.widget.ID)
	}
	p.content.Src = p.value("src")
	if p.content.Src == "" {
		return parser.Errorf("tizen:box-content is missing the src attribute")
	}
	p.content.MouseEvent = p.flag("mouse-event")
	p.content.TouchEffect = p.flag("touch-effect")
	p.owner.widget.Content = p.content
	p.owner.hasContent = true
	return nil
}

// flag reads an optional boolean attribute, defaulting to false.
func (p *boxContentParser) flag(name string) bool {
	raw, ok := p.values[name]
	if !ok {
		return false
	}
	return boolAttribute("box-content", types.XMLAttribute{Name: name, Value: raw}, false)
}

type boxSizeParser struct {
	attributeParser
	content *types.AppWidgetContent
	text    textCollector
}

func (p *boxSizeParser) AcceptElement(element types.XMLElement) error {
	p.text.start(element)
	return nil
}

func (p *boxSizeParser) AcceptText(text types.XMLText) error {
	p.text.add(text)
	return nil
}

func (p *boxSizeParser) Verify() error {
	size := normalizeText(p.text.text.String())
	if size == "" {
		return parser.Errorf("tizen:box-size must not be empty")
	}
	useDecoration := true
	if raw, ok := p.values["use-decoration"]; ok {
		useDecoration = boolAttribute("box-size", types.XMLAttribute{Name: "use-decoration", Value: raw}, true)
	}
	for _, existing := range p.content.Sizes {
		if existing.Size == size {
			log.Warn().Str("size", size).Msg("ignoring duplicate box-size")
			return nil
		}
	}
	p.content.Sizes = append(p.content.Sizes, types.BoxSize{
		Size:          size,
		Preview:       p.value("preview"),
		UseDecoration: useDecoration,
	})
	return nil
}

type popupParser struct {
	attributeParser
	content *types.AppWidgetContent
}

func (p *popupParser) Verify() error {
	if p.content.Popup != nil {
		return parser.Errorf("tizen:box-content declares more than one pd element")
	}
	popup := types.PopupDescriptor{Src: p.value("src")}
	if popup.Src == "" {
		return parser.Errorf("tizen:pd is missing the src attribute")
	}
	var err error
	if popup.Width, err = popupDimension("width", p.value("width")); err != nil {
		return err
	}
	if popup.Height, err = popupDimension("height", p.value("height")); err != nil {
		return err
	}
	if raw, ok := p.values["fast-open"]; ok {
		popup.FastOpen = boolAttribute("pd", types.XMLAttribute{Name: "fast-open", Value: raw}, false)
	}
	p.content.Popup = &popup
	return nil
}

// popupDimension parses a whole decimal pd dimension and clamps it into
// [1,380]. An absent value stays empty.
func popupDimension(name string, value string) (string, error) {
	if value == "" {
		return "", nil
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return "", parser.Errorf("tizen:pd %s %q is not a number", name, value)
	}
	parsed = min(max(parsed, minPopupDimension), maxPopupDimension)
	return strconv.Itoa(parsed), nil
}
