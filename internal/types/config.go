package types

import (
	"slices"
)

type SecurityModel string

const (
	SecurityModelUnset SecurityModel = ""
	SecurityModelV1    SecurityModel = "v1"
	SecurityModelV2    SecurityModel = "v2"
)

type AppControlDisposition string

const (
	AppControlDispositionUndefined AppControlDisposition = ""
	AppControlDispositionWindow    AppControlDisposition = "window"
	AppControlDispositionInline    AppControlDisposition = "inline"
)

// LocalizedData holds the per-language text of a widget. A nil field has
// not been seen yet for that language; the first value committed wins.
type LocalizedData struct {
	Name        *string `yaml:"name,omitempty"`
	ShortName   *string `yaml:"short_name,omitempty"`
	Description *string `yaml:"description,omitempty"`
	License     *string `yaml:"license,omitempty"`
	LicenseHref *string `yaml:"license_href,omitempty"`
	LicenseFile *string `yaml:"license_file,omitempty"`
}

type Author struct {
	Name  *string `yaml:"name,omitempty"`
	Href  *string `yaml:"href,omitempty"`
	Email *string `yaml:"email,omitempty"`
}

// Icon is comparable so duplicates can be dropped with ==. Zero width or
// height means the attribute was absent or invalid.
type Icon struct {
	Src    string `yaml:"src"`
	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`
	Small  bool   `yaml:"small,omitempty"`
}

type AccessInfo struct {
	Origin     string `yaml:"origin"`
	Subdomains bool   `yaml:"subdomains"`
}

type Preference struct {
	Name     string `yaml:"name"`
	Value    string `yaml:"value"`
	ReadOnly bool   `yaml:"readonly"`
}

type Setting struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

type ApplicationInfo struct {
	ID              string `yaml:"id"`
	PackageID       string `yaml:"package"`
	RequiredVersion string `yaml:"required_version,omitempty"`
	LaunchMode      string `yaml:"launch_mode,omitempty"`
}

type AppControl struct {
	Src         string                `yaml:"src"`
	Operation   string                `yaml:"operation"`
	URIs        []string              `yaml:"uris,omitempty"`
	MIMEs       []string              `yaml:"mimes,omitempty"`
	Disposition AppControlDisposition `yaml:"disposition,omitempty"`
	Reload      bool                  `yaml:"reload,omitempty"`
}

// Equal compares two app-control entries field by field, treating the
// uri and mime lists as sets.
func (a AppControl) Equal(other AppControl) bool {
	return a.Src == other.Src &&
		a.Operation == other.Operation &&
		a.Disposition == other.Disposition &&
		a.Reload == other.Reload &&
		sameSet(a.URIs, other.URIs) &&
		sameSet(a.MIMEs, other.MIMEs)
}

func sameSet(a []string, b []string) bool {
	left := slices.Clone(a)
	right := slices.Clone(b)
	slices.Sort(left)
	slices.Sort(right)
	return slices.Equal(slices.Compact(left), slices.Compact(right))
}

type FeatureParam struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

type Feature struct {
	Name     string         `yaml:"name"`
	Required bool           `yaml:"required"`
	Params   []FeatureParam `yaml:"params,omitempty"`
}

type Metadata struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value,omitempty"`
}

type LocalizedString struct {
	Lang  string `yaml:"lang,omitempty"`
	Value string `yaml:"value"`
}

type AccountIcon struct {
	Section string `yaml:"section"`
	Path    string `yaml:"path"`
}

type AccountProvider struct {
	MultipleAccountSupport bool              `yaml:"multiple_account_support"`
	Icons                  []AccountIcon     `yaml:"icons,omitempty"`
	DisplayNames           []LocalizedString `yaml:"display_names,omitempty"`
	Capabilities           []string          `yaml:"capabilities,omitempty"`
}

type BoxSize struct {
	Size          string `yaml:"size"`
	Preview       string `yaml:"preview,omitempty"`
	UseDecoration bool   `yaml:"use_decoration"`
}

// PopupDescriptor is the app-widget "pd" element. Width and Height keep
// the normalised decimal text of the attribute.
type PopupDescriptor struct {
	Src      string `yaml:"src"`
	Width    string `yaml:"width,omitempty"`
	Height   string `yaml:"height,omitempty"`
	FastOpen bool   `yaml:"fast_open,omitempty"`
}

type AppWidgetContent struct {
	Src         string           `yaml:"src"`
	MouseEvent  bool             `yaml:"mouse_event"`
	TouchEffect bool             `yaml:"touch_effect"`
	Sizes       []BoxSize        `yaml:"sizes,omitempty"`
	Popup       *PopupDescriptor `yaml:"pd,omitempty"`
}

type AppWidget struct {
	ID           string            `yaml:"id"`
	Primary      bool              `yaml:"primary"`
	AutoLaunch   bool              `yaml:"auto_launch,omitempty"`
	UpdatePeriod float64           `yaml:"update_period,omitempty"`
	Labels       []LocalizedString `yaml:"labels"`
	Icon         string            `yaml:"icon,omitempty"`
	Content      AppWidgetContent  `yaml:"content"`
}

type StartFile struct {
	Src      string `yaml:"src"`
	Type     string `yaml:"type,omitempty"`
	Encoding string `yaml:"encoding,omitempty"`
}

// ConfigData is the configuration record every element parser writes into
// while a config.xml document is streamed. Fields follow their own first
// wins or unique key rule; nothing is removed during parsing.
type ConfigData struct {
	ID            string   `yaml:"id,omitempty"`
	Version       string   `yaml:"version,omitempty"`
	MinVersion    string   `yaml:"min_version,omitempty"`
	Width         int      `yaml:"width,omitempty"`
	Height        int      `yaml:"height,omitempty"`
	ViewModes     []string `yaml:"view_modes,omitempty"`
	DefaultLocale string   `yaml:"default_locale,omitempty"`
	Namespaces    []string `yaml:"namespaces,omitempty"`

	LocalizedData map[string]*LocalizedData `yaml:"localized,omitempty"`
	Author        Author                    `yaml:"author"`

	Icons       []Icon       `yaml:"icons,omitempty"`
	Access      []AccessInfo `yaml:"access,omitempty"`
	Preferences []Preference `yaml:"preferences,omitempty"`
	Settings    []Setting    `yaml:"settings,omitempty"`
	StartFile   *StartFile   `yaml:"content,omitempty"`
	Features    []Feature    `yaml:"features,omitempty"`

	Application    *ApplicationInfo `yaml:"application,omitempty"`
	AppControls    []AppControl     `yaml:"app_controls,omitempty"`
	Categories     []string         `yaml:"categories,omitempty"`
	Privileges     []string         `yaml:"privileges,omitempty"`
	Metadata       []Metadata       `yaml:"metadata,omitempty"`
	Account        *AccountProvider `yaml:"account,omitempty"`
	AppWidgets     []AppWidget      `yaml:"app_widgets,omitempty"`
	SplashImage    *string          `yaml:"splash,omitempty"`
	BackgroundPage *string          `yaml:"background,omitempty"`

	CSP                     *string  `yaml:"csp,omitempty"`
	CSPReportOnly           *string  `yaml:"csp_report_only,omitempty"`
	AllowNavigation         []string `yaml:"allow_navigation,omitempty"`
	AllowNavigationDeclared bool     `yaml:"allow_navigation_declared,omitempty"`

	SecurityModel SecurityModel `yaml:"security_model,omitempty"`
}

func NewConfigData() *ConfigData {
	return &ConfigData{LocalizedData: map[string]*LocalizedData{}}
}

// Localized returns the data set for lang, creating it on first use.
func (c *ConfigData) Localized(lang string) *LocalizedData {
	if c.LocalizedData == nil {
		c.LocalizedData = map[string]*LocalizedData{}
	}
	entry, ok := c.LocalizedData[lang]
	if !ok {
		entry = &LocalizedData{}
		c.LocalizedData[lang] = entry
	}
	return entry
}
