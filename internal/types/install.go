package types

// InstalledWidget is one entry of the installed-widget registry.
type InstalledWidget struct {
	PackageID     string        `yaml:"package_id"`
	AppID         string        `yaml:"app_id"`
	Version       string        `yaml:"version,omitempty"`
	PackageDir    string        `yaml:"package_dir"`
	ConfigPath    string        `yaml:"config_path"`
	Privileges    []string      `yaml:"privileges,omitempty"`
	SecurityModel SecurityModel `yaml:"security_model"`
	InstalledAt   string        `yaml:"installed_at"`
}

type RegistryFile struct {
	Widgets map[string]InstalledWidget `yaml:"widgets"`
}
