package app

import "widget-installer/internal/types"

type ValidateRequest struct {
	ConfigPath string
}

type ValidateResult struct {
	WidgetID      string
	Version       string
	AppID         string
	SecurityModel types.SecurityModel
}

type InspectRequest struct {
	ConfigPath string
	OutputPath string
}

type InspectResult struct {
	Config     *types.ConfigData
	Locales    []string
	ReportPath string
}

type InstallRequest struct {
	PackageDir    string
	Force         bool
	SkipSignature bool
}

type InstallResult struct {
	PackageID string
	AppID     string
	Version   string
	Updated   bool
}

type UninstallRequest struct {
	PackageID string
}

type UninstallResult struct {
	PackageID string
	AppID     string
}

type ListResult struct {
	Widgets []types.InstalledWidget
}
