package app

import (
	"time"

	"widget-installer/internal/adapters"
	"widget-installer/internal/ports"
)

const (
	DefaultPlatformVersion = "4.0"
	DefaultRegistryPath    = "widget-registry.yaml"

	configFileName = "config.xml"
)

type Service struct {
	Sources         ports.XMLSourceOpenerPort
	Signatures      ports.SignaturePort
	Registry        ports.RegistryPort
	Labels          ports.SecurityLabelPort
	Reports         ports.ReportPort
	PlatformVersion string
	Clock           func() time.Time
}

type Options struct {
	RegistryPath    string
	PlatformVersion string
}

func NewService(opts Options) Service {
	if opts.RegistryPath == "" {
		opts.RegistryPath = DefaultRegistryPath
	}
	if opts.PlatformVersion == "" {
		opts.PlatformVersion = DefaultPlatformVersion
	}
	return Service{
		Sources:         adapters.NewXMLFileAdapter(),
		Signatures:      adapters.NewSignatureFileAdapter(),
		Registry:        adapters.NewRegistryFileAdapter(opts.RegistryPath),
		Labels:          adapters.NewSecurityLabelAdapter(),
		Reports:         adapters.NewReportFileAdapter(),
		PlatformVersion: opts.PlatformVersion,
		Clock:           time.Now,
	}
}
