package ports

import (
	"context"

	"widget-installer/internal/types"
)

// SignaturePort checks the signature files of an unpacked widget package.
// Certificate and crypto validation live outside this module.
type SignaturePort interface {
	Verify(packageDir string) error
}

type RegistryPort interface {
	Lookup(packageID string) (types.InstalledWidget, bool, error)
	Register(widget types.InstalledWidget) error
	Unregister(packageID string) error
	List() ([]types.InstalledWidget, error)
}

type SecurityLabelPort interface {
	Apply(ctx context.Context, widget types.InstalledWidget) error
	Remove(ctx context.Context, widget types.InstalledWidget) error
}

type ReportPort interface {
	WriteReport(path string, config types.ConfigData) error
}
