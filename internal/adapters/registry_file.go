package adapters

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"widget-installer/internal/ports"
	"widget-installer/internal/types"
)

var _ ports.RegistryPort = (*RegistryFileAdapter)(nil)

// RegistryFileAdapter keeps the installed-widget registry in a YAML file
// keyed by package id. A missing file is an empty registry.
type RegistryFileAdapter struct {
	Path string
	mu   sync.Mutex
}

func NewRegistryFileAdapter(path string) *RegistryFileAdapter {
	return &RegistryFileAdapter{Path: path}
}

func (a *RegistryFileAdapter) Lookup(packageID string) (types.InstalledWidget, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	registry, err := a.load()
	if err != nil {
		return types.InstalledWidget{}, false, err
	}
	widget, ok := registry.Widgets[packageID]
	return widget, ok, nil
}

func (a *RegistryFileAdapter) Register(widget types.InstalledWidget) error {
	if widget.PackageID == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package id is required")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	registry, err := a.load()
	if err != nil {
		return err
	}
	registry.Widgets[widget.PackageID] = widget
	return a.store(registry)
}

func (a *RegistryFileAdapter) Unregister(packageID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	registry, err := a.load()
	if err != nil {
		return err
	}
	if _, ok := registry.Widgets[packageID]; !ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("widget package %s is not installed", packageID))
	}
	delete(registry.Widgets, packageID)
	return a.store(registry)
}

// List returns every installed widget, oldest installation first. Entries
// whose install time cannot be parsed sort before the rest.
func (a *RegistryFileAdapter) List() ([]types.InstalledWidget, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	registry, err := a.load()
	if err != nil {
		return nil, err
	}
	widgets := make([]types.InstalledWidget, 0, len(registry.Widgets))
	for _, widget := range registry.Widgets {
		widgets = append(widgets, widget)
	}
	sort.Slice(widgets, func(i, j int) bool {
		left := parseInstalledAt(widgets[i].InstalledAt)
		right := parseInstalledAt(widgets[j].InstalledAt)
		if !left.Equal(right) {
			return left.Before(right)
		}
		return widgets[i].PackageID < widgets[j].PackageID
	})
	return widgets, nil
}

// parseInstalledAt accepts the RFC3339 stamps written by Register as well
// as the plain layouts hand-edited registries tend to use.
func parseInstalledAt(value string) time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05 -0700 MST",
		"2006-01-02 15:04:05",
		time.DateOnly,
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

func (a *RegistryFileAdapter) load() (types.RegistryFile, error) {
	registry := types.RegistryFile{Widgets: map[string]types.InstalledWidget{}}
	data, err := os.ReadFile(a.Path)
	if errors.Is(err, os.ErrNotExist) {
		return registry, nil
	}
	if err != nil {
		return registry, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read widget registry").
			WithCause(err)
	}
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return registry, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid widget registry format").
			WithCause(err)
	}
	if registry.Widgets == nil {
		registry.Widgets = map[string]types.InstalledWidget{}
	}
	return registry, nil
}

func (a *RegistryFileAdapter) store(registry types.RegistryFile) error {
	data, err := yaml.Marshal(registry)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal widget registry").
			WithCause(err)
	}
	if err := os.MkdirAll(filepath.Dir(a.Path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create registry directory").
			WithCause(err)
	}
	if err := os.WriteFile(a.Path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write widget registry").
			WithCause(err)
	}
	return nil
}
