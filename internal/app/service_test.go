package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"widget-installer/internal/types"
)

// recordingLabels remembers which widgets were labelled. A non-nil
// applyErr makes Apply fail.
type recordingLabels struct {
	applied  []string
	removed  []types.InstalledWidget
	applyErr error
}

func (r *recordingLabels) Apply(_ context.Context, widget types.InstalledWidget) error {
	if r.applyErr != nil {
		return r.applyErr
	}
	r.applied = append(r.applied, widget.PackageID)
	return nil
}

func (r *recordingLabels) Remove(_ context.Context, widget types.InstalledWidget) error {
	r.removed = append(r.removed, widget)
	return nil
}

func fixturePath(t *testing.T, parts ...string) string {
	t.Helper()
	root, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)
	return filepath.Join(append([]string{root, "fixtures", "widgets"}, parts...)...)
}

func newTestService(t *testing.T) (Service, *recordingLabels) {
	t.Helper()
	service := NewService(Options{RegistryPath: filepath.Join(t.TempDir(), "registry.yaml")})
	labels := &recordingLabels{}
	service.Labels = labels
	service.Clock = func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	return service, labels
}

// copyPackage copies a fixture package into a fresh directory so tests can
// modify it.
func copyPackage(t *testing.T, fixture string) string {
	t.Helper()
	src := fixturePath(t, fixture)
	dst := t.TempDir()
	entries, err := os.ReadDir(src)
	require.NoError(t, err)
	for _, entry := range entries {
		data, err := os.ReadFile(filepath.Join(src, entry.Name()))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dst, entry.Name()), data, 0644))
	}
	return dst
}
