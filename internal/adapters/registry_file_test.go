package adapters

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"widget-installer/internal/types"
)

func TestRegistryFileAdapterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "registry.yaml")
	registry := NewRegistryFileAdapter(path)

	_, ok, err := registry.Lookup("AbCdE12345")
	require.NoError(t, err)
	assert.False(t, ok)

	widget := types.InstalledWidget{
		PackageID:     "AbCdE12345",
		AppID:         "AbCdE12345.Weather",
		Version:       "1.2.0",
		PackageDir:    "/opt/widgets/weather",
		ConfigPath:    "/opt/widgets/weather/config.xml",
		Privileges:    []string{"http://tizen.org/privilege/internet"},
		SecurityModel: types.SecurityModelV1,
		InstalledAt:   "2026-01-02T03:04:05Z",
	}
	require.NoError(t, registry.Register(widget))

	reopened := NewRegistryFileAdapter(path)
	got, ok, err := reopened.Lookup("AbCdE12345")
	require.NoError(t, err)
	require.True(t, ok)
	if diff := cmp.Diff(widget, got); diff != "" {
		t.Fatalf("unexpected registry entry (-want +got):\n%s", diff)
	}

	require.NoError(t, reopened.Unregister("AbCdE12345"))
	_, ok, err = reopened.Lookup("AbCdE12345")
	require.NoError(t, err)
	assert.False(t, ok)

	err = reopened.Unregister("AbCdE12345")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestRegistryFileAdapterRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.yaml")
	require.NoError(t, os.WriteFile(path, []byte("widgets: [unclosed"), 0644))

	_, _, err := NewRegistryFileAdapter(path).Lookup("AbCdE12345")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestRegistryFileAdapterRequiresPackageID(t *testing.T) {
	err := NewRegistryFileAdapter(filepath.Join(t.TempDir(), "registry.yaml")).Register(types.InstalledWidget{})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestRegistryFileAdapterListOrdersByInstallTime(t *testing.T) {
	registry := NewRegistryFileAdapter(filepath.Join(t.TempDir(), "registry.yaml"))

	widgets, err := registry.List()
	require.NoError(t, err)
	assert.Empty(t, widgets)

	for _, widget := range []types.InstalledWidget{
		{PackageID: "CcCcC00003", AppID: "CcCcC00003.C", InstalledAt: "2026-02-01T00:00:00Z"},
		{PackageID: "AaAaA00001", AppID: "AaAaA00001.A", InstalledAt: "2026-03-01 08:00:00"},
		{PackageID: "BbBbB00002", AppID: "BbBbB00002.B", InstalledAt: "2026-02-01T00:00:00Z"},
		{PackageID: "DdDdD00004", AppID: "DdDdD00004.D", InstalledAt: "yesterday"},
	} {
		require.NoError(t, registry.Register(widget))
	}

	widgets, err = registry.List()
	require.NoError(t, err)
	ids := make([]string, 0, len(widgets))
	for _, widget := range widgets {
		ids = append(ids, widget.PackageID)
	}
	expected := []string{"DdDdD00004", "BbBbB00002", "CcCcC00003", "AaAaA00001"}
	if diff := cmp.Diff(expected, ids); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestParseInstalledAt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{
			name:     "RFC3339",
			input:    "2025-06-15T10:30:00Z",
			expected: time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:     "RFC3339 with offset",
			input:    "2025-06-15T12:30:00+02:00",
			expected: time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:     "datetime without timezone",
			input:    "2025-06-15 10:30:00",
			expected: time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:     "date only",
			input:    "2025-06-15",
			expected: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "whitespace only",
			input:    "   ",
			expected: time.Time{},
		},
		{
			name:     "unparseable returns zero",
			input:    "not-a-date",
			expected: time.Time{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseInstalledAt(tt.input))
		})
	}
}
