package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"widget-installer/internal/types"
)

func TestInspectApp(t *testing.T) {
	service, _ := newTestService(t)
	output := filepath.Join(t.TempDir(), "report.yaml")

	result, err := service.Inspect(t.Context(), InspectRequest{
		ConfigPath: fixturePath(t, "csp", "config.xml"),
		OutputPath: output,
	})
	require.NoError(t, err)

	if diff := cmp.Diff([]string{""}, result.Locales); diff != "" {
		t.Fatalf("unexpected locales (-want +got):\n%s", diff)
	}
	assert.Equal(t, types.SecurityModelV2, result.Config.SecurityModel)
	assert.Equal(t, "script-src 'self'; object-src 'none'", *result.Config.CSP)
	assert.Equal(t, []string{"*.example.com", "https://docs.example.org"}, result.Config.AllowNavigation)
	assert.Equal(t, output, result.ReportPath)
	_, statErr := os.Stat(output)
	require.NoError(t, statErr)
}

func TestInspectAppWithoutReport(t *testing.T) {
	service, _ := newTestService(t)

	result, err := service.Inspect(t.Context(), InspectRequest{
		ConfigPath: fixturePath(t, "basic", "config.xml"),
	})
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"", "en-US", "nl-NL"}, result.Locales); diff != "" {
		t.Fatalf("unexpected locales (-want +got):\n%s", diff)
	}
	assert.Empty(t, result.ReportPath)
}
