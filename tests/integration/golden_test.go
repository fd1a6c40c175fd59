package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"widget-installer/internal/adapters"
	"widget-installer/internal/core"
	"widget-installer/internal/policies"
	"widget-installer/internal/types"
	"widget-installer/tests/testutil"
)

func parseFixture(t *testing.T, name string) *types.ConfigData {
	t.Helper()
	source, err := adapters.OpenXMLFile(filepath.Join(testutil.WidgetFixture(t, name), "config.xml"))
	require.NoError(t, err)
	config, err := core.ParseConfig(t.Context(), source)
	require.NoError(t, err)
	require.NoError(t, policies.ReconcileSecurityModel(config))
	return config
}

// TestGoldenInspect parses the sample widgets and compares the YAML
// reports against committed golden files. If a golden file does not
// exist yet (first run), it is written so it can be committed.
//
// To update golden files after an intentional change, delete the
// testdata/golden/ directory and re-run the test.
func TestGoldenInspect(t *testing.T) {
	root := testutil.RepoRoot(t)
	goldenDir := filepath.Join(root, "tests", "integration", "testdata", "golden")
	reports := adapters.NewReportFileAdapter()

	for _, name := range []string{"basic", "csp", "latin1"} {
		t.Run(name, func(t *testing.T) {
			config := parseFixture(t, name)
			actualPath := filepath.Join(t.TempDir(), name+".yaml")
			require.NoError(t, reports.WriteReport(actualPath, *config))
			actual, err := os.ReadFile(actualPath)
			require.NoError(t, err)

			goldenPath := filepath.Join(goldenDir, name+".yaml")
			if _, statErr := os.Stat(goldenPath); os.IsNotExist(statErr) {
				require.NoError(t, os.MkdirAll(goldenDir, 0o755))
				require.NoError(t, os.WriteFile(goldenPath, actual, 0o644))
				t.Logf("golden file written: %s (commit it)", goldenPath)
				return
			}

			expected, err := os.ReadFile(goldenPath)
			require.NoError(t, err)
			assert.Equal(t, string(expected), string(actual),
				"golden mismatch for %s -- delete testdata/golden/ and re-run to regenerate", name)
		})
	}
}

// TestGoldenInspectStructure checks properties of the parsed fixtures
// independent of the exact report layout.
func TestGoldenInspectStructure(t *testing.T) {
	t.Run("basic uses the access security model", func(t *testing.T) {
		config := parseFixture(t, "basic")
		assert.Equal(t, types.SecurityModelV1, config.SecurityModel)
		assert.NotEmpty(t, config.Access)
		assert.Nil(t, config.CSP)
	})

	t.Run("csp uses the policy security model", func(t *testing.T) {
		config := parseFixture(t, "csp")
		assert.Equal(t, types.SecurityModelV2, config.SecurityModel)
		assert.Empty(t, config.Access)
		require.NotNil(t, config.CSPReportOnly)
		assert.Equal(t, "default-src 'self'", *config.CSPReportOnly)
	})

	t.Run("latin1 is decoded", func(t *testing.T) {
		config := parseFixture(t, "latin1")
		require.Contains(t, config.LocalizedData, "fr")
		assert.Equal(t, "Café Météo", *config.LocalizedData["fr"].Name)
	})

	t.Run("privileges imply required features", func(t *testing.T) {
		config := parseFixture(t, "csp")
		names := map[string]bool{}
		for _, feature := range config.Features {
			names[feature.Name] = feature.Required
		}
		assert.True(t, names["http://tizen.org/privilege/notification"])
	})
}

func TestFixtureFailures(t *testing.T) {
	t.Run("malformed document", func(t *testing.T) {
		source, err := adapters.OpenXMLFile(filepath.Join(testutil.WidgetFixture(t, "malformed"), "config.xml"))
		require.NoError(t, err)
		config, err := core.ParseConfig(t.Context(), source)
		require.Error(t, err)
		assert.Nil(t, config)
	})

	t.Run("security model conflict", func(t *testing.T) {
		source, err := adapters.OpenXMLFile(filepath.Join(testutil.WidgetFixture(t, "conflict"), "config.xml"))
		require.NoError(t, err)
		config, err := core.ParseConfig(t.Context(), source)
		require.NoError(t, err)
		require.Error(t, policies.ReconcileSecurityModel(config))
	})
}
