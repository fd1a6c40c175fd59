// Package testutil provides shared test helpers used across integration,
// e2e, and unit test packages.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// WidgetFixture returns the directory of a sample widget package under
// fixtures/widgets.
func WidgetFixture(t *testing.T, name string) string {
	t.Helper()
	dir := filepath.Join(RepoRoot(t), "fixtures", "widgets", name)
	require.DirExists(t, dir)
	return dir
}
