package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------- Command tree tests ----------

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()
	names := make([]string, 0, len(root.Commands()))
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	expected := []string{"validate", "inspect", "install", "uninstall", "list"}
	for _, name := range expected {
		assert.Contains(t, names, name, "missing subcommand: %s", name)
	}
}

func TestRootCommandVersion(t *testing.T) {
	root := newRootCommand()
	assert.Equal(t, "dev", root.Version)
}

func TestRootCommandPersistentFlags(t *testing.T) {
	root := newRootCommand()
	for _, name := range []string{"config", "log-level", "platform-version", "registry"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), "missing flag: %s", name)
	}
}

func TestSubcommandFlags(t *testing.T) {
	tests := []struct {
		name  string
		cmd   *cobra.Command
		flags []string
	}{
		{name: "validate", cmd: newValidateCommand(), flags: []string{"config-xml"}},
		{name: "inspect", cmd: newInspectCommand(), flags: []string{"config-xml", "output"}},
		{name: "install", cmd: newInstallCommand(), flags: []string{"package-dir", "force", "skip-signature"}},
		{name: "uninstall", cmd: newUninstallCommand(), flags: []string{"package-id"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, name := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(name), "missing flag: %s", name)
			}
		})
	}
}

// ---------- Command execution tests ----------

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())
	return out.String(), err
}

func TestValidateCommandRuns(t *testing.T) {
	registry := filepath.Join(t.TempDir(), "registry.yaml")
	out, err := runRoot(t,
		"--registry", registry,
		"validate", "--config-xml", filepath.Join("..", "..", "fixtures", "widgets", "basic", "config.xml"),
	)
	require.NoError(t, err)
	assert.Contains(t, out, "validated: AbCdE12345.Weather 1.2.0 (security model v1)")
}

func TestInstallAndUninstallCommandsRun(t *testing.T) {
	registry := filepath.Join(t.TempDir(), "registry.yaml")
	packageDir := filepath.Join("..", "..", "fixtures", "widgets", "basic")

	out, err := runRoot(t, "--registry", registry, "install", "--package-dir", packageDir)
	require.NoError(t, err)
	assert.Contains(t, out, "installed: AbCdE12345.Weather 1.2.0")

	out, err = runRoot(t, "--registry", registry, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "AbCdE12345\tAbCdE12345.Weather\t1.2.0")

	out, err = runRoot(t, "--registry", registry, "uninstall", "--package-id", "AbCdE12345")
	require.NoError(t, err)
	assert.Contains(t, out, "uninstalled: AbCdE12345")

	out, err = runRoot(t, "--registry", registry, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "no widgets installed")

	_, err = runRoot(t, "--registry", registry, "uninstall", "--package-id", "AbCdE12345")
	require.Error(t, err)
	assert.Equal(t, 5, exitCodeForError(err))
}

func TestInstallCommandRejectsOldPlatform(t *testing.T) {
	registry := filepath.Join(t.TempDir(), "registry.yaml")
	_, err := runRoot(t,
		"--registry", registry,
		"--platform-version", "2.2",
		"install", "--package-dir", filepath.Join("..", "..", "fixtures", "widgets", "basic"),
	)
	require.Error(t, err)
	assert.Equal(t, 4, exitCodeForError(err))
}

// ---------- Helper function tests ----------

func TestResolveString(t *testing.T) {
	tests := []struct {
		name     string
		cmd      *cobra.Command
		value    string
		expected string
	}{
		{
			name:     "nil cmd with value returns value",
			cmd:      nil,
			value:    "explicit",
			expected: "explicit",
		},
		{
			name:     "nil cmd empty value returns empty",
			cmd:      nil,
			value:    "",
			expected: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveString(tt.cmd, tt.value, "test_key", "test-flag")
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveBool(t *testing.T) {
	got := resolveBool(nil, true, "test_key", "test-flag")
	assert.True(t, got)

	got = resolveBool(nil, false, "test_key", "test-flag")
	assert.False(t, got)
}

func TestFlagChanged(t *testing.T) {
	assert.False(t, flagChanged(nil, "anything"), "nil cmd should return false")
	assert.False(t, flagChanged(nil, ""), "nil cmd with empty name")

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("myflag", "", "test flag")
	assert.False(t, flagChanged(cmd, "myflag"), "unchanged flag")
	assert.False(t, flagChanged(cmd, "nonexistent"), "nonexistent flag")
}

func TestFlagChangedAfterSet(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("myflag", "", "test flag")
	require.NoError(t, cmd.Flags().Set("myflag", "val"))
	assert.True(t, flagChanged(cmd, "myflag"))
}

func TestDisplayID(t *testing.T) {
	assert.Equal(t, "App.Id", displayID("http://example.com/w", "App.Id"))
	assert.Equal(t, "http://example.com/w", displayID("http://example.com/w", ""))
	assert.Equal(t, "<unnamed widget>", displayID("", ""))
}

// ---------- Exit code tests ----------

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name: "invalid argument",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("malformed configuration document"),
			expected: 2,
		},
		{
			name: "already exists",
			err: errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg("dup"),
			expected: 2,
		},
		{
			name: "missing signature",
			err: errbuilder.New().
				WithCode(errbuilder.CodePermissionDenied).
				WithMsg("package has no author-signature.xml"),
			expected: 3,
		},
		{
			name: "security model conflict",
			err: errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("security model conflict"),
			expected: 4,
		},
		{
			name: "not installed",
			err: errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("widget package is not installed"),
			expected: 5,
		},
		{
			name: "internal error",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("boom"),
			expected: 5,
		},
		{
			name:     "unknown error",
			err:      assert.AnError,
			expected: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := exitCodeForError(tt.err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
