package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"widget-installer/internal/types"
)

func TestInstallApp(t *testing.T) {
	service, labels := newTestService(t)
	packageDir := fixturePath(t, "basic")

	result, err := service.Install(t.Context(), InstallRequest{PackageDir: packageDir})
	require.NoError(t, err)
	expected := InstallResult{
		PackageID: "AbCdE12345",
		AppID:     "AbCdE12345.Weather",
		Version:   "1.2.0",
	}
	if diff := cmp.Diff(expected, result); diff != "" {
		t.Fatalf("unexpected install result (-want +got):\n%s", diff)
	}

	record, ok, err := service.Registry.Lookup("AbCdE12345")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(packageDir, "config.xml"), record.ConfigPath)
	assert.Equal(t, types.SecurityModelV1, record.SecurityModel)
	assert.Equal(t, "2026-03-01T12:00:00Z", record.InstalledAt)
	assert.Equal(t, []string{"AbCdE12345"}, labels.applied)

	again, err := service.Install(t.Context(), InstallRequest{PackageDir: packageDir})
	require.NoError(t, err)
	assert.True(t, again.Updated)
}

func TestInstallAppRejectsDowngrade(t *testing.T) {
	service, _ := newTestService(t)
	_, err := service.Install(t.Context(), InstallRequest{PackageDir: fixturePath(t, "basic")})
	require.NoError(t, err)

	older := copyPackage(t, "basic")
	configPath := filepath.Join(older, "config.xml")
	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(configPath, []byte(strings.Replace(string(data), `version="1.2.0"`, `version="1.0.0"`, 1)), 0644))

	_, err = service.Install(t.Context(), InstallRequest{PackageDir: older})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))

	result, err := service.Install(t.Context(), InstallRequest{PackageDir: older, Force: true})
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", result.Version)
}

func TestInstallAppSignatureCheck(t *testing.T) {
	service, labels := newTestService(t)
	packageDir := fixturePath(t, "csp")

	_, err := service.Install(t.Context(), InstallRequest{PackageDir: packageDir})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodePermissionDenied, errbuilder.CodeOf(err))
	assert.Empty(t, labels.applied)

	result, err := service.Install(t.Context(), InstallRequest{PackageDir: packageDir, SkipSignature: true})
	require.NoError(t, err)
	assert.Equal(t, "NoTeS00001.Notes", result.AppID)
}

func TestInstallAppErrors(t *testing.T) {
	tests := []struct {
		name     string
		service  func(t *testing.T) Service
		dir      func(t *testing.T) string
		wantCode errbuilder.ErrCode
	}{
		{
			name:     "missing directory",
			service:  func(t *testing.T) Service { s, _ := newTestService(t); return s },
			dir:      func(t *testing.T) string { return "" },
			wantCode: errbuilder.CodeInvalidArgument,
		},
		{
			name:     "no config.xml",
			service:  func(t *testing.T) Service { s, _ := newTestService(t); return s },
			dir:      func(t *testing.T) string { return t.TempDir() },
			wantCode: errbuilder.CodeNotFound,
		},
		{
			name:     "no application element",
			service:  func(t *testing.T) Service { s, _ := newTestService(t); return s },
			dir:      func(t *testing.T) string { return fixturePath(t, "latin1") },
			wantCode: errbuilder.CodeInvalidArgument,
		},
		{
			name: "platform too old",
			service: func(t *testing.T) Service {
				s, _ := newTestService(t)
				s.PlatformVersion = "2.2"
				return s
			},
			dir:      func(t *testing.T) string { return fixturePath(t, "basic") },
			wantCode: errbuilder.CodeFailedPrecondition,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.service(t).Install(t.Context(), InstallRequest{PackageDir: tt.dir(t)})
			require.Error(t, err)
			if diff := cmp.Diff(tt.wantCode, errbuilder.CodeOf(err)); diff != "" {
				t.Fatalf("unexpected error code (-want +got):\n%s", diff)
			}
		})
	}
}

// failingRegistry accepts lookups but refuses every registration.
type failingRegistry struct{}

func (failingRegistry) Lookup(string) (types.InstalledWidget, bool, error) {
	return types.InstalledWidget{}, false, nil
}

func (failingRegistry) Register(types.InstalledWidget) error {
	return errbuilder.New().WithCode(errbuilder.CodeInternal).WithMsg("disk full")
}

func (failingRegistry) Unregister(string) error {
	return nil
}

func (failingRegistry) List() ([]types.InstalledWidget, error) {
	return nil, nil
}

func TestInstallAppLabelFailureLeavesRegistryUntouched(t *testing.T) {
	service, labels := newTestService(t)
	labels.applyErr = errbuilder.New().WithCode(errbuilder.CodePermissionDenied).WithMsg("label denied")

	_, err := service.Install(t.Context(), InstallRequest{PackageDir: fixturePath(t, "basic")})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodePermissionDenied, errbuilder.CodeOf(err))

	_, ok, err := service.Registry.Lookup("AbCdE12345")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInstallAppRollsBackLabelsWhenRegisterFails(t *testing.T) {
	service, labels := newTestService(t)
	service.Registry = failingRegistry{}

	_, err := service.Install(t.Context(), InstallRequest{PackageDir: fixturePath(t, "basic")})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInternal, errbuilder.CodeOf(err))
	assert.Equal(t, []string{"AbCdE12345"}, labels.applied)
	require.Len(t, labels.removed, 1)
	assert.Equal(t, "AbCdE12345", labels.removed[0].PackageID)
}
