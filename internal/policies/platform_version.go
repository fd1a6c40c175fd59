package policies

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	debversion "github.com/knqyf263/go-deb-version"
	"github.com/rs/zerolog/log"

	"widget-installer/internal/types"
)

// CheckRequiredVersion rejects a widget whose application requires a newer
// platform than platformVersion. A widget without a required version is
// accepted.
func CheckRequiredVersion(ctx context.Context, platformVersion string, application *types.ApplicationInfo) error {
	assert.NotEmpty(ctx, platformVersion, "platform version must be set")
	if application == nil || application.RequiredVersion == "" {
		return nil
	}
	platform, err := parseVersion("platform version", platformVersion)
	if err != nil {
		return err
	}
	required, err := parseVersion("required_version", application.RequiredVersion)
	if err != nil {
		return err
	}
	if required.GreaterThan(platform) {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("widget requires platform %s, running %s", application.RequiredVersion, platformVersion))
	}
	log.Ctx(ctx).Debug().
		Str("required", application.RequiredVersion).
		Str("platform", platformVersion).
		Msg("required platform version satisfied")
	return nil
}

// CheckUpdate compares the version of an installed widget with the version
// being installed over it. Downgrades are rejected unless force is set.
// Widgets without a version are never compared.
func CheckUpdate(installed string, incoming string, force bool) error {
	if installed == "" || incoming == "" || force {
		return nil
	}
	current, err := parseVersion("installed version", installed)
	if err != nil {
		return err
	}
	next, err := parseVersion("widget version", incoming)
	if err != nil {
		return err
	}
	if next.LessThan(current) {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("refusing to downgrade widget from %s to %s", installed, incoming))
	}
	return nil
}

func parseVersion(field string, value string) (debversion.Version, error) {
	parsed, err := debversion.NewVersion(value)
	if err != nil {
		return debversion.Version{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid %s %q", field, value)).
			WithCause(err)
	}
	return parsed, nil
}
