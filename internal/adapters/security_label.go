package adapters

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"widget-installer/internal/ports"
	"widget-installer/internal/types"
)

var _ ports.SecurityLabelPort = SecurityLabelAdapter{}

// SecurityLabelAdapter logs the security labels an install would apply.
// It stands in for the platform's access-control service.
type SecurityLabelAdapter struct{}

func NewSecurityLabelAdapter() SecurityLabelAdapter {
	return SecurityLabelAdapter{}
}

func (SecurityLabelAdapter) Apply(ctx context.Context, widget types.InstalledWidget) error {
	log.Ctx(ctx).Info().
		Str("package", widget.PackageID).
		Str("label", securityLabel(widget)).
		Str("security_model", string(widget.SecurityModel)).
		Str("privileges", strings.Join(widget.Privileges, ",")).
		Msg("applying security labels (dry run)")
	return nil
}

func (SecurityLabelAdapter) Remove(ctx context.Context, widget types.InstalledWidget) error {
	log.Ctx(ctx).Info().
		Str("package", widget.PackageID).
		Str("label", securityLabel(widget)).
		Msg("removing security labels (dry run)")
	return nil
}

func securityLabel(widget types.InstalledWidget) string {
	return "User::Pkg::" + widget.PackageID
}
