package policies

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"widget-installer/internal/types"
)

// ReconcileSecurityModel decides which security model a parsed widget
// uses. The legacy model is signalled by access entries and the newer one
// by a content security policy or an allow-navigation list; a widget may
// not use both. Under the newer model the access list is cleared.
func ReconcileSecurityModel(config *types.ConfigData) error {
	v2Signals := securityModelV2Signals(config)
	if len(v2Signals) > 0 && len(config.Access) > 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("security model conflict: access elements cannot be combined with %s", strings.Join(v2Signals, ", ")))
	}
	if len(v2Signals) > 0 {
		config.Access = nil
		config.SecurityModel = types.SecurityModelV2
		return nil
	}
	config.SecurityModel = types.SecurityModelV1
	return nil
}

func securityModelV2Signals(config *types.ConfigData) []string {
	var signals []string
	if config.CSP != nil {
		signals = append(signals, "content-security-policy")
	}
	if config.CSPReportOnly != nil {
		signals = append(signals, "content-security-policy-report-only")
	}
	if config.AllowNavigationDeclared {
		signals = append(signals, "allow-navigation")
	}
	return signals
}
