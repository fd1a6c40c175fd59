package core

import (
	"regexp"

	"widget-installer/internal/parser"
)

var (
	packageIDPattern = regexp.MustCompile(`^[0-9A-Za-z]{10}$`)
	appIDPattern     = regexp.MustCompile(`^([0-9A-Za-z]{10})\.[0-9A-Za-z]{1,52}$`)
	versionPattern   = regexp.MustCompile(`^\d+\.\d+(\.\d+)*$`)
)

func validatePackageID(packageID string) error {
	if !packageIDPattern.MatchString(packageID) {
		return parser.Errorf("invalid package id %q: expected 10 alphanumeric characters", packageID)
	}
	return nil
}

// validateAppID checks the application id format and that its prefix is
// the declared package id.
func validateAppID(appID string, packageID string) error {
	match := appIDPattern.FindStringSubmatch(appID)
	if match == nil {
		return parser.Errorf("invalid application id %q: expected <package>.<name>", appID)
	}
	if match[1] != packageID {
		return parser.Errorf("application id %q does not start with package id %q", appID, packageID)
	}
	return nil
}

func validateVersion(field string, version string) error {
	if !versionPattern.MatchString(version) {
		return parser.Errorf("invalid %s %q: expected dotted numeric version", field, version)
	}
	return nil
}
