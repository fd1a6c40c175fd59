package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
)

// Uninstall removes a registered widget. When the stored config.xml still
// exists it is parsed again so the labels removed match the current
// privileges; a config that no longer parses does not block removal.
func (s Service) Uninstall(ctx context.Context, req UninstallRequest) (UninstallResult, error) {
	packageID := strings.TrimSpace(req.PackageID)
	if packageID == "" {
		return UninstallResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package id is required")
	}
	record, ok, err := s.Registry.Lookup(packageID)
	if err != nil {
		return UninstallResult{}, err
	}
	if !ok {
		return UninstallResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("widget package %s is not installed", packageID))
	}

	if _, statErr := os.Stat(record.ConfigPath); statErr == nil {
		config, parseErr := s.loadConfig(ctx, record.ConfigPath)
		if parseErr != nil {
			log.Ctx(ctx).Warn().
				Err(parseErr).
				Str("config", record.ConfigPath).
				Msg("stored configuration no longer parses")
		} else {
			record.Privileges = config.Privileges
		}
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return UninstallResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to stat stored configuration").
			WithCause(statErr)
	}

	if err := s.Labels.Remove(ctx, record); err != nil {
		return UninstallResult{}, err
	}
	if err := s.Registry.Unregister(packageID); err != nil {
		return UninstallResult{}, err
	}
	log.Ctx(ctx).Info().Str("package", packageID).Msg("widget uninstalled")
	return UninstallResult{PackageID: record.PackageID, AppID: record.AppID}, nil
}
