package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"widget-installer/internal/policies"
	"widget-installer/internal/types"
)

// Install registers the widget unpacked in req.PackageDir. Installing a
// package id that is already registered is an update.
func (s Service) Install(ctx context.Context, req InstallRequest) (InstallResult, error) {
	packageDir := strings.TrimSpace(req.PackageDir)
	if packageDir == "" {
		return InstallResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package directory is required")
	}
	configPath := filepath.Join(packageDir, configFileName)
	config, err := s.loadConfig(ctx, configPath)
	if err != nil {
		return InstallResult{}, err
	}
	if config.Application == nil {
		return InstallResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s has no tizen:application element", configPath))
	}
	if err := policies.CheckRequiredVersion(ctx, s.PlatformVersion, config.Application); err != nil {
		return InstallResult{}, err
	}
	if req.SkipSignature {
		log.Ctx(ctx).Warn().Str("package_dir", packageDir).Msg("skipping signature check")
	} else if err := s.Signatures.Verify(packageDir); err != nil {
		return InstallResult{}, err
	}

	packageID := config.Application.PackageID
	existing, updated, err := s.Registry.Lookup(packageID)
	if err != nil {
		return InstallResult{}, err
	}
	if updated {
		if err := policies.CheckUpdate(existing.Version, config.Version, req.Force); err != nil {
			return InstallResult{}, err
		}
	}

	record := types.InstalledWidget{
		PackageID:     packageID,
		AppID:         config.Application.ID,
		Version:       config.Version,
		PackageDir:    packageDir,
		ConfigPath:    configPath,
		Privileges:    config.Privileges,
		SecurityModel: config.SecurityModel,
		InstalledAt:   s.now().UTC().Format(time.RFC3339),
	}
	assert.NotEmpty(ctx, record.AppID, "application id must be set")
	if err := s.Labels.Apply(ctx, record); err != nil {
		return InstallResult{}, err
	}
	if err := s.Registry.Register(record); err != nil {
		if removeErr := s.Labels.Remove(ctx, record); removeErr != nil {
			log.Ctx(ctx).Warn().
				Err(removeErr).
				Str("package", record.PackageID).
				Msg("failed to roll back security labels")
		}
		return InstallResult{}, err
	}
	log.Ctx(ctx).Info().
		Str("package", record.PackageID).
		Str("app", record.AppID).
		Bool("update", updated).
		Msg("widget installed")
	return InstallResult{
		PackageID: record.PackageID,
		AppID:     record.AppID,
		Version:   record.Version,
		Updated:   updated,
	}, nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}
