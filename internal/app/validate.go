package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"widget-installer/internal/core"
	"widget-installer/internal/policies"
	"widget-installer/internal/types"
)

func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	config, err := s.loadConfig(ctx, req.ConfigPath)
	if err != nil {
		return ValidateResult{}, err
	}
	result := ValidateResult{
		WidgetID:      config.ID,
		Version:       config.Version,
		SecurityModel: config.SecurityModel,
	}
	if config.Application != nil {
		result.AppID = config.Application.ID
	}
	return result, nil
}

// loadConfig parses a config.xml document and settles its security model.
func (s Service) loadConfig(ctx context.Context, path string) (*types.ConfigData, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("config.xml path is required")
	}
	source, err := s.Sources.Open(path)
	if err != nil {
		return nil, err
	}
	config, err := core.ParseConfig(ctx, source)
	if err != nil {
		return nil, err
	}
	if err := policies.ReconcileSecurityModel(config); err != nil {
		return nil, err
	}
	return config, nil
}
