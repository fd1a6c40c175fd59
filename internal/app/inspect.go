package app

import (
	"context"
	"sort"
	"strings"
)

func (s Service) Inspect(ctx context.Context, req InspectRequest) (InspectResult, error) {
	config, err := s.loadConfig(ctx, req.ConfigPath)
	if err != nil {
		return InspectResult{}, err
	}
	result := InspectResult{
		Config:  config,
		Locales: sortedKeys(config.LocalizedData),
	}
	if outputPath := strings.TrimSpace(req.OutputPath); outputPath != "" {
		if err := s.Reports.WriteReport(outputPath, *config); err != nil {
			return InspectResult{}, err
		}
		result.ReportPath = outputPath
	}
	return result, nil
}

func sortedKeys[V any](input map[string]V) []string {
	keys := make([]string, 0, len(input))
	for key := range input {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
