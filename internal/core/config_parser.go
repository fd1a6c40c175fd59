package core

import (
	"context"

	"widget-installer/internal/parser"
	"widget-installer/internal/ports"
	"widget-installer/internal/types"
)

// ParseConfig streams a config.xml document from source into a fresh
// ConfigData. On a structural error the partially filled record is
// discarded. The source is closed before ParseConfig returns.
func ParseConfig(ctx context.Context, source ports.XMLSourcePort) (*types.ConfigData, error) {
	data := types.NewConfigData()
	root := parser.NewRootParser(WidgetTag, func() *WidgetParser {
		return NewWidgetParser(data)
	})
	if err := parser.NewRunner().Run(ctx, source, root); err != nil {
		return nil, err
	}
	return data, nil
}
