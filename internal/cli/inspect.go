package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"widget-installer/internal/app"
)

type inspectOptions struct {
	ConfigXML string
	Output    string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarise a config.xml and optionally write it as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.ConfigXML, "config-xml", "", "Path to config.xml")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Write the parsed configuration to this YAML file")
	_ = viper.BindPFlag("config_xml", cmd.Flags().Lookup("config-xml"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runInspect(ctx context.Context, cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(ctx, app.InspectRequest{
		ConfigPath: resolveString(cmd, opts.ConfigXML, "config_xml", "config-xml"),
		OutputPath: resolveString(cmd, opts.Output, "output", "output"),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	config := result.Config
	fmt.Fprintf(out, "widget: %s\n", config.ID)
	fmt.Fprintf(out, "version: %s\n", config.Version)
	if config.Application != nil {
		fmt.Fprintf(out, "application: %s (package %s)\n", config.Application.ID, config.Application.PackageID)
	}
	fmt.Fprintf(out, "security model: %s\n", config.SecurityModel)
	for _, locale := range result.Locales {
		entry := config.LocalizedData[locale]
		label := locale
		if label == "" {
			label = "default"
		}
		name := ""
		if entry.Name != nil {
			name = *entry.Name
		}
		fmt.Fprintf(out, "- [%s] %s\n", label, name)
	}
	if len(config.Privileges) > 0 {
		fmt.Fprintf(out, "privileges: %s\n", strings.Join(config.Privileges, ", "))
	}
	fmt.Fprintf(out, "icons: %d, app-controls: %d, app-widgets: %d\n", len(config.Icons), len(config.AppControls), len(config.AppWidgets))
	if result.ReportPath != "" {
		fmt.Fprintf(out, "report written to %s\n", result.ReportPath)
	}
	return nil
}
