package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"widget-installer/internal/app"
)

type uninstallOptions struct {
	PackageID string
}

func newUninstallCommand() *cobra.Command {
	opts := uninstallOptions{}
	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove an installed widget",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUninstall(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.PackageID, "package-id", "", "Package id of the installed widget")
	_ = viper.BindPFlag("package_id", cmd.Flags().Lookup("package-id"))
	return cmd
}

func runUninstall(ctx context.Context, cmd *cobra.Command, opts uninstallOptions) error {
	service := newAppService()
	result, err := service.Uninstall(ctx, app.UninstallRequest{
		PackageID: resolveString(cmd, opts.PackageID, "package_id", "package-id"),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "uninstalled: %s\n", result.AppID)
	return nil
}
