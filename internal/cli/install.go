package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"widget-installer/internal/app"
)

type installOptions struct {
	PackageDir    string
	Force         bool
	SkipSignature bool
}

func newInstallCommand() *cobra.Command {
	opts := installOptions{}
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install an unpacked widget package",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInstall(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.PackageDir, "package-dir", "", "Unpacked widget package directory")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Allow installing an older version over a newer one")
	cmd.Flags().BoolVar(&opts.SkipSignature, "skip-signature", false, "Do not require signature files")
	_ = viper.BindPFlag("package_dir", cmd.Flags().Lookup("package-dir"))
	_ = viper.BindPFlag("force", cmd.Flags().Lookup("force"))
	_ = viper.BindPFlag("skip_signature", cmd.Flags().Lookup("skip-signature"))
	return cmd
}

func runInstall(ctx context.Context, cmd *cobra.Command, opts installOptions) error {
	service := newAppService()
	result, err := service.Install(ctx, app.InstallRequest{
		PackageDir:    resolveString(cmd, opts.PackageDir, "package_dir", "package-dir"),
		Force:         resolveBool(cmd, opts.Force, "force", "force"),
		SkipSignature: resolveBool(cmd, opts.SkipSignature, "skip_signature", "skip-signature"),
	})
	if err != nil {
		return err
	}
	action := "installed"
	if result.Updated {
		action = "updated"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %s\n", action, result.AppID, result.Version)
	return nil
}
