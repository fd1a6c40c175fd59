package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed widgets, oldest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			service := newAppService()
			result, err := service.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(result.Widgets) == 0 {
				fmt.Fprintln(out, "no widgets installed")
				return nil
			}
			for _, widget := range result.Widgets {
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", widget.PackageID, widget.AppID, widget.Version, widget.InstalledAt)
			}
			return nil
		},
	}
}
