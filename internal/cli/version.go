package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mikey/mailsift/internal/version"
)

// newVersionCmd creates the version subcommand
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the mailsift version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mailsift version %s\n", version.Version)
		},
	}
}
