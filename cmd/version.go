package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Print the version number, commit hash, and build date of forest.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data := map[string]string{"version": Version, "commit": Commit, "date": Date}
		return emit(cmd.OutOrStdout(), data, func(w io.Writer) {
			fmt.Fprintf(w, "forest version %s\n", Version)
			fmt.Fprintf(w, "commit: %s\n", Commit)
			fmt.Fprintf(w, "built: %s\n", Date)
		})
	},
}
