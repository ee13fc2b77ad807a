package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/garymjr/forest/internal/config"
	ferrors "github.com/garymjr/forest/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read or change forest's configuration",
	Long: `Read or change forest's configuration.

The only key is "directory", the root under which generated worktree paths
are placed (default ` + config.DefaultDirectory + `).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := config.Load().Get(args[0])
		if err != nil {
			return err
		}
		return emitKeyValue(cmd.OutOrStdout(), args[0], value, "")
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Set(args[0], args[1])
		if err != nil {
			return err
		}
		value, _ := cfg.Get(args[0])
		return emitKeyValue(cmd.OutOrStdout(), args[0], value, fmt.Sprintf("Set %s = %s", args[0], value))
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Restore the default configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := config.KeyDirectory
		if len(args) == 1 {
			key = args[0]
		}
		if _, err := (config.Config{}).Get(key); err != nil {
			return err
		}
		cfg, err := config.Reset()
		if err != nil {
			return err
		}
		value, _ := cfg.Get(key)
		return emitKeyValue(cmd.OutOrStdout(), key, value, fmt.Sprintf("Reset %s = %s", key, value))
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the location of the configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.FilePath()
		if err != nil {
			return ferrors.E(ferrors.Op("cmd.config"), ferrors.KindConfig, ferrors.CodeConfig,
				"cannot locate the configuration file", err)
		}
		return emit(cmd.OutOrStdout(), map[string]any{"path": path}, func(w io.Writer) {
			fmt.Fprintln(w, path)
		})
	},
}

// emitKeyValue prints a key's value, or msg when one is given.
func emitKeyValue(w io.Writer, key, value, msg string) error {
	return emit(w, map[string]any{"key": key, "value": value}, func(w io.Writer) {
		if msg == "" {
			fmt.Fprintln(w, value)
			return
		}
		fmt.Fprintln(w, successMsg(msg))
	})
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configResetCmd)
	configCmd.AddCommand(configPathCmd)
}
