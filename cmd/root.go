package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/garymjr/forest/internal/config"
	ferrors "github.com/garymjr/forest/internal/errors"
	"github.com/garymjr/forest/internal/git"
	"github.com/garymjr/forest/internal/logger"
	"github.com/garymjr/forest/internal/worktree"
)

var (
	jsonOutput bool
	debugLog   bool
)

var rootCmd = &cobra.Command{
	Use:   "forest",
	Short: "Forest is a Git worktree manager",
	Long: `Forest is a CLI tool for managing Git worktrees.
It places worktrees under a configurable directory, reports their status,
groups them by branch namespace and keeps them in sync with their upstreams.

Every command accepts --json for structured output.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetDebug(debugLog || os.Getenv("FOREST_DEBUG") == "1")
	},
}

func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	defer logger.Close()

	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	logger.Debug("command failed: %v", err)

	var re *reportedError
	if !ferrors.As(err, &re) {
		report(err, stdout, stderr)
	}
	return exitCode(err)
}

// newManager builds the engine for one invocation from the on-disk config.
func newManager() *worktree.Manager {
	cfg := config.Load()
	return worktree.NewManager(cfg, git.NewCLI("", cfg.GitTimeout))
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("forest version {{.Version}}\n")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "Write debug output to the log file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(cloneCmd)
	rootCmd.AddCommand(lockCmd)
	rootCmd.AddCommand(unlockCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
