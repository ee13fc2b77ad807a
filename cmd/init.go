package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	ferrors "github.com/garymjr/forest/internal/errors"
	"github.com/garymjr/forest/internal/git"
	"github.com/garymjr/forest/internal/worktree"
)

var initCmd = &cobra.Command{
	Use:   "init <git-url>",
	Short: "Initialize a new worktree setup",
	Long: `Initialize a new worktree setup by creating a bare clone of a repository.
This command creates a directory structure optimized for git worktree workflows:

  <repo>/<repo>.git   the bare repository`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	const op = ferrors.Op("cmd.init")
	gitURL := args[0]

	repoName := worktree.RepoNameFromURL(gitURL)
	if repoName == "" {
		return ferrors.InvalidArgs(op, fmt.Sprintf("could not extract repository name from: %s", gitURL), "forest init <git-url>")
	}

	_, statErr := os.Stat(repoName)
	created := os.IsNotExist(statErr)
	if err := os.MkdirAll(repoName, 0755); err != nil {
		return ferrors.E(op, ferrors.KindIO, ferrors.CodeInit, fmt.Sprintf("failed to create directory %s", repoName), err)
	}

	bareRepoDir := filepath.Join(repoName, repoName+".git")

	var progress io.Writer
	if !jsonOutput {
		fmt.Fprintf(cmd.OutOrStdout(), "Cloning %s into %s...\n", gitURL, bareRepoDir)
		progress = cmd.ErrOrStderr()
	}
	if err := git.BareClone(cmd.Context(), gitURL, bareRepoDir, progress); err != nil {
		if created {
			os.RemoveAll(repoName)
		}
		if errors.Is(err, git.ErrExists) {
			return ferrors.E(op, ferrors.KindInvalid, ferrors.CodeInit, fmt.Sprintf("directory %s already exists", bareRepoDir), err)
		}
		return ferrors.E(op, ferrors.KindGit, ferrors.CodeInit, "failed to clone repository", err,
			ferrors.Suggestion("Check the URL and your access to the repository"))
	}

	abs, err := filepath.Abs(repoName)
	if err != nil {
		abs = repoName
	}
	data := map[string]any{"path": abs, "bare_repository": filepath.Join(abs, repoName+".git")}
	return emit(cmd.OutOrStdout(), data, func(w io.Writer) {
		fmt.Fprintln(w)
		fmt.Fprintln(w, successMsg(fmt.Sprintf("Successfully initialized worktree setup in %s", repoName)))
		fmt.Fprintf(w, "  Bare repository: %s\n", bareRepoDir)
	})
}
