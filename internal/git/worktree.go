package git

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
)

func (c *CLI) WorktreeList(ctx context.Context) (string, error) {
	return c.output(ctx, "", "worktree", "list", "--porcelain")
}

func (c *CLI) AddWorktree(ctx context.Context, args AddArgs) error {
	return c.quiet(ctx, "", args.Argv()...)
}

func (c *CLI) RemoveWorktree(ctx context.Context, path string, force bool) error {
	argv := []string{"worktree", "remove"}
	if force {
		argv = append(argv, "--force")
	}
	return c.quiet(ctx, "", append(argv, path)...)
}

func (c *CLI) PruneWorktrees(ctx context.Context, dryRun bool) (string, error) {
	argv := []string{"worktree", "prune", "--verbose"}
	if dryRun {
		argv = append(argv, "--dry-run")
	}
	// git reports pruned entries on stderr.
	stdout, stderr, err := c.run(ctx, "", argv...)
	if err != nil {
		return "", err
	}
	return stdout + stderr, nil
}

func (c *CLI) LockWorktree(ctx context.Context, path, reason string) error {
	argv := []string{"worktree", "lock"}
	if reason != "" {
		argv = append(argv, "--reason", reason)
	}
	return c.quiet(ctx, "", append(argv, path)...)
}

func (c *CLI) UnlockWorktree(ctx context.Context, path string) error {
	return c.quiet(ctx, "", "worktree", "unlock", path)
}

// Status uses `git status --porcelain`, which is faster than go-git's
// Status(). go-git is only consulted when the git command fails.
func (c *CLI) Status(ctx context.Context, dir string) (string, error) {
	if _, err := os.Stat(dir); err != nil {
		return "", err
	}
	out, err := c.output(ctx, dir, "status", "--porcelain")
	if err == nil {
		return out, nil
	}
	if ctx.Err() != nil {
		return "", err
	}

	fallback, gerr := statusGoGit(dir)
	if gerr != nil {
		return "", fmt.Errorf("%w (go-git fallback: %v)", err, gerr)
	}
	c.logger().Debug("status via go-git", "dir", dir)
	return fallback, nil
}

// statusGoGit renders go-git's status in porcelain v1 form, sorted by path.
func statusGoGit(dir string) (string, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return "", err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", err
	}
	status, err := wt.Status()
	if err != nil {
		return "", err
	}

	names := make([]string, 0, len(status))
	for name := range status {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fs := status[name]
		if fs.Staging == git.Unmodified && fs.Worktree == git.Unmodified {
			continue
		}
		fmt.Fprintf(&b, "%c%c %s\n", fs.Staging, fs.Worktree, name)
	}
	return b.String(), nil
}
