package git

import "context"

// Gateway is every git primitive forest relies on. Methods that return a
// string hand back git's raw stdout; parsing belongs to the caller.
type Gateway interface {
	// WorktreeList returns `git worktree list --porcelain`.
	WorktreeList(ctx context.Context) (string, error)
	AddWorktree(ctx context.Context, args AddArgs) error
	RemoveWorktree(ctx context.Context, path string, force bool) error
	// PruneWorktrees returns the lines git reports for each pruned entry.
	PruneWorktrees(ctx context.Context, dryRun bool) (string, error)
	LockWorktree(ctx context.Context, path, reason string) error
	UnlockWorktree(ctx context.Context, path string) error

	// Status returns `git status --porcelain` for the worktree at dir.
	Status(ctx context.Context, dir string) (string, error)
	// Upstream resolves the tracking reference of dir's current branch.
	Upstream(ctx context.Context, dir string) (string, error)
	// LeftRightCount returns `git rev-list --left-right --count left...right`.
	LeftRightCount(ctx context.Context, dir, left, right string) (string, error)
	Stash(ctx context.Context, dir, message string) error
	Pull(ctx context.Context, dir string) error

	RemoteURL(ctx context.Context, name string) (string, error)
	TopLevel(ctx context.Context) (string, error)
	HeadCommit(ctx context.Context, dir string) (string, error)
	LastCommitSubject(ctx context.Context, dir string) (string, error)
}

// AddArgs describes a `git worktree add` invocation.
type AddArgs struct {
	Path string
	// Branch is checked out, or created when NewBranch is set.
	Branch    string
	NewBranch bool
	// Base is the start point for a new branch or a detached checkout.
	Base   string
	Detach bool
}

// Argv renders the arguments after "git".
func (a AddArgs) Argv() []string {
	argv := []string{"worktree", "add"}
	switch {
	case a.NewBranch:
		argv = append(argv, "-b", a.Branch, a.Path)
		if a.Base != "" {
			argv = append(argv, a.Base)
		}
	case a.Detach:
		argv = append(argv, "--detach", a.Path)
		if a.Base != "" {
			argv = append(argv, a.Base)
		}
	default:
		argv = append(argv, a.Path, a.Branch)
	}
	return argv
}
