// Package worktree is the engine behind every forest command: it resolves
// branch names to directories, reads the worktree inventory, aggregates
// status, groups by namespace and drives bulk sync. All repository access
// goes through a git.Gateway.
package worktree

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/garymjr/forest/internal/config"
	ferrors "github.com/garymjr/forest/internal/errors"
	"github.com/garymjr/forest/internal/git"
	"github.com/garymjr/forest/internal/logger"
	"github.com/garymjr/forest/internal/models"
	"github.com/garymjr/forest/internal/validate"
)

type Manager struct {
	gw       git.Gateway
	resolver *Resolver
	log      *slog.Logger

	now       func() time.Time
	createdAt func(string) (time.Time, error)
}

func NewManager(cfg config.Config, gw git.Gateway) *Manager {
	return &Manager{
		gw:        gw,
		resolver:  NewResolver(cfg, gw),
		log:       logger.ComponentLogger("worktree"),
		now:       time.Now,
		createdAt: git.CreatedAt,
	}
}

func (m *Manager) Resolver() *Resolver {
	return m.resolver
}

// ResolvePath is Resolver().Resolve.
func (m *Manager) ResolvePath(ctx context.Context, branchOrPath string) string {
	return m.resolver.Resolve(ctx, branchOrPath)
}

// RequireRepo fails unless the gateway is inside a git repository.
func (m *Manager) RequireRepo(ctx context.Context) error {
	if _, err := m.gw.TopLevel(ctx); err != nil {
		return ferrors.NotARepo(err)
	}
	return nil
}

// Find looks a worktree up by branch name, path, resolved path or directory
// name, in that order of precedence.
func (m *Manager) Find(ctx context.Context, target string) (models.Worktree, error) {
	const op = ferrors.Op("worktree.Find")

	if res := validate.Path(target); !res.Valid {
		return models.Worktree{}, ferrors.InvalidPath(op, res.Error)
	}

	items := m.List(ctx)
	for _, wt := range items {
		if wt.Branch == target && wt.Branch != models.DetachedBranch {
			return wt, nil
		}
	}

	candidates := []string{filepath.Clean(target)}
	if abs, err := filepath.Abs(target); err == nil {
		candidates = append(candidates, abs)
	}
	candidates = append(candidates, filepath.Clean(m.resolver.Resolve(ctx, target)))
	for _, c := range candidates {
		for _, wt := range items {
			if filepath.Clean(wt.Path) == c {
				return wt, nil
			}
		}
	}

	for _, wt := range items {
		if filepath.Base(wt.Path) == target {
			return wt, nil
		}
	}
	return models.Worktree{}, ferrors.WorktreeNotFound(op, target)
}

// Add creates a worktree. With only a target, the target is the branch
// (placed under opts.Group when given) and the directory is generated,
// unless the target is an explicit path, in which case its last element is
// the branch. With a branch as well, the target is the directory. From
// implies a new branch.
func (m *Manager) Add(ctx context.Context, opts models.AddOptions) (models.AddResult, error) {
	const op = ferrors.Op("worktree.Add")
	const usage = "forest add <branch> | forest add <path> <branch>"

	if strings.TrimSpace(opts.Target) == "" {
		return models.AddResult{}, ferrors.InvalidArgs(op, "missing required argument", usage)
	}

	target := validate.ExpandHome(opts.Target)
	branch := opts.Branch
	explicitPath := branch != ""
	if !explicitPath {
		branch = opts.Target
		if IsExplicitPath(opts.Target) {
			// forest add ~/trees/fix-login: the directory names the branch.
			explicitPath = true
			branch = filepath.Base(filepath.Clean(target))
		}
		if opts.Group != "" && !InGroup(branch, opts.Group) {
			branch = opts.Group + "/" + branch
		}
	}
	if res := validate.Branch(branch); !res.Valid {
		return models.AddResult{}, ferrors.InvalidBranch(op, res.Error)
	}
	if explicitPath {
		if res := validate.Path(opts.Target); !res.Valid {
			return models.AddResult{}, ferrors.InvalidPath(op, res.Error)
		}
	}

	var path string
	if explicitPath {
		path = m.resolver.Resolve(ctx, target)
	} else {
		path = m.resolver.PathForBranch(ctx, branch)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if res := validate.Path(path); !res.Valid {
		return models.AddResult{}, ferrors.InvalidPath(op, res.Error)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return models.AddResult{}, ferrors.E(op, ferrors.KindIO, ferrors.CodeAdd,
			fmt.Sprintf("failed to create %s", filepath.Dir(path)), err)
	}

	newBranch := opts.NewBranch || opts.From != ""
	args := git.AddArgs{Path: path, Branch: branch, NewBranch: newBranch, Base: opts.From}
	if err := m.gw.AddWorktree(ctx, args); err != nil {
		return models.AddResult{}, ferrors.GitFailed(op, ferrors.CodeAdd,
			fmt.Sprintf("failed to create worktree at %s", path), err,
			"Check that the path is free and the branch exists (use -b to create it)")
	}
	m.log.Info("worktree added", "path", path, "branch", branch, "new_branch", newBranch)
	return models.AddResult{Path: path, Branch: branch, NewBranch: newBranch}, nil
}

// Remove deletes a worktree. Without force it refuses one with uncommitted
// changes. The main worktree is never removed.
func (m *Manager) Remove(ctx context.Context, target string, force bool) (models.Worktree, error) {
	const op = ferrors.Op("worktree.Remove")

	wt, err := m.Find(ctx, target)
	if err != nil {
		return models.Worktree{}, err
	}
	if wt.Main {
		return models.Worktree{}, ferrors.E(op, ferrors.KindInvalid, ferrors.CodeRemove,
			fmt.Sprintf("cannot remove the main worktree: %s", wt.Path),
			ferrors.Suggestion("Remove a linked worktree instead"))
	}
	if !force {
		if st := m.StatusOf(ctx, wt); st.Dirty {
			return models.Worktree{}, ferrors.E(op, ferrors.CodeDirtyWorktree,
				fmt.Sprintf("worktree has uncommitted changes (%d files): %s", st.ChangedFiles(), wt.Path),
				ferrors.Suggestion("Commit or stash the changes, or use --force"))
		}
	}

	if err := m.gw.RemoveWorktree(ctx, wt.Path, force); err != nil {
		return models.Worktree{}, ferrors.GitFailed(op, ferrors.CodeRemove,
			fmt.Sprintf("failed to remove worktree at %s", wt.Path), err,
			"Check that the worktree is not locked, or use --force")
	}
	m.log.Info("worktree removed", "path", wt.Path, "force", force)
	return wt, nil
}

// Clone adds a worktree at dest checked out at source's current commit,
// detached or on a new branch named after dest.
func (m *Manager) Clone(ctx context.Context, source, dest string, newBranch bool) (models.CloneResult, error) {
	const op = ferrors.Op("worktree.Clone")
	const usage = "forest clone <source> <dest> [-b]"

	if strings.TrimSpace(source) == "" || strings.TrimSpace(dest) == "" {
		return models.CloneResult{}, ferrors.InvalidArgs(op, "missing required arguments", usage)
	}
	if res := validate.Path(dest); !res.Valid {
		return models.CloneResult{}, ferrors.InvalidPath(op, res.Error)
	}
	branch := ""
	if newBranch {
		branch = dest
		if strings.ContainsAny(dest, `/\`) {
			branch = filepath.Base(dest)
		}
		if res := validate.Branch(branch); !res.Valid {
			return models.CloneResult{}, ferrors.InvalidBranch(op, res.Error)
		}
	}

	src, err := m.Find(ctx, source)
	if err != nil {
		return models.CloneResult{}, err
	}
	commit, err := m.gw.HeadCommit(ctx, src.Path)
	if err != nil {
		return models.CloneResult{}, ferrors.GitFailed(op, ferrors.CodeClone,
			fmt.Sprintf("failed to read HEAD of %s", src.Path), err, "")
	}

	path := m.resolver.Resolve(ctx, dest)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return models.CloneResult{}, ferrors.E(op, ferrors.KindIO, ferrors.CodeClone,
			fmt.Sprintf("failed to create %s", filepath.Dir(path)), err)
	}

	args := git.AddArgs{Path: path, Base: commit, Detach: !newBranch}
	if newBranch {
		args.Branch = branch
		args.NewBranch = true
	}
	if err := m.gw.AddWorktree(ctx, args); err != nil {
		return models.CloneResult{}, ferrors.GitFailed(op, ferrors.CodeClone,
			fmt.Sprintf("failed to clone %s to %s", src.Path, path), err,
			"Check that the destination is free")
	}
	m.log.Info("worktree cloned", "source", src.Path, "path", path, "commit", commit)
	return models.CloneResult{
		Source:       src.Path,
		SourceCommit: commit,
		Path:         path,
		Branch:       branch,
		NewBranch:    newBranch,
	}, nil
}

func (m *Manager) Lock(ctx context.Context, target, reason string) (models.Worktree, error) {
	const op = ferrors.Op("worktree.Lock")

	wt, err := m.Find(ctx, target)
	if err != nil {
		return models.Worktree{}, err
	}
	if strings.ContainsAny(reason, "\x00\n") {
		return models.Worktree{}, ferrors.InvalidArgs(op, "lock reason contains invalid characters",
			"forest lock <target> [--reason text]")
	}
	if err := m.gw.LockWorktree(ctx, wt.Path, reason); err != nil {
		return models.Worktree{}, ferrors.GitFailed(op, ferrors.CodeLock,
			fmt.Sprintf("failed to lock worktree at %s", wt.Path), err,
			"The worktree may already be locked")
	}
	wt.Locked = true
	wt.LockReason = reason
	return wt, nil
}

// Unlock unlocks a worktree. With force an already unlocked worktree is not
// an error.
func (m *Manager) Unlock(ctx context.Context, target string, force bool) (models.Worktree, error) {
	const op = ferrors.Op("worktree.Unlock")

	wt, err := m.Find(ctx, target)
	if err != nil {
		return models.Worktree{}, err
	}
	if !wt.Locked {
		if force {
			return wt, nil
		}
		return models.Worktree{}, ferrors.E(op, ferrors.CodeUnlock,
			fmt.Sprintf("worktree is not locked: %s", wt.Path),
			ferrors.Suggestion("Use --force to ignore unlocked worktrees"))
	}
	if err := m.gw.UnlockWorktree(ctx, wt.Path); err != nil {
		return models.Worktree{}, ferrors.GitFailed(op, ferrors.CodeUnlock,
			fmt.Sprintf("failed to unlock worktree at %s", wt.Path), err, "")
	}
	wt.Locked = false
	wt.LockReason = ""
	return wt, nil
}

// Prune removes administrative data for worktrees whose directory is gone.
func (m *Manager) Prune(ctx context.Context, opts models.PruneOptions) (models.PruneResult, error) {
	const op = ferrors.Op("worktree.Prune")

	out, err := m.gw.PruneWorktrees(ctx, opts.DryRun)
	if err != nil {
		return models.PruneResult{}, ferrors.GitFailed(op, ferrors.CodePrune, "failed to prune worktrees", err,
			"Ensure you are in a git repository")
	}
	pruned := []string{}
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			pruned = append(pruned, line)
		}
	}
	return models.PruneResult{Pruned: pruned, Count: len(pruned), DryRun: opts.DryRun}, nil
}

// Info gathers the detailed view of one worktree. Missing details are left
// empty.
func (m *Manager) Info(ctx context.Context, target string) (models.WorktreeInfo, error) {
	wt, err := m.Find(ctx, target)
	if err != nil {
		return models.WorktreeInfo{}, err
	}
	info := models.WorktreeInfo{WorktreeStatus: m.StatusOf(ctx, wt)}
	if subject, err := m.gw.LastCommitSubject(ctx, wt.Path); err == nil {
		info.LastCommit = subject
	}
	if created, err := m.createdAt(wt.Path); err == nil {
		info.CreatedAt = created
	}
	return info, nil
}
