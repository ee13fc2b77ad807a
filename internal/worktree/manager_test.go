package worktree

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "github.com/garymjr/forest/internal/errors"
	"github.com/garymjr/forest/internal/git"
	"github.com/garymjr/forest/internal/models"
)

// listing renders worktrees as porcelain output, main first.
func listing(wts ...models.Worktree) string {
	var out string
	for _, wt := range wts {
		out += "worktree " + wt.Path + "\nHEAD 0123456789abcdef0123456789abcdef01234567\n"
		if wt.Branch == models.DetachedBranch {
			out += "detached\n"
		} else {
			out += "branch refs/heads/" + wt.Branch + "\n"
		}
		if wt.Locked {
			out += "locked\n"
		}
		out += "\n"
	}
	return out
}

func TestFind(t *testing.T) {
	gw := newFake()
	gw.list = listing(
		models.Worktree{Path: "/src/widgets", Branch: "main"},
		models.Worktree{Path: "/wt/widgets/feature-auth", Branch: "feature/auth"},
		models.Worktree{Path: "/wt/widgets/main", Branch: "hotfix"},
		models.Worktree{Path: "/wt/widgets/scratch", Branch: models.DetachedBranch},
	)
	m := newTestManager(t, gw)

	wt, err := m.Find(ctx, "feature/auth")
	require.NoError(t, err)
	assert.Equal(t, "/wt/widgets/feature-auth", wt.Path)

	wt, err = m.Find(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, "/src/widgets", wt.Path, "branch match wins over directory name")

	wt, err = m.Find(ctx, "/wt/widgets/feature-auth/")
	require.NoError(t, err)
	assert.Equal(t, "feature/auth", wt.Branch)

	wt, err = m.Find(ctx, "scratch")
	require.NoError(t, err)
	assert.True(t, wt.IsDetached())

	_, err = m.Find(ctx, "detached")
	assert.Equal(t, ferrors.CodeNotFound, ferrors.GetCode(err), "detached is not a branch name")

	_, err = m.Find(ctx, "nope")
	assert.True(t, ferrors.Is(err, ferrors.KindNotFound))

	_, err = m.Find(ctx, "")
	assert.True(t, ferrors.Is(err, ferrors.KindInvalid))
}

func TestFind_ResolvedPath(t *testing.T) {
	gw := newFake()
	m := newTestManager(t, gw)
	path := m.Resolver().PathForBranch(ctx, "feature-x")
	gw.list = listing(
		models.Worktree{Path: "/src/widgets", Branch: "main"},
		models.Worktree{Path: path, Branch: "renamed"},
	)

	wt, err := m.Find(ctx, "feature-x")
	require.NoError(t, err)
	assert.Equal(t, path, wt.Path)
}

func TestAdd_BranchOnly(t *testing.T) {
	gw := newFake()
	m := newTestManager(t, gw)

	res, err := m.Add(ctx, models.AddOptions{Target: "feature-x", NewBranch: true})
	require.NoError(t, err)
	want := filepath.Join(m.Resolver().Root(), "widgets", "feature-x")
	assert.Equal(t, models.AddResult{Path: want, Branch: "feature-x", NewBranch: true}, res)
	assert.Equal(t, git.AddArgs{Path: want, Branch: "feature-x", NewBranch: true}, gw.lastAdd)
	assert.DirExists(t, filepath.Dir(want))

	// add then resolve
	gw.list = listing(models.Worktree{Path: "/src/widgets", Branch: "main"}, models.Worktree{Path: res.Path, Branch: res.Branch})
	assert.Equal(t, res.Path, m.ResolvePath(ctx, "feature-x"))
	wt, err := m.Find(ctx, "feature-x")
	require.NoError(t, err)
	assert.Equal(t, res.Path, wt.Path)
}

func TestAdd_Group(t *testing.T) {
	gw := newFake()
	m := newTestManager(t, gw)

	res, err := m.Add(ctx, models.AddOptions{Target: "auth", Group: "feature", From: "main"})
	require.NoError(t, err)
	assert.Equal(t, "feature/auth", res.Branch)
	assert.True(t, res.NewBranch, "--from implies a new branch")
	assert.Equal(t, filepath.Join(m.Resolver().Root(), "widgets", "feature-auth"), res.Path)
	assert.Equal(t, "main", gw.lastAdd.Base)

	res, err = m.Add(ctx, models.AddOptions{Target: "feature/ui", Group: "feature"})
	require.NoError(t, err)
	assert.Equal(t, "feature/ui", res.Branch, "already in the group")
}

func TestAdd_ExplicitPath(t *testing.T) {
	gw := newFake()
	m := newTestManager(t, gw)
	dir := filepath.Join(t.TempDir(), "checkouts", "fx")

	res, err := m.Add(ctx, models.AddOptions{Target: dir, Branch: "feature/x"})
	require.NoError(t, err)
	assert.Equal(t, dir, res.Path)
	assert.Equal(t, []string{"worktree", "add", dir, "feature/x"}, gw.lastAdd.Argv())
}

func TestAdd_SingleArgumentPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name   string
		target string
		path   string
	}{
		{"absolute", filepath.Join(home, "my-worktrees", "feature-valid"), filepath.Join(home, "my-worktrees", "feature-valid")},
		{"home relative", "~/my-worktrees/feature-valid", filepath.Join(home, "my-worktrees", "feature-valid")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := newFake()
			m := newTestManager(t, gw)

			res, err := m.Add(ctx, models.AddOptions{Target: tt.target, NewBranch: true})
			require.NoError(t, err)
			assert.Equal(t, tt.path, res.Path)
			assert.Equal(t, "feature-valid", res.Branch)
			assert.Equal(t, []string{"worktree", "add", "-b", "feature-valid", tt.path}, gw.lastAdd.Argv())
		})
	}

	t.Run("dot relative", func(t *testing.T) {
		wd, err := os.Getwd()
		require.NoError(t, err)
		dir, err := filepath.EvalSymlinks(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, os.Chdir(dir))
		t.Cleanup(func() { os.Chdir(wd) })

		gw := newFake()
		m := newTestManager(t, gw)

		res, err := m.Add(ctx, models.AddOptions{Target: "./checkouts/hotfix", Group: "fix"})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "checkouts", "hotfix"), res.Path)
		assert.Equal(t, "fix/hotfix", res.Branch)
	})
}

func TestIsExplicitPath(t *testing.T) {
	for _, s := range []string{"/tmp/x", "./x", "../x", "~/x", "~"} {
		assert.True(t, IsExplicitPath(s), s)
	}
	for _, s := range []string{"feature/auth", "main", "fix-login", ".hidden", "~branch"} {
		assert.False(t, IsExplicitPath(s), s)
	}
}

func TestAdd_ValidationShortCircuits(t *testing.T) {
	long := make([]byte, 257)
	for i := range long {
		long[i] = 'b'
	}
	tests := []struct {
		name string
		opts models.AddOptions
		code ferrors.Code
	}{
		{"missing", models.AddOptions{}, ferrors.CodeInvalidArgs},
		{"newline branch", models.AddOptions{Target: "bad\nbranch"}, ferrors.CodeInvalidBranch},
		{"long branch", models.AddOptions{Target: string(long)}, ferrors.CodeInvalidBranch},
		{"nul path", models.AddOptions{Target: "/tmp/a\x00b", Branch: "ok"}, ferrors.CodeInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := newFake()
			m := newTestManager(t, gw)
			_, err := m.Add(ctx, tt.opts)
			require.Error(t, err)
			assert.Equal(t, tt.code, ferrors.GetCode(err))
			assert.True(t, ferrors.Is(err, ferrors.KindInvalid))
			assert.Empty(t, gw.Calls(), "gateway must not be touched")
		})
	}
}

func TestAdd_GitFailure(t *testing.T) {
	gw := newFake()
	gw.addErr = errFake
	m := newTestManager(t, gw)

	_, err := m.Add(ctx, models.AddOptions{Target: "feature-x"})
	require.Error(t, err)
	assert.Equal(t, ferrors.CodeAdd, ferrors.GetCode(err))
	assert.True(t, ferrors.Is(err, ferrors.KindGit))
	assert.ErrorIs(t, err, errFake)
}

func TestRemove(t *testing.T) {
	gw := newFake()
	gw.list = listing(
		models.Worktree{Path: "/src/widgets", Branch: "main"},
		models.Worktree{Path: "/wt/clean", Branch: "clean"},
		models.Worktree{Path: "/wt/dirty", Branch: "dirty"},
	)
	gw.status["/wt/dirty"] = " M a.go\n"
	m := newTestManager(t, gw)

	_, err := m.Remove(ctx, "main", true)
	assert.Equal(t, ferrors.CodeRemove, ferrors.GetCode(err))

	_, err = m.Remove(ctx, "dirty", false)
	assert.Equal(t, ferrors.CodeDirtyWorktree, ferrors.GetCode(err))
	assert.False(t, gw.called("remove"))

	wt, err := m.Remove(ctx, "dirty", true)
	require.NoError(t, err)
	assert.Equal(t, "/wt/dirty", wt.Path)
	assert.True(t, gw.called("remove --force /wt/dirty"))

	_, err = m.Remove(ctx, "clean", false)
	require.NoError(t, err)
	assert.True(t, gw.called("remove /wt/clean"))

	_, err = m.Remove(ctx, "ghost", false)
	assert.Equal(t, ferrors.CodeNotFound, ferrors.GetCode(err))

	gw.removeErr = errFake
	_, err = m.Remove(ctx, "clean", false)
	assert.Equal(t, ferrors.CodeRemove, ferrors.GetCode(err))
}

func TestClone(t *testing.T) {
	gw := newFake()
	gw.list = listing(
		models.Worktree{Path: "/src/widgets", Branch: "main"},
		models.Worktree{Path: "/wt/feature-a", Branch: "feature/a"},
	)
	gw.head["/wt/feature-a"] = "0123456789abcdef0123456789abcdef01234567"
	m := newTestManager(t, gw)

	res, err := m.Clone(ctx, "feature/a", "experiment", false)
	require.NoError(t, err)
	assert.Equal(t, "/wt/feature-a", res.Source)
	assert.Equal(t, "0123456789abcdef0123456789abcdef01234567", res.SourceCommit)
	assert.Equal(t, filepath.Join(m.Resolver().Root(), "widgets", "experiment"), res.Path)
	assert.False(t, res.NewBranch)
	assert.True(t, gw.lastAdd.Detach)

	res, err = m.Clone(ctx, "feature/a", "experiment-2", true)
	require.NoError(t, err)
	assert.Equal(t, "experiment-2", res.Branch)
	assert.Equal(t, git.AddArgs{Path: res.Path, Branch: "experiment-2", NewBranch: true, Base: res.SourceCommit}, gw.lastAdd)

	_, err = m.Clone(ctx, "missing", "x", false)
	assert.Equal(t, ferrors.CodeNotFound, ferrors.GetCode(err))

	_, err = m.Clone(ctx, "feature/a", "", false)
	assert.Equal(t, ferrors.CodeInvalidArgs, ferrors.GetCode(err))

	_, err = m.Clone(ctx, "main", "y", false)
	assert.Equal(t, ferrors.CodeClone, ferrors.GetCode(err), "HEAD lookup failure")
}

func TestLockUnlock(t *testing.T) {
	gw := newFake()
	gw.list = listing(
		models.Worktree{Path: "/src/widgets", Branch: "main"},
		models.Worktree{Path: "/wt/a", Branch: "a"},
		models.Worktree{Path: "/wt/b", Branch: "b", Locked: true},
	)
	m := newTestManager(t, gw)

	wt, err := m.Lock(ctx, "a", "travelling")
	require.NoError(t, err)
	assert.True(t, wt.Locked)
	assert.True(t, gw.called("lock /wt/a travelling"))

	_, err = m.Lock(ctx, "a", "two\nlines")
	assert.True(t, ferrors.Is(err, ferrors.KindInvalid))

	gw.lockErr = errFake
	_, err = m.Lock(ctx, "a", "")
	assert.Equal(t, ferrors.CodeLock, ferrors.GetCode(err))

	wt, err = m.Unlock(ctx, "b", false)
	require.NoError(t, err)
	assert.False(t, wt.Locked)
	assert.True(t, gw.called("unlock /wt/b"))

	_, err = m.Unlock(ctx, "a", false)
	assert.Equal(t, ferrors.CodeUnlock, ferrors.GetCode(err))

	_, err = m.Unlock(ctx, "a", true)
	assert.NoError(t, err, "force tolerates an unlocked worktree")
	assert.False(t, gw.called("unlock /wt/a"))
}

func TestPrune(t *testing.T) {
	gw := newFake()
	gw.pruneOut = "Removing worktrees/old: gitdir file points to non-existent location\n\n  Removing worktrees/older: gitdir file points to non-existent location\n"
	m := newTestManager(t, gw)

	res, err := m.Prune(ctx, models.PruneOptions{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.True(t, res.DryRun)
	assert.Equal(t, "Removing worktrees/older: gitdir file points to non-existent location", res.Pruned[1])

	gw.pruneOut = ""
	res, err = m.Prune(ctx, models.PruneOptions{})
	require.NoError(t, err)
	assert.Zero(t, res.Count)
	assert.NotNil(t, res.Pruned)

	gw.pruneErr = errFake
	_, err = m.Prune(ctx, models.PruneOptions{})
	assert.Equal(t, ferrors.CodePrune, ferrors.GetCode(err))
}

func TestInfo(t *testing.T) {
	gw := newFake()
	gw.list = listing(models.Worktree{Path: "/src/widgets", Branch: "main"}, models.Worktree{Path: "/wt/a", Branch: "a"})
	gw.status["/wt/a"] = "?? new\n"
	gw.subject["/wt/a"] = "Add the thing"
	m := newTestManager(t, gw)

	info, err := m.Info(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "/wt/a", info.Path)
	assert.True(t, info.Dirty)
	assert.Equal(t, "Add the thing", info.LastCommit)
	assert.Equal(t, time.Date(2024, 4, 1, 9, 30, 0, 0, time.UTC), info.CreatedAt)

	m.createdAt = func(string) (time.Time, error) { return time.Time{}, errFake }
	info, err = m.Info(ctx, "main")
	require.NoError(t, err)
	assert.Empty(t, info.LastCommit)
	assert.True(t, info.CreatedAt.IsZero())
}

func TestRequireRepo(t *testing.T) {
	gw := newFake()
	m := newTestManager(t, gw)
	assert.Equal(t, ferrors.CodeNotARepo, ferrors.GetCode(m.RequireRepo(ctx)))

	gw.topLevel, gw.topErr = "/src/widgets", nil
	assert.NoError(t, m.RequireRepo(ctx))
}

func TestGitFailure_Timeout(t *testing.T) {
	gw := newFake()
	gw.pruneErr = fmt.Errorf("git worktree prune timed out: %w", context.DeadlineExceeded)
	m := newTestManager(t, gw)

	_, err := m.Prune(ctx, models.PruneOptions{})
	require.Error(t, err)
	assert.True(t, ferrors.Is(err, ferrors.KindTimeout))
	assert.Equal(t, ferrors.CodePrune, ferrors.GetCode(err))

	gw.pruneErr = errFake
	_, err = m.Prune(ctx, models.PruneOptions{})
	assert.True(t, ferrors.Is(err, ferrors.KindGit))
	var fe *ferrors.Error
	require.True(t, ferrors.As(err, &fe))
	assert.Equal(t, ferrors.Suggestion("Ensure you are in a git repository"), fe.Suggestion)
}
