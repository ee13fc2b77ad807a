package worktree

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/garymjr/forest/internal/config"
	"github.com/garymjr/forest/internal/git"
)

// fallbackIdentity names the repository when neither the origin URL nor the
// top-level directory yields a name.
const fallbackIdentity = "repo"

// placeholderBranch replaces a branch name that sanitizes to nothing.
const placeholderBranch = "branch"

// unsafeChars are replaced when a branch name becomes a directory name.
const unsafeChars = `/\:*?"<>|`

// Resolver maps branch names to worktree directories under the configured
// root. The repository identity is looked up once per Resolver.
type Resolver struct {
	cfg config.Config
	gw  git.Gateway

	once     sync.Once
	identity string
}

func NewResolver(cfg config.Config, gw git.Gateway) *Resolver {
	return &Resolver{cfg: cfg, gw: gw}
}

// Root is the configured worktree root directory.
func (r *Resolver) Root() string {
	return r.cfg.Directory
}

// Resolve returns branchOrPath unchanged when it contains a path separator,
// otherwise the generated directory for that branch.
func (r *Resolver) Resolve(ctx context.Context, branchOrPath string) string {
	if strings.ContainsAny(branchOrPath, `/\`) {
		return branchOrPath
	}
	return r.PathForBranch(ctx, branchOrPath)
}

// PathForBranch is root/identity/sanitized-branch, whatever the branch
// contains.
func (r *Resolver) PathForBranch(ctx context.Context, branch string) string {
	return filepath.Join(r.cfg.Directory, r.RepositoryIdentity(ctx), Sanitize(branch))
}

// IsExplicitPath reports whether s is written as a filesystem path rather
// than a branch name: absolute, or starting with ./, ../ or ~/. A namespaced
// branch such as feature/auth is not.
func IsExplicitPath(s string) bool {
	if filepath.IsAbs(s) || strings.HasPrefix(s, "/") || s == "~" {
		return true
	}
	for _, prefix := range []string{"./", "../", "~/", `.\`, `..\`, `~\`} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// RepositoryIdentity names the current repository: the origin URL's last
// segment without ".git", else the base name of the top-level directory,
// else "repo".
func (r *Resolver) RepositoryIdentity(ctx context.Context) string {
	r.once.Do(func() {
		r.identity = r.lookupIdentity(ctx)
	})
	return r.identity
}

func (r *Resolver) lookupIdentity(ctx context.Context) string {
	if url, err := r.gw.RemoteURL(ctx, "origin"); err == nil {
		if name := RepoNameFromURL(url); name != "" {
			return name
		}
	}
	if top, err := r.gw.TopLevel(ctx); err == nil {
		if name := filepath.Base(strings.TrimSpace(top)); name != "" && name != "." && name != string(filepath.Separator) {
			return name
		}
	}
	return fallbackIdentity
}

// RepoNameFromURL extracts the repository name from a clone URL. Supported
// forms include:
//   - https://github.com/user/repo.git
//   - git@github.com:user/repo.git
//   - /local/path/repo
//
// It returns "" when no name can be found.
func RepoNameFromURL(url string) string {
	url = strings.TrimRight(strings.TrimSpace(url), `/\`)
	if i := strings.LastIndexAny(url, `/\:`); i >= 0 {
		url = url[i+1:]
	}
	name := strings.TrimSuffix(url, ".git")
	if name == "." || name == ".." {
		return ""
	}
	return name
}

// Sanitize turns a branch name into a single safe directory name. The
// result is never empty and contains none of / \ : * ? " < > |.
func Sanitize(name string) string {
	s := strings.Map(func(r rune) rune {
		if strings.ContainsRune(unsafeChars, r) {
			return '-'
		}
		return r
	}, name)
	s = strings.Trim(s, "-")
	if s == "" || s == "." || s == ".." {
		return placeholderBranch
	}
	return s
}
