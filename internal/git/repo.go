package git

import (
	"context"
	"errors"
	"strings"

	"github.com/go-git/go-git/v5"
)

func (c *CLI) Upstream(ctx context.Context, dir string) (string, error) {
	out, err := c.output(ctx, dir, "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{upstream}")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (c *CLI) LeftRightCount(ctx context.Context, dir, left, right string) (string, error) {
	return c.output(ctx, dir, "rev-list", "--left-right", "--count", left+"..."+right)
}

func (c *CLI) Stash(ctx context.Context, dir, message string) error {
	argv := []string{"stash", "push", "--include-untracked"}
	if message != "" {
		argv = append(argv, "--message", message)
	}
	return c.quiet(ctx, dir, argv...)
}

func (c *CLI) Pull(ctx context.Context, dir string) error {
	return c.quiet(ctx, dir, "pull", "--ff-only")
}

// RemoteURL reads the remote from the repository config through go-git and
// asks git only when that fails.
func (c *CLI) RemoteURL(ctx context.Context, name string) (string, error) {
	if repo, err := openRepo(c.Dir); err == nil {
		if remote, err := repo.Remote(name); err == nil {
			if urls := remote.Config().URLs; len(urls) > 0 && urls[0] != "" {
				return urls[0], nil
			}
		}
	}
	out, err := c.output(ctx, "", "remote", "get-url", name)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (c *CLI) TopLevel(ctx context.Context) (string, error) {
	out, err := c.output(ctx, "", "rev-parse", "--show-toplevel")
	if err == nil {
		return strings.TrimSpace(out), nil
	}
	repo, gerr := openRepo(c.Dir)
	if gerr != nil {
		return "", err
	}
	wt, gerr := repo.Worktree()
	if gerr != nil {
		return "", err
	}
	return wt.Filesystem.Root(), nil
}

func (c *CLI) HeadCommit(ctx context.Context, dir string) (string, error) {
	out, err := c.output(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// LastCommitSubject returns the first line of HEAD's commit message.
func (c *CLI) LastCommitSubject(ctx context.Context, dir string) (string, error) {
	if subject, err := lastCommitSubjectGoGit(dir); err == nil {
		return subject, nil
	}
	out, err := c.output(ctx, dir, "log", "-1", "--format=%s")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func lastCommitSubjectGoGit(dir string) (string, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", err
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return "", err
	}
	subject, _, _ := strings.Cut(commit.Message, "\n")
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", errors.New("empty commit message")
	}
	return subject, nil
}

// openRepo opens the repository containing dir, linked worktrees included.
func openRepo(dir string) (*git.Repository, error) {
	if dir == "" {
		dir = "."
	}
	return git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
}
