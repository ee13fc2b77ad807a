package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
)

// OriginFetchRefspec makes a bare clone fetch every branch into
// refs/remotes/origin like a regular clone does.
const OriginFetchRefspec = "+refs/heads/*:refs/remotes/origin/*"

// ErrExists is returned by BareClone when the target directory is present.
var ErrExists = errors.New("directory already exists")

// BareClone clones url into dir as a bare repository and configures the
// origin fetch refspec. dir must not exist; it is removed again when the
// clone fails.
func BareClone(ctx context.Context, url, dir string, progress io.Writer) error {
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("%s: %w", dir, ErrExists)
	}

	repo, err := git.PlainCloneContext(ctx, dir, true, &git.CloneOptions{
		URL:      url,
		Progress: progress,
	})
	if err != nil {
		os.RemoveAll(dir)
		return fmt.Errorf("clone %s: %w", url, err)
	}

	cfg, err := repo.Config()
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	remote, ok := cfg.Remotes["origin"]
	if !ok {
		return errors.New("origin remote not found")
	}
	remote.Fetch = []config.RefSpec{OriginFetchRefspec}
	if err := repo.SetConfig(cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}
