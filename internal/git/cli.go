package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/garymjr/forest/internal/logger"
)

// maxErrOutput caps how much git output is folded into an error message.
const maxErrOutput = 600

// CLI implements Gateway by running the git binary.
type CLI struct {
	// Dir is the repository working directory; "" means the process cwd.
	Dir string
	// Timeout bounds each git invocation; zero means no limit.
	Timeout time.Duration

	log *slog.Logger
}

var _ Gateway = (*CLI)(nil)

func NewCLI(dir string, timeout time.Duration) *CLI {
	return &CLI{
		Dir:     dir,
		Timeout: timeout,
		log:     logger.ComponentLogger("git"),
	}
}

// run executes git in dir (or c.Dir when empty) and returns stdout and stderr.
func (c *CLI) run(ctx context.Context, dir string, args ...string) (string, string, error) {
	if dir == "" {
		dir = c.Dir
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	log := c.logger()
	start := time.Now()
	joined := strings.Join(args, " ")
	log.Debug("cmd start", "dir", dir, "args", joined)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		trimmed := strings.TrimSpace(stderr.String())
		if trimmed == "" {
			trimmed = strings.TrimSpace(stdout.String())
		}
		if len(trimmed) > maxErrOutput {
			trimmed = trimmed[:maxErrOutput] + "...(truncated)"
		}
		log.Debug("cmd fail", "dur", elapsed, "dir", dir, "args", joined, "err", err, "out", trimmed)

		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return stdout.String(), stderr.String(), fmt.Errorf("git %s timed out after %s: %w", joined, c.Timeout, context.DeadlineExceeded)
		}
		if trimmed != "" {
			return stdout.String(), stderr.String(), fmt.Errorf("git %s failed: %w: %s", joined, err, trimmed)
		}
		return stdout.String(), stderr.String(), fmt.Errorf("git %s failed: %w", joined, err)
	}

	log.Debug("cmd ok", "dur", elapsed, "dir", dir, "args", joined, "out_bytes", stdout.Len())
	return stdout.String(), stderr.String(), nil
}

func (c *CLI) logger() *slog.Logger {
	if c.log == nil {
		return logger.ComponentLogger("git")
	}
	return c.log
}

func (c *CLI) output(ctx context.Context, dir string, args ...string) (string, error) {
	out, _, err := c.run(ctx, dir, args...)
	return out, err
}

func (c *CLI) quiet(ctx context.Context, dir string, args ...string) error {
	_, _, err := c.run(ctx, dir, args...)
	return err
}
