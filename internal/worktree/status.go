package worktree

import (
	"context"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/garymjr/forest/internal/models"
)

// StatusCode classifies one line of `git status --porcelain` by its XY pair.
type StatusCode int

const (
	StatusUnknown StatusCode = iota
	StatusUntracked
	StatusIgnored
	StatusUnmerged
	StatusStaged
	StatusUnstaged
	StatusStagedAndUnstaged
)

func (c StatusCode) String() string {
	switch c {
	case StatusUntracked:
		return "untracked"
	case StatusIgnored:
		return "ignored"
	case StatusUnmerged:
		return "unmerged"
	case StatusStaged:
		return "staged"
	case StatusUnstaged:
		return "unstaged"
	case StatusStagedAndUnstaged:
		return "staged+unstaged"
	default:
		return "unknown"
	}
}

// Staged reports whether the index column records a change.
func (c StatusCode) Staged() bool {
	return c == StatusStaged || c == StatusStagedAndUnstaged || c == StatusUnmerged
}

// Unstaged reports whether the work-tree column records a change.
func (c StatusCode) Unstaged() bool {
	return c == StatusUnstaged || c == StatusStagedAndUnstaged || c == StatusUnmerged
}

// Classify maps the index (x) and work-tree (y) status characters to a
// StatusCode. Unmerged pairs are DD, AA and anything involving U.
func Classify(x, y byte) StatusCode {
	switch {
	case x == '?' && y == '?':
		return StatusUntracked
	case x == '!' && y == '!':
		return StatusIgnored
	case x == 'U' || y == 'U', x == 'D' && y == 'D', x == 'A' && y == 'A':
		return StatusUnmerged
	}

	staged := isChange(x)
	unstaged := isChange(y)
	switch {
	case staged && unstaged:
		return StatusStagedAndUnstaged
	case staged:
		return StatusStaged
	case unstaged:
		return StatusUnstaged
	default:
		return StatusUnknown
	}
}

func isChange(c byte) bool {
	switch c {
	case 'M', 'T', 'A', 'D', 'R', 'C':
		return true
	}
	return false
}

// changeCounts is the tally of a porcelain status listing.
type changeCounts struct {
	lines     int
	staged    int
	unstaged  int
	untracked int
	conflicts bool
}

func parseStatus(out string) changeCounts {
	var c changeCounts
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		if len(line) < 2 {
			c.lines++
			continue
		}

		code := Classify(line[0], line[1])
		if code == StatusIgnored {
			continue
		}
		c.lines++
		switch {
		case code == StatusUntracked:
			c.untracked++
		case code == StatusUnmerged:
			c.conflicts = true
		}
		if code.Staged() {
			c.staged++
		}
		if code.Unstaged() {
			c.unstaged++
		}
	}
	return c
}

// parseLeftRight parses `rev-list --left-right --count` output.
func parseLeftRight(out string) (left, right int, ok bool) {
	fields := strings.Fields(out)
	if len(fields) != 2 {
		return 0, 0, false
	}
	l, err := strconv.Atoi(fields[0])
	if err != nil || l < 0 {
		return 0, 0, false
	}
	r, err := strconv.Atoi(fields[1])
	if err != nil || r < 0 {
		return 0, 0, false
	}
	return l, r, true
}

// StatusOf computes the status of one worktree. Query failures leave the
// affected fields at their zero values.
func (m *Manager) StatusOf(ctx context.Context, wt models.Worktree) models.WorktreeStatus {
	st := models.WorktreeStatus{Worktree: wt}

	if out, err := m.gw.Status(ctx, wt.Path); err != nil {
		m.log.Debug("status query failed", "path", wt.Path, "err", err)
	} else {
		c := parseStatus(out)
		st.Dirty = c.lines > 0
		st.Conflicts = c.conflicts
		st.StagedFiles = c.staged
		st.UnstagedFiles = c.unstaged
		st.UntrackedFiles = c.untracked
	}

	upstream, err := m.gw.Upstream(ctx, wt.Path)
	if err != nil || upstream == "" {
		return st
	}
	out, err := m.gw.LeftRightCount(ctx, wt.Path, upstream, "HEAD")
	if err != nil {
		m.log.Debug("ahead/behind query failed", "path", wt.Path, "upstream", upstream, "err", err)
		return st
	}
	behind, ahead, ok := parseLeftRight(out)
	if !ok {
		return st
	}
	st.HasUpstream = true
	st.Ahead = ahead
	st.Behind = behind
	return st
}

// StatusOfAll computes statuses concurrently. The result is in input order.
func (m *Manager) StatusOfAll(ctx context.Context, worktrees []models.Worktree) []models.WorktreeStatus {
	results := make([]models.WorktreeStatus, len(worktrees))

	var g errgroup.Group
	g.SetLimit(statusConcurrency())
	for i, wt := range worktrees {
		i, wt := i, wt
		g.Go(func() error {
			results[i] = m.StatusOf(ctx, wt)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func statusConcurrency() int {
	n := runtime.NumCPU() * 2
	if n < 4 {
		n = 4
	}
	return n
}
