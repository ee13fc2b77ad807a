package worktree

import (
	"context"
	"strings"

	"github.com/garymjr/forest/internal/models"
)

const shortCommitLen = 7

// List returns the worktrees registered with the repository. Any failure
// yields an empty list.
func (m *Manager) List(ctx context.Context) []models.Worktree {
	out, err := m.gw.WorktreeList(ctx)
	if err != nil {
		m.log.Debug("worktree list failed", "err", err)
		return []models.Worktree{}
	}
	return ParseWorktreeList(out)
}

// ParseWorktreeList parses `git worktree list --porcelain` output. A stanza
// starts at each "worktree <path>" line; the lines up to the next one
// describe it. When a stanza has none of the porcelain attribute lines, its
// attributes may instead trail the path on the worktree line itself.
// Unrecognized lines are skipped. The first worktree is marked Main.
func ParseWorktreeList(out string) []models.Worktree {
	res := []models.Worktree{}
	var cur *models.Worktree
	var header string
	porcelain := false
	hasCommit := false

	flush := func() {
		if cur != nil {
			if !porcelain {
				parseWorktreeLine(cur, header)
			}
			if cur.Path != "" {
				res = append(res, *cur)
			}
		}
		cur = nil
		header = ""
		porcelain = false
		hasCommit = false
	}

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		key, rest, _ := strings.Cut(line, " ")
		if key == "worktree" {
			flush()
			header = rest
			cur = &models.Worktree{Path: strings.TrimSpace(rest)}
			continue
		}
		if cur == nil {
			continue
		}

		switch key {
		case "HEAD":
			porcelain = true
			if isHex(rest) {
				cur.Commit = shortCommit(rest)
				hasCommit = true
			}
		case "branch":
			porcelain = true
			if rest != "" {
				cur.Branch = branchName(rest)
			}
		case "detached":
			if rest == "" {
				porcelain = true
			}
			cur.Branch = models.DetachedBranch
			if !hasCommit && isHex(rest) {
				cur.Commit = shortCommit(rest)
				hasCommit = true
			}
		case "locked":
			porcelain = true
			cur.Locked = true
			cur.LockReason = rest
		case "prunable":
			porcelain = true
			cur.Prunable = true
			cur.PrunableReason = rest
		case "bare":
			porcelain = true
			cur.Bare = true
		default:
			if !hasCommit && isHex(line) {
				cur.Commit = shortCommit(line)
				hasCommit = true
			}
		}
	}
	flush()

	if len(res) > 0 {
		res[0].Main = true
	}
	return res
}

// parseWorktreeLine applies attributes trailing the path on a worktree line.
// When every token after the first is a known attribute, the first token is
// the path; otherwise wt is left unchanged and the whole text stays the path.
func parseWorktreeLine(wt *models.Worktree, rest string) {
	fields := strings.Fields(rest)
	if len(fields) < 2 {
		return
	}

	attrs := *wt
	for i := 1; i < len(fields); i++ {
		tok := fields[i]
		switch {
		case tok == "detached":
			attrs.Branch = models.DetachedBranch
		case tok == "locked":
			attrs.Locked = true
		case tok == "prunable":
			attrs.Prunable = true
		case tok == "bare":
			attrs.Bare = true
		case tok == "branch" && i+1 < len(fields):
			i++
			attrs.Branch = branchName(fields[i])
		case len(tok) > 2 && strings.HasPrefix(tok, "[") && strings.HasSuffix(tok, "]"):
			attrs.Branch = tok[1 : len(tok)-1]
		case tok == "(detached" && i+1 < len(fields) && fields[i+1] == "HEAD)":
			i++
			attrs.Branch = models.DetachedBranch
		case isHex(tok):
			attrs.Commit = shortCommit(tok)
		default:
			return
		}
	}

	attrs.Path = fields[0]
	*wt = attrs
}

// branchName strips refs/heads/ from a reference; other references keep
// their last segment.
func branchName(ref string) string {
	if name, ok := strings.CutPrefix(ref, "refs/heads/"); ok {
		return name
	}
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

func shortCommit(hash string) string {
	if len(hash) > shortCommitLen {
		return hash[:shortCommitLen]
	}
	return hash
}

// isHex reports whether s looks like an abbreviated or full object name.
func isHex(s string) bool {
	if len(s) < shortCommitLen {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}
