package worktree

import (
	"strings"

	"github.com/garymjr/forest/internal/models"
)

// Namespace is the part of branch before the first "/", or the root group
// for branches without one.
func Namespace(branch string) string {
	ns, _, found := strings.Cut(branch, "/")
	if !found || ns == "" {
		return models.RootGroup
	}
	return ns
}

// GroupByNamespace partitions worktrees by namespace. Groups appear in the
// order their first member was seen.
func GroupByNamespace(worktrees []models.Worktree) []models.Group {
	groups := []models.Group{}
	index := make(map[string]int)

	for _, wt := range worktrees {
		ns := Namespace(wt.Branch)
		i, ok := index[ns]
		if !ok {
			i = len(groups)
			index[ns] = i
			groups = append(groups, models.Group{Name: ns, Worktrees: []models.Worktree{}})
		}
		groups[i].Worktrees = append(groups[i].Worktrees, wt)
		groups[i].Count++
	}
	return groups
}

// InGroup reports whether branch is ns itself or lives under ns/.
func InGroup(branch, ns string) bool {
	return branch == ns || strings.HasPrefix(branch, ns+"/")
}

// FilterGroup keeps the worktrees whose branch is in namespace ns. An empty
// ns keeps everything.
func FilterGroup(worktrees []models.Worktree, ns string) []models.Worktree {
	if ns == "" {
		return worktrees
	}
	out := []models.Worktree{}
	for _, wt := range worktrees {
		if InGroup(wt.Branch, ns) {
			out = append(out, wt)
		}
	}
	return out
}
