package worktree

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garymjr/forest/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		xy   string
		want StatusCode
	}{
		{"??", StatusUntracked},
		{"!!", StatusIgnored},
		{"M ", StatusStaged},
		{"A ", StatusStaged},
		{"D ", StatusStaged},
		{"R ", StatusStaged},
		{" M", StatusUnstaged},
		{" D", StatusUnstaged},
		{" T", StatusUnstaged},
		{"MM", StatusStagedAndUnstaged},
		{"AM", StatusStagedAndUnstaged},
		{"UU", StatusUnmerged},
		{"AU", StatusUnmerged},
		{"UD", StatusUnmerged},
		{"DU", StatusUnmerged},
		{"DD", StatusUnmerged},
		{"AA", StatusUnmerged},
		{"  ", StatusUnknown},
		{"XY", StatusUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.xy, func(t *testing.T) {
			got := Classify(tt.xy[0], tt.xy[1])
			assert.Equal(t, tt.want, got, "got %s", got)
		})
	}
}

func TestParseStatus(t *testing.T) {
	out := "M  staged.go\n" +
		" M unstaged.go\n" +
		"MM both.go\n" +
		"?? new.go\n" +
		"?? other.go\n" +
		"!! ignored.log\n"
	c := parseStatus(out)
	assert.Equal(t, 5, c.lines)
	assert.Equal(t, 2, c.staged)
	assert.Equal(t, 2, c.unstaged)
	assert.Equal(t, 2, c.untracked)
	assert.False(t, c.conflicts)

	c = parseStatus("UU conflict.go\n")
	assert.True(t, c.conflicts)
	assert.Equal(t, 1, c.lines)

	assert.Equal(t, changeCounts{}, parseStatus(""))
}

func TestParseLeftRight(t *testing.T) {
	l, r, ok := parseLeftRight("3\t5\n")
	require.True(t, ok)
	assert.Equal(t, 3, l)
	assert.Equal(t, 5, r)

	for _, bad := range []string{"", "3", "a b", "1 2 3", "-1 2"} {
		_, _, ok := parseLeftRight(bad)
		assert.False(t, ok, bad)
	}
}

func TestStatusOf(t *testing.T) {
	gw := newFake()
	gw.status["/wt/a"] = "M  a.go\n?? b.go\n"
	gw.upstream["/wt/a"] = "origin/feature/a"
	gw.counts["/wt/a"] = "2\t1\n"
	m := newTestManager(t, gw)

	st := m.StatusOf(ctx, models.Worktree{Path: "/wt/a", Branch: "feature/a"})
	assert.Equal(t, "/wt/a", st.Path)
	assert.True(t, st.Dirty)
	assert.False(t, st.Conflicts)
	assert.Equal(t, 1, st.StagedFiles)
	assert.Equal(t, 0, st.UnstagedFiles)
	assert.Equal(t, 1, st.UntrackedFiles)
	assert.True(t, st.HasUpstream)
	assert.Equal(t, 2, st.Behind)
	assert.Equal(t, 1, st.Ahead)
}

func TestStatusOf_BestEffort(t *testing.T) {
	gw := newFake()
	gw.statusErr["/wt/gone"] = errFake
	gw.upstream["/wt/gone"] = "origin/main"
	gw.countsErr["/wt/gone"] = errFake
	m := newTestManager(t, gw)

	st := m.StatusOf(ctx, models.Worktree{Path: "/wt/gone", Branch: "main"})
	assert.False(t, st.Dirty)
	assert.False(t, st.HasUpstream)
	assert.Zero(t, st.Ahead)
	assert.Zero(t, st.Behind)

	gw.countsErr = map[string]error{}
	gw.counts["/wt/gone"] = "garbage"
	st = m.StatusOf(ctx, models.Worktree{Path: "/wt/gone", Branch: "main"})
	assert.False(t, st.HasUpstream)
}

func TestStatusOf_NoUpstream(t *testing.T) {
	gw := newFake()
	gw.status["/wt/a"] = ""
	m := newTestManager(t, gw)

	st := m.StatusOf(ctx, models.Worktree{Path: "/wt/a"})
	assert.False(t, st.Dirty)
	assert.False(t, st.HasUpstream)
}

func TestStatusOfAll(t *testing.T) {
	gw := newFake()
	outputs := []string{"", "M  a\n", " M b\n?? c\n", "UU d\n", "?? e\n", "DD f\nA  g\n"}
	var worktrees []models.Worktree
	for i := 0; i < 40; i++ {
		path := fmt.Sprintf("/wt/%02d", i)
		gw.status[path] = outputs[i%len(outputs)]
		worktrees = append(worktrees, models.Worktree{Path: path})
	}
	m := newTestManager(t, gw)

	got := m.StatusOfAll(ctx, worktrees)
	require.Len(t, got, len(worktrees))
	for i, st := range got {
		assert.Equal(t, worktrees[i].Path, st.Path, "order is preserved")
		if st.ChangedFiles() > 0 {
			assert.True(t, st.Dirty, st.Path)
		}
		if st.Conflicts {
			assert.True(t, st.Dirty, st.Path)
		}
	}
	assert.True(t, got[3].Conflicts)
	assert.True(t, got[5].Conflicts)
	assert.False(t, got[0].Dirty)
}

func TestStatusOfAll_Empty(t *testing.T) {
	m := newTestManager(t, newFake())
	assert.Empty(t, m.StatusOfAll(context.Background(), nil))
}
