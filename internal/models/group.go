package models

// RootGroup holds worktrees whose branch has no namespace.
const RootGroup = "(root)"

type Group struct {
	Name      string     `json:"name"`
	Worktrees []Worktree `json:"worktrees"`
	Count     int        `json:"count"`
}
