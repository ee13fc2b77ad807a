// Package validate holds the side-effect-free checks run before any mutating
// git call.
package validate

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	MaxPathLength   = 4096
	MaxBranchLength = 256
)

// systemDirs may never hold auto-generated worktrees.
var systemDirs = []string{
	"/",
	"/etc",
	"/usr",
	"/var",
	"/sys",
	"/proc",
	"/boot",
	"/dev",
	"/lib",
	"/sbin",
	"/bin",
}

// Result is the outcome of a validation.
type Result struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

func ok() Result { return Result{Valid: true} }

func fail(msg string) Result { return Result{Error: msg} }

// Path checks a worktree path argument.
func Path(path string) Result {
	if strings.TrimSpace(path) == "" {
		return fail("Path cannot be empty")
	}
	if len(path) > MaxPathLength {
		return fail("Path exceeds maximum length (4096 chars)")
	}
	if strings.ContainsRune(path, 0) {
		return fail("Path contains null bytes")
	}
	return ok()
}

// Branch checks a branch name argument.
func Branch(branch string) Result {
	if strings.TrimSpace(branch) == "" {
		return fail("Branch name cannot be empty")
	}
	if len(branch) > MaxBranchLength {
		return fail("Branch name exceeds maximum length (256 chars)")
	}
	if strings.ContainsAny(branch, "\x00\n") {
		return fail("Branch contains invalid characters")
	}
	return ok()
}

// ConfigPath checks the configured worktree root directory. It is stricter
// than Path because it decides where every auto-generated worktree lands.
func ConfigPath(path string) Result {
	if path == "" {
		return fail("Directory cannot be empty")
	}
	if len(path) > MaxPathLength {
		return fail("Path exceeds maximum length (4096 chars)")
	}
	if strings.ContainsRune(path, 0) {
		return fail("Path contains null bytes")
	}
	if hasTraversal(path) {
		return fail("Path contains directory traversal (..)")
	}
	if dir, hit := systemDirectory(ExpandHome(path)); hit {
		return fail("Path points to a sensitive system directory (" + dir + ")")
	}
	return ok()
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func hasTraversal(path string) bool {
	for _, seg := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if seg == ".." {
			return true
		}
	}
	return false
}

// systemDirectory reports the deny-listed directory path equals or falls under.
func systemDirectory(path string) (string, bool) {
	if !filepath.IsAbs(path) {
		return "", false
	}
	clean := filepath.ToSlash(filepath.Clean(path))
	for _, dir := range systemDirs {
		if clean == dir {
			return dir, true
		}
		if dir != "/" && strings.HasPrefix(clean, dir+"/") {
			return dir, true
		}
	}
	return "", false
}
