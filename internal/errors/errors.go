// Package errors provides the structured error type shared by every forest
// command. An Error names the operation that failed, a Kind used to pick the
// process exit code, and a machine-readable Code with an optional human
// suggestion for the JSON and text presentations.
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.Function".
type Op string

// Code is the machine-readable error code surfaced to callers.
type Code string

// Suggestion is a short hint telling the user how to recover.
type Suggestion string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindConfig
	KindGit
	KindIO
	KindTimeout
)

const (
	CodeInvalidArgs    Code = "INVALID_ARGS"
	CodeInvalidPath    Code = "INVALID_PATH"
	CodeInvalidBranch  Code = "INVALID_BRANCH"
	CodeInvalidConfig  Code = "INVALID_CONFIG"
	CodeUnknownCommand Code = "UNKNOWN_COMMAND"
	CodeUnknownKey     Code = "UNKNOWN_KEY"
	CodeNotFound       Code = "NOT_FOUND"
	CodeNotARepo       Code = "NOT_A_REPO"
	CodeDirtyWorktree  Code = "DIRTY_WORKTREE"
	CodeList           Code = "LIST_ERROR"
	CodeAdd            Code = "ADD_ERROR"
	CodeRemove         Code = "REMOVE_ERROR"
	CodePrune          Code = "PRUNE_ERROR"
	CodeClone          Code = "CLONE_ERROR"
	CodeLock           Code = "LOCK_ERROR"
	CodeUnlock         Code = "UNLOCK_ERROR"
	CodeConfig         Code = "CONFIG_ERROR"
	CodeSync           Code = "SYNC_ERROR"
	CodeInit           Code = "INIT_ERROR"
	CodeInternal       Code = "INTERNAL_ERROR"
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindConfig:
		return "configuration error"
	case KindGit:
		return "git error"
	case KindIO:
		return "I/O error"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for forest.
type Error struct {
	Op         Op         // Operation that failed
	Kind       Kind       // Category of error
	Code       Code       // Machine-readable code
	Suggestion Suggestion // Recovery hint
	Err        error      // Underlying error
	Context    string     // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Message is the user-facing message without the operation prefix.
func (e *Error) Message() string {
	if e.Context != "" {
		return e.Context
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - Code: the machine-readable code
// - Suggestion: the recovery hint
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case Code:
			e.Code = a
		case Suggestion:
			e.Suggestion = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// GetCode returns the Code of an error, or CodeInternal for foreign errors.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) && e.Code != "" {
		return e.Code
	}
	return CodeInternal
}

// As is errors.As, re-exported so callers don't need both packages.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Validation errors
func InvalidArgs(op Op, reason string, usage string) error {
	return E(op, KindInvalid, CodeInvalidArgs, reason, Suggestion("Usage: "+usage))
}

func InvalidPath(op Op, reason string) error {
	return E(op, KindInvalid, CodeInvalidPath, reason, Suggestion("Check that the path is valid and safe"))
}

func InvalidBranch(op Op, reason string) error {
	return E(op, KindInvalid, CodeInvalidBranch, reason, Suggestion("Check that the branch name is valid"))
}

// Lookup errors
func WorktreeNotFound(op Op, target string) error {
	return E(op, KindNotFound, CodeNotFound, fmt.Sprintf("worktree not found: %s", target),
		Suggestion("Use 'forest list' to see available worktrees"))
}

// Git errors
// GitFailed wraps a failed git call. A call that ran out of time gets
// KindTimeout instead of KindGit. suggestion may be empty.
func GitFailed(op Op, code Code, msg string, err error, suggestion string) error {
	kind := KindGit
	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	return E(op, kind, code, msg, err, Suggestion(suggestion))
}

func NotARepo(err error) error {
	return E(Op("git.TopLevel"), KindGit, CodeNotARepo, "not inside a git repository", err,
		Suggestion("Run forest from inside a git repository"))
}

// Config errors
func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, CodeConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, CodeInvalidConfig, reason,
		Suggestion("Choose a directory under your home directory"))
}
