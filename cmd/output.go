package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	ferrors "github.com/garymjr/forest/internal/errors"
)

// Result is the envelope every command prints with --json. Human output is
// rendered from the same data.
type Result struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// reportedError has already been printed by the command that returned it;
// only its exit code is left to apply.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// emit prints data as a success envelope with --json, or calls human.
func emit(w io.Writer, data any, human func(io.Writer)) error {
	if jsonOutput {
		return writeJSON(w, Result{Success: true, Data: data})
	}
	human(w)
	return nil
}

// emitFailure prints data alongside the error and marks err as reported.
func emitFailure(w io.Writer, data any, err error, human func(io.Writer)) error {
	if jsonOutput {
		body := errorBody(err)
		if werr := writeJSON(w, Result{Success: false, Data: data, Error: &body}); werr != nil {
			return werr
		}
	} else {
		human(w)
	}
	return &reportedError{err: err}
}

func errorBody(err error) ErrorBody {
	var fe *ferrors.Error
	if ferrors.As(err, &fe) {
		return ErrorBody{
			Code:       string(ferrors.GetCode(err)),
			Message:    fe.Message(),
			Suggestion: string(fe.Suggestion),
		}
	}
	code := ferrors.CodeInvalidArgs
	if strings.HasPrefix(err.Error(), "unknown command") {
		code = ferrors.CodeUnknownCommand
	}
	return ErrorBody{Code: string(code), Message: err.Error(), Suggestion: "Run 'forest --help' for usage"}
}

// report prints a failure that no command has printed yet.
func report(err error, stdout, stderr io.Writer) {
	body := errorBody(err)
	if jsonOutput {
		_ = writeJSON(stdout, Result{Success: false, Error: &body})
		return
	}
	fmt.Fprintln(stderr, errorMsg(body.Message))
	if body.Suggestion != "" {
		fmt.Fprintf(stderr, "  %s\n", body.Suggestion)
	}
}

// exitCode maps an error to the process exit status: 2 for invalid input,
// including command-line usage errors, 1 for everything else.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var fe *ferrors.Error
	if !ferrors.As(err, &fe) {
		var re *reportedError
		if ferrors.As(err, &re) {
			return 1
		}
		return 2
	}
	if fe.Kind == ferrors.KindInvalid {
		return 2
	}
	return 1
}
