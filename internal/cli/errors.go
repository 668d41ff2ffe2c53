package cli

import (
	"errors"
	"fmt"

	"github.com/idilsaglam/todoprompt/internal/model"
)

// ErrorKind classifies what went wrong while handling a command.
type ErrorKind int

const (
	KindStdin ErrorKind = iota + 1
	KindStdout
	KindParse
	KindIndex
	KindStorage
)

func (k ErrorKind) String() string {
	switch k {
	case KindStdin:
		return "stdin"
	case KindStdout:
		return "stdout"
	case KindParse:
		return "parse"
	case KindIndex:
		return "index"
	case KindStorage:
		return "storage"
	}
	return "unknown"
}

// Error is reported to the user as a single line. Fatal errors end the
// prompt loop; the others are reported and the loop carries on.
type Error struct {
	Kind ErrorKind
	Text string // offending input, for parse errors
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStdin:
		return fmt.Sprintf("Input error: %v", e.Err)
	case KindStdout:
		return fmt.Sprintf("Output error: %v", e.Err)
	case KindParse:
		if errors.Is(e.Err, model.ErrAmbiguousRef) {
			return fmt.Sprintf("Parse error: %q matches several todos, type more of the id", e.Text)
		}
		return fmt.Sprintf("Parse error: %q is not a valid index or id!", e.Text)
	case KindIndex:
		return fmt.Sprintf("Index error: %v", e.Err)
	case KindStorage:
		return fmt.Sprintf("Error in storage: %v", e.Err)
	}
	return fmt.Sprintf("error: %v", e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Fatal reports whether the prompt loop must stop.
func (e *Error) Fatal() bool {
	switch e.Kind {
	case KindStdin, KindStdout, KindStorage:
		return true
	}
	return false
}

func storageError(err error) error {
	return &Error{Kind: KindStorage, Err: err}
}

// classify turns any error from a step into an *Error.
func classify(err error) *Error {
	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}
	return &Error{Kind: KindStorage, Err: err}
}
