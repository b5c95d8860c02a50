package interpreter

import (
	"errors"
	"fmt"
)

// Category classifies runtime failures.
type Category int

const (
	CategoryUnresolvedIdentifier Category = iota + 1
	CategoryGraphIntegrity
	CategorySafetyLimit
	CategoryIO
	CategoryTypeMismatch
	CategoryInput
)

func (c Category) String() string {
	switch c {
	case CategoryUnresolvedIdentifier:
		return "UnresolvedIdentifier"
	case CategoryGraphIntegrity:
		return "GraphIntegrityError"
	case CategorySafetyLimit:
		return "SafetyLimitExceeded"
	case CategoryIO:
		return "IoFailure"
	case CategoryTypeMismatch:
		return "TypeMismatch"
	case CategoryInput:
		return "InputFailure"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Sentinels for errors.Is; every RuntimeError unwraps to the one matching its
// category.
var (
	ErrUnresolvedIdentifier = errors.New("unresolved identifier")
	ErrGraphIntegrity       = errors.New("graph integrity error")
	ErrSafetyLimit          = errors.New("safety limit exceeded")
	ErrIO                   = errors.New("i/o failure")
	ErrTypeMismatch         = errors.New("type mismatch")
	ErrInput                = errors.New("input failure")
)

func (c Category) sentinel() error {
	switch c {
	case CategoryUnresolvedIdentifier:
		return ErrUnresolvedIdentifier
	case CategoryGraphIntegrity:
		return ErrGraphIntegrity
	case CategorySafetyLimit:
		return ErrSafetyLimit
	case CategoryIO:
		return ErrIO
	case CategoryInput:
		return ErrInput
	default:
		return ErrTypeMismatch
	}
}

// RuntimeError is the error type returned by Execute. Line and NodeID locate
// the statement that failed; NodeID is -1 outside the graph walker.
type RuntimeError struct {
	Category Category
	Message  string
	Line     int
	NodeID   int
	Err      error
}

func (e *RuntimeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

func (e *RuntimeError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Category.sentinel(), e.Err}
	}
	return []error{e.Category.sentinel()}
}

func newError(category Category, format string, args ...any) *RuntimeError {
	return &RuntimeError{Category: category, Message: fmt.Sprintf(format, args...), NodeID: -1}
}

func wrapError(category Category, err error, format string, args ...any) *RuntimeError {
	msg := fmt.Sprintf(format, args...)
	return &RuntimeError{Category: category, Message: fmt.Sprintf("%s: %v", msg, err), NodeID: -1, Err: err}
}

func typeError(format string, args ...any) *RuntimeError {
	return newError(CategoryTypeMismatch, format, args...)
}

// annotate records where err surfaced, keeping the innermost location.
func annotate(err error, line, nodeID int) error {
	if err == nil {
		return nil
	}
	var rtErr *RuntimeError
	if !errors.As(err, &rtErr) {
		rtErr = &RuntimeError{Category: CategoryTypeMismatch, Message: err.Error(), NodeID: -1, Err: err}
		err = rtErr
	}
	if rtErr.Line == 0 && line > 0 {
		rtErr.Line = line
	}
	if rtErr.NodeID < 0 && nodeID >= 0 {
		rtErr.NodeID = nodeID
	}
	return err
}
