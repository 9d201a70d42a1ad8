// Package failure classifies the errors a check run can end with.
package failure

import (
	"errors"
	"fmt"
)

// Kind is the closed set of failure categories.
type Kind int

const (
	// Unknown marks errors that were never classified.
	Unknown Kind = iota
	// Transport covers failures talking to the launch API, including an
	// undecodable response body.
	Transport
	// PageStructure means an expected element was missing from the page.
	PageStructure
	// Parse means a date or timestamp could not be decoded.
	Parse
	// PageLoad means the browser could not start or render the prediction page.
	PageLoad
)

func (k Kind) String() string {
	switch k {
	case Transport:
		return "transport"
	case PageStructure:
		return "page_structure"
	case Parse:
		return "parse"
	case PageLoad:
		return "page_load"
	default:
		return "unknown"
	}
}

// Error tags an underlying error with its Kind and the operation that failed.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New wraps err as a failure of the given kind.
func New(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Newf builds a failure without an underlying error.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Op: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of the first failure in err's chain.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Unknown
}

// Message renders the line shown to the user for a failed run. Only
// Transport failures get the network wording; a page that fails to load is
// reported like any other unexpected error.
func Message(err error) string {
	if KindOf(err) == Transport {
		return fmt.Sprintf("Network error occurred while checking Starlink visibility: %v", err)
	}
	return fmt.Sprintf("An unexpected error occurred: %v", err)
}
