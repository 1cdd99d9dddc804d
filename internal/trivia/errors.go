package trivia

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Store implementations.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidCategory = errors.New("category does not exist")
)

// Kind classifies a failure so the transport can pick a status code.
type Kind int

const (
	KindFault Kind = iota
	KindNotFound
	KindBadRequest
	KindUnprocessable
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindBadRequest:
		return "bad_request"
	case KindUnprocessable:
		return "unprocessable"
	default:
		return "fault"
	}
}

// Error is the error type returned by Service operations.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the Kind of err. Errors that are not *Error are faults.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindFault
}

func notFound(op string, err error) error {
	return &Error{Kind: KindNotFound, Op: op, Err: err}
}

func badRequest(op string, err error) error {
	return &Error{Kind: KindBadRequest, Op: op, Err: err}
}

func unprocessable(op string, err error) error {
	return &Error{Kind: KindUnprocessable, Op: op, Err: err}
}

func fault(op string, err error) error {
	return &Error{Kind: KindFault, Op: op, Err: err}
}
