// Package errors defines the diagnostic type shared by every fallible
// operation in the schema core, and the Result sum that carries
// accumulated diagnostics back to a caller.
package errors

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Problem is a single human-readable diagnostic produced while building,
// validating or coercing a schema. Many Problems may accumulate during a
// single call; nothing here causes early termination on its own.
type Problem struct {
	Message       string                 `json:"message"`
	Locations     []Location             `json:"locations,omitempty"`
	Rule          string                 `json:"-"`
	ResolverError error                  `json:"-"`
	Extensions    map[string]interface{} `json:"extensions,omitempty"`
}

// Location is a 1-based line/column position within an SDL or query document.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Before reports whether a is positioned earlier in the document than b.
func (a Location) Before(b Location) bool {
	return a.Line < b.Line || (a.Line == b.Line && a.Column < b.Column)
}

// Errorf builds a Problem from a format string. If one of the trailing
// arguments is an error, it is kept as the Problem's cause so errors.Is/As
// keep working against it.
func Errorf(format string, a ...interface{}) *Problem {
	p := &Problem{Message: fmt.Sprintf(format, a...)}
	for _, arg := range a {
		if cause, ok := arg.(error); ok {
			p.ResolverError = cause
			break
		}
	}
	return p
}

func (p *Problem) Error() string {
	if p == nil {
		return "<nil>"
	}
	str := fmt.Sprintf("graphql: %s", p.Message)
	for _, loc := range p.Locations {
		str += fmt.Sprintf(" (line %d, column %d)", loc.Line, loc.Column)
	}
	return str
}

// Unwrap exposes the wrapped cause, if Errorf was given one, so
// errors.Is/errors.As work against *Problem the way they would against an
// error produced with fmt.Errorf("%w", ...).
func (p *Problem) Unwrap() error {
	if p == nil {
		return nil
	}
	return p.ResolverError
}

var _ error = &Problem{}

// Problems is a list of diagnostics; its Error method joins every message
// so a Problems value is itself usable wherever a plain error is expected.
type Problems []*Problem

func (ps Problems) Error() string {
	switch len(ps) {
	case 0:
		return "no problems"
	case 1:
		return ps[0].Error()
	default:
		msg := ps[0].Error()
		for _, p := range ps[1:] {
			msg += "; " + p.Error()
		}
		return msg
	}
}

type resultKind int

const (
	resultSuccess resultKind = iota
	resultWarning
	resultFailure
	resultInternalError
)

// Result is a sum type carrying either a successful value (optionally with
// accumulated warnings), a flat failure, or an internal (unexpected,
// non-Problem) error. Validation and coercion never fast-fail on the first
// Problem; Result is how they carry every Problem they found back out.
type Result[T any] struct {
	kind     resultKind
	value    T
	problems Problems
	cause    error
}

// Success builds a Result holding a value and no diagnostics.
func Success[T any](value T) Result[T] {
	return Result[T]{kind: resultSuccess, value: value}
}

// Warning builds a Result holding a value alongside non-fatal Problems.
// An empty problem list collapses to Success.
func Warning[T any](value T, problems Problems) Result[T] {
	if len(problems) == 0 {
		return Success(value)
	}
	return Result[T]{kind: resultWarning, value: value, problems: problems}
}

// Failure builds a Result carrying no usable value, only Problems.
func Failure[T any](problems Problems) Result[T] {
	return Result[T]{kind: resultFailure, problems: problems}
}

// InternalErrorResult wraps an unexpected (non-diagnostic) error, e.g. a
// recovered panic, with its stack trace preserved.
func InternalErrorResult[T any](cause error) Result[T] {
	return Result[T]{kind: resultInternalError, cause: pkgerrors.WithStack(cause)}
}

// Ok reports whether the Result carries a usable value (Success or Warning).
func (r Result[T]) Ok() bool {
	return r.kind == resultSuccess || r.kind == resultWarning
}

// Value returns the carried value; it is the zero value for Failure and
// InternalError results.
func (r Result[T]) Value() T {
	return r.value
}

// Problems returns the accumulated diagnostics, empty for Success and
// InternalError results.
func (r Result[T]) Problems() Problems {
	return r.problems
}

// Err returns a single error representing the Result's failure, or nil if
// the Result is Ok. InternalError results return their wrapped cause;
// Failure results return their Problems joined.
func (r Result[T]) Err() error {
	switch r.kind {
	case resultInternalError:
		return r.cause
	case resultFailure:
		return r.problems
	default:
		return nil
	}
}

// AsPair collapses a Result into the (value, Problems) shape most core
// operations hand back to their callers, folding an InternalError's cause
// into a single Problem so a caller never needs to branch on Result's kind
// to get a usable diagnostic.
func (r Result[T]) AsPair() (T, Problems) {
	if r.kind == resultInternalError {
		return r.value, Problems{Errorf("internal error: %s", r.cause)}
	}
	return r.value, r.problems
}

// Append merges additional problems into a Result's diagnostics, demoting a
// Success to a Warning, or leaving a Failure/InternalError unaffected.
func (r Result[T]) Append(problems Problems) Result[T] {
	if len(problems) == 0 {
		return r
	}
	switch r.kind {
	case resultSuccess:
		return Warning(r.value, problems)
	case resultWarning:
		r.problems = append(r.problems, problems...)
		return r
	default:
		return r
	}
}
