package core

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorKind string

const (
	KindUnsatisfiedDependency ErrorKind = "unsatisfied dependency"
	KindUnknownComponent      ErrorKind = "unknown component"
	KindToolFailure           ErrorKind = "tool failure"
	KindIoFailure             ErrorKind = "io failure"
	KindDirectoryReset        ErrorKind = "directory reset failure"
)

// Error is a failure of one kind, carrying the component it concerns.
// Expected and Actual are only meaningful for unsatisfied dependencies.
type Error struct {
	Kind      ErrorKind
	Component string
	Expected  int
	Actual    int
	Msg       string
	Cause     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Component != "" {
		fmt.Fprintf(&b, " (component %s)", e.Component)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ValidationError aggregates the dependency failures of every component.
type ValidationError struct {
	Failures []*Error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	for _, failure := range e.Failures {
		b.WriteString(failure.Msg)
	}
	return b.String()
}

func (e *ValidationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, failure := range e.Failures {
		errs = append(errs, failure)
	}
	return errs
}

// KindOf returns the kind of the first typed error in err's chain, or the
// empty kind when there is none.
func KindOf(err error) ErrorKind {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind
	}
	return ""
}

func NewUnknownComponentError(name string) *Error {
	return &Error{
		Kind:      KindUnknownComponent,
		Component: name,
		Msg:       fmt.Sprintf("could not find component %s", name),
	}
}

func NewToolFailure(component string, stderr string, cause error) *Error {
	return &Error{
		Kind:      KindToolFailure,
		Component: component,
		Msg:       strings.TrimSpace(stderr),
		Cause:     cause,
	}
}

func NewIoFailure(component string, msg string, cause error) *Error {
	return &Error{
		Kind:      KindIoFailure,
		Component: component,
		Msg:       msg,
		Cause:     cause,
	}
}

func NewDirectoryResetError(dir string, cause error) *Error {
	return &Error{
		Kind:  KindDirectoryReset,
		Msg:   fmt.Sprintf("failed to reset build directory %s", dir),
		Cause: cause,
	}
}
