package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies pipeline failures
type ErrorKind string

const (
	KindInvalidSample     ErrorKind = "invalid_sample"
	KindEmptyInput        ErrorKind = "empty_input"
	KindFormattingFailure ErrorKind = "formatting_failure"
	KindInvalidRule       ErrorKind = "invalid_rule"
)

// Sentinels for errors.Is matching against an *Error of the same kind
var (
	ErrInvalidSample     = errors.New("invalid sample")
	ErrEmptyInput        = errors.New("empty input")
	ErrFormattingFailure = errors.New("formatting failure")
	ErrInvalidRule       = errors.New("invalid rule")
)

// Error carries the kind of failure and the day it concerns, if any
type Error struct {
	Kind ErrorKind
	Day  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.sentinel().Error()
	if e.Day != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Day)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind
func (e *Error) Is(target error) bool {
	return target == e.sentinel()
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindInvalidSample:
		return ErrInvalidSample
	case KindEmptyInput:
		return ErrEmptyInput
	case KindFormattingFailure:
		return ErrFormattingFailure
	case KindInvalidRule:
		return ErrInvalidRule
	default:
		return errors.New(string(e.Kind))
	}
}
