package reedsolomon

import (
	"errors"
	"fmt"
)

// Kind classifies a decoding failure so callers can switch on it.
type Kind uint8

const (
	// KindUnknown is returned by KindOf for errors not produced by this package.
	KindUnknown Kind = iota
	// KindConfiguration means the field parameters do not describe a valid
	// GF(2^m). It is fatal and only happens at field construction.
	KindConfiguration
	// KindDomain is a contract violation: log/inverse of zero, division by
	// zero, out of range codewords or bad decode arguments.
	KindDomain
	// KindUncorrectable means the received word holds more errors than the
	// code can fix. Callers are expected to retry with other input.
	KindUncorrectable
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindDomain:
		return "domain"
	case KindUncorrectable:
		return "uncorrectable"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every operation in this package.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
}

func (e *Error) Error() string {
	switch {
	case e.Op == "" && e.Msg == "":
		return "reedsolomon: " + e.Kind.String() + " error"
	case e.Op == "":
		return fmt.Sprintf("reedsolomon: %s", e.Msg)
	case e.Msg == "":
		return fmt.Sprintf("reedsolomon: %s: %s error", e.Op, e.Kind)
	}
	return fmt.Sprintf("reedsolomon: %s: %s", e.Op, e.Msg)
}

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, ErrUncorrectable) matches any uncorrectable failure.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Msg == ""
}

// Sentinels for errors.Is comparisons.
var (
	ErrConfiguration = &Error{Kind: KindConfiguration}
	ErrDomain        = &Error{Kind: KindDomain}
	ErrUncorrectable = &Error{Kind: KindUncorrectable}
)

// KindOf extracts the Kind of err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func domainError(op, format string, args ...any) error {
	return &Error{Kind: KindDomain, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func uncorrectable(op, format string, args ...any) error {
	return &Error{Kind: KindUncorrectable, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func configError(format string, args ...any) error {
	return &Error{Kind: KindConfiguration, Op: "field", Msg: fmt.Sprintf(format, args...)}
}
