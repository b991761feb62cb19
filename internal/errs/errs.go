// Package errs defines the error kinds used across the unpacker, matching
// the propagation policy the tool follows at its I/O, format, resource, and
// CLI-usage boundaries.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies an error for the purposes of exit-code and abort policy.
type Kind int

const (
	// KindIO covers short reads, seeks past EOF, and output-file failures.
	KindIO Kind = iota
	// KindFormat covers corrupt on-wire data: bad type bytes, out-of-range
	// palette ids, impossible dimensions, RLE streams that overrun their buffer.
	KindFormat
	// KindResource covers queue overflow and allocation failure.
	KindResource
	// KindUsage covers missing/unknown CLI arguments.
	KindUsage
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "IoError"
	case KindFormat:
		return "FormatError"
	case KindResource:
		return "ResourceError"
	case KindUsage:
		return "UsageError"
	default:
		return "Error"
	}
}

// Error wraps an underlying error with a Kind, carrying a pkg/errors stack
// trace captured at the point of construction.
type Error struct {
	Kind Kind
	err  error
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.err.Error()
}

func (e *Error) Unwrap() error { return e.err }

// Format forwards to the wrapped pkg/errors error so that "%+v" prints a
// stack trace, used by the CLI when verbose mode is enabled.
func (e *Error) Format(s fmt.State, verb rune) {
	if f, ok := e.err.(fmt.Formatter); ok {
		f.Format(s, verb)
		return
	}
	_, _ = s.Write([]byte(e.Error()))
}

func newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, err: errors.Errorf(format, args...)}
}

func wrap(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, err: errors.Wrap(err, msg)}
}

// IO builds a KindIO error.
func IO(err error, msg string) *Error { return wrap(KindIO, err, msg) }

// IOf builds a formatted KindIO error with no underlying cause.
func IOf(format string, args ...interface{}) *Error { return newf(KindIO, format, args...) }

// Format builds a KindFormat error.
func Format(err error, msg string) *Error { return wrap(KindFormat, err, msg) }

// Formatf builds a formatted KindFormat error with no underlying cause.
func Formatf(format string, args ...interface{}) *Error { return newf(KindFormat, format, args...) }

// Resource builds a KindResource error.
func Resource(err error, msg string) *Error { return wrap(KindResource, err, msg) }

// Resourcef builds a formatted KindResource error with no underlying cause.
func Resourcef(format string, args ...interface{}) *Error { return newf(KindResource, format, args...) }

// Usage builds a KindUsage error.
func Usage(err error, msg string) *Error { return wrap(KindUsage, err, msg) }

// Usagef builds a formatted KindUsage error with no underlying cause.
func Usagef(format string, args ...interface{}) *Error { return newf(KindUsage, format, args...) }

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
