package pixelbatt

import (
	"github.com/pkg/errors"
)

// ErrorKind classifies fatal errors.
type ErrorKind int

const (
	// ConfigError is a malformed or out-of-range configuration value.
	ConfigError ErrorKind = iota + 1

	// PlatformError is a failure of the display server (connection, color,
	// font, or surface).
	PlatformError

	// SampleError is a failure to query the power state.
	SampleError
)

func (k ErrorKind) String() string {
	switch k {
	case ConfigError:
		return "config"
	case PlatformError:
		return "platform"
	case SampleError:
		return "sample"
	}
	return "unknown"
}

// Error is a fatal error, identifying the failing call and its argument.
type Error struct {
	Kind ErrorKind
	Op   string
	Arg  string
	Err  error
}

func (e *Error) Error() string {
	s := e.Op
	if e.Arg != "" {
		s += " " + e.Arg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Err
}

func configErr(op, arg string, err error) error {
	return &Error{Kind: ConfigError, Op: op, Arg: arg, Err: err}
}

func platformErr(op, arg string, err error) error {
	return &Error{Kind: PlatformError, Op: op, Arg: arg, Err: err}
}

func sampleErr(op string, err error) error {
	return &Error{Kind: SampleError, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in the chain, or 0 if there is
// none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
