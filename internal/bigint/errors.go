package bigint

import (
	"errors"
	"fmt"
)

// ErrorKind classifies hex decoding failures. The numeric values are the
// negative status codes the C reference tools used, so Code() can be
// reported verbatim.
type ErrorKind int

const (
	KindMissing ErrorKind = iota + 1
	KindLength
	KindDigit
	KindOverflow
)

// Sentinel errors matched with errors.Is against a *DecodeError.
var (
	ErrMissing  = errors.New("missing hex input")
	ErrLength   = errors.New("hex input must be exactly 64 digits")
	ErrDigit    = errors.New("invalid hex digit")
	ErrOverflow = errors.New("value does not fit the limb shape")
)

func (k ErrorKind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindLength:
		return "length"
	case KindDigit:
		return "digit"
	case KindOverflow:
		return "overflow"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Code returns the negative status code for the kind.
func (k ErrorKind) Code() int { return -int(k) }

func (k ErrorKind) sentinel() error {
	switch k {
	case KindMissing:
		return ErrMissing
	case KindLength:
		return ErrLength
	case KindDigit:
		return ErrDigit
	default:
		return ErrOverflow
	}
}

// DecodeError reports why a hex string could not be turned into limbs.
type DecodeError struct {
	Kind ErrorKind
	// Pos is the offending byte offset for KindDigit, the observed length
	// for KindLength, and -1 otherwise.
	Pos   int
	Input string
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case KindLength:
		return fmt.Sprintf("%v: got %d", ErrLength, e.Pos)
	case KindDigit:
		return fmt.Sprintf("%v %q at offset %d", ErrDigit, e.Input[e.Pos], e.Pos)
	default:
		return e.Kind.sentinel().Error()
	}
}

// Unwrap exposes the sentinel for errors.Is.
func (e *DecodeError) Unwrap() error { return e.Kind.sentinel() }
