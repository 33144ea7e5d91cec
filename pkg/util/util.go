package util

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

// error

type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}

	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

// Is reports whether target is the error's code, so errors.Is(err, ErrBadParamInput) works
// without the code being part of the wrapped chain.
func (e *Error) Is(target error) bool {
	return e.code != nil && e.code == target
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func (e *Error) Code() error {
	return e.code
}

var (
	ErrBadParamInput = errors.New("given Param is not valid")
	ErrResource      = errors.New("resource request refused")
	ErrInternal      = errors.New("internal invariant violated")
)

// CodeOf returns the code carried by the first *Error in err's chain, or nil.
func CodeOf(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return nil
}

func AssertPanic(cond bool, msg string) {
	if !cond {
		panic(msg)
	}
}

func ReadLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// RoundHalfEven matches C's nearbyint under the default rounding mode.
func RoundHalfEven(val float64) float64 {
	return math.RoundToEven(val)
}

func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

const (
	EXIT_OK = iota
	EXIT_BAD_PARAM
	EXIT_RESOURCE
	EXIT_INTERNAL
)

// ExitCode maps an error to the process exit status of the command-line tools.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return EXIT_OK
	case errors.Is(err, ErrBadParamInput):
		return EXIT_BAD_PARAM
	case errors.Is(err, ErrResource):
		return EXIT_RESOURCE
	default:
		return EXIT_INTERNAL
	}
}
