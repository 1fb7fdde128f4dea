package markup

import (
	"errors"
	"fmt"
)

// Error is the only kind of error the compiler reports: the document or the
// configuration is invalid. It carries no position beyond what Message says.
type Error struct {
	Message string
}

func (e *Error) Error() string { return "syntax error: " + e.Message }

// Errorf creates an *Error with a formatted message.
func Errorf(format string, args ...any) error {
	return &Error{fmt.Sprintf(format, args...)}
}

// thrown wraps an error raised by throw, so that catch can tell it from other
// panics.
type thrown struct {
	err error
}

// throw unwinds to the nearest catch.
func throw(err error) {
	panic(thrown{err})
}

// catch stops a panic raised by throw and stores its error in *perr. Other
// panics keep propagating.
func catch(perr *error) {
	r := recover()
	if r == nil {
		return
	}
	if t, ok := r.(thrown); ok {
		*perr = t.err
	} else {
		panic(r)
	}
}

// Converts an error returned by an extension to an *Error.
func asError(what, name string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{fmt.Sprintf("%s %q: %v", what, name, err)}
}
