// Package errutil provides utilty of errors.
package errutil

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Writer is wraper of io.Writer with internal Error.
// After the first failure, trailing Write() is not executed.
// It is used for writing a sequence of fields and checking
// error only once at the end.
type Writer struct {
	w   io.Writer
	n   int64
	err error
}

// construct with io.Writer.
func NewErrWriter(w io.Writer) *Writer { return &Writer{w: w} }

// return internal error.
func (ew *Writer) Err() error { return ew.err }

// N returns total bytes written successfully.
func (ew *Writer) N() int64 { return ew.n }

func (ew *Writer) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, nil // do nothing
	}
	b, err := ew.w.Write(p)
	ew.n += int64(b)
	ew.err = err
	return b, nil
}

// MultiError collects multipule errors and
// shows all of these at once.
type MultiError struct {
	errs []error
}

// Constract with no argument.
func NewMultiError() *MultiError {
	return &MultiError{errs: make([]error, 0, 4)}
}

// Add given error into Internal.
// if error is nil, no action for internal errors.
func (me *MultiError) Add(err error) {
	if err == nil {
		return
	}
	me.errs = append(me.errs, err)
}

// Len returns number of collected errors.
func (me *MultiError) Len() int { return len(me.errs) }

// Errors returns collected errors in added order.
func (me *MultiError) Errors() []error {
	return append([]error(nil), me.errs...)
}

// Err returns internal errors joined to one error.
// if internal errors is nothing, return nil.
// A single error is returned as is.
func (me *MultiError) Err() error {
	switch len(me.errs) {
	case 0:
		return nil
	case 1:
		return me.errs[0]
	}
	return &joinedError{errs: me.Errors()}
}

type joinedError struct {
	errs []error
}

func (e *joinedError) Error() string {
	var b strings.Builder
	b.WriteString("multiple errors:")
	for i, err := range e.errs {
		fmt.Fprintf(&b, "\n  %v. %v", i, err)
	}
	return b.String()
}

func (e *joinedError) Is(target error) bool {
	for _, err := range e.errs {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
