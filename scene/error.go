package scene

import (
	"errors"

	"github.com/mzki/puzzlescene/util/errutil"
)

// CompileError holds all of problems found in a scene script.
type CompileError struct {
	Problems []error
}

func (e *CompileError) Error() string {
	me := errutil.NewMultiError()
	for _, p := range e.Problems {
		me.Add(p)
	}
	return "scene: compile failed: " + me.Err().Error()
}

// Is reports whether any problem matches target, so that
// errors.Is(err, ErrResourceNotFound) works for compile results.
func (e *CompileError) Is(target error) bool {
	for _, p := range e.Problems {
		if errors.Is(p, target) {
			return true
		}
	}
	return false
}

var (
	ErrNilAction     = errors.New("scene: nil action")
	ErrUnknownAction = errors.New("scene: unknown action type")
	ErrInvalidRepeat = errors.New("scene: invalid repeat count")
	ErrNegativeTime  = errors.New("scene: negative duration")
	ErrInvalidFrame  = errors.New("scene: frame out of range")
	ErrInvalidTalk   = errors.New("scene: invalid talk style or anchor")
)
