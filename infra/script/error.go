package script

import "errors"

var (
	// script does not return a table of scenes.
	ErrNoScenes = errors.New("script: scenes table is not returned")
	// value in the scenes table is not an action.
	ErrNotAction = errors.New("script: not an action")
)
