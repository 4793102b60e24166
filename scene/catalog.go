package scene

import (
	"errors"
	"image"
)

// ErrResourceNotFound should be returned, possibly wrapped, by Catalog
// when the named resource does not exist.
var ErrResourceNotFound = errors.New("scene: resource not found")

// Sprite is a resolved sprite sheet.
type Sprite struct {
	Name string
	// number of frames. 0 means frame index is not checked.
	Frames int
	// size of a frame in pixels. used for hit test and dialogue placement.
	Size image.Point
}

type Sound struct {
	Name string
}

type Background struct {
	Name string
}

//go:generate mockgen -destination=./mock/mock_catalog.go . Catalog

// Catalog resolves resource names referenced by scene scripts.
// It is read only from scenes and may be shared by many of them.
type Catalog interface {
	Sprite(name string) (Sprite, error)
	Sound(name string) (Sound, error)
	Background(name string) (Background, error)
}
