package puzzle

import (
	"github.com/mzki/puzzlescene/history"
	"github.com/mzki/puzzlescene/scene"
)

// Config for Session.
type Config struct {
	Scene   scene.Config   `toml:"scene"`
	History history.Config `toml:"history"`
}

func (c Config) Validate() error {
	return c.Scene.Validate()
}
