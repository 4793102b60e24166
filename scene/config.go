package scene

import (
	"fmt"
	"time"
)

// Scene Configure
type Config struct {
	// width of dialogue line in east asian width. Talk text is wrapped by it.
	// 0 means DefaultDialogueWidth, negative means no wrapping.
	DialogueWidth int `toml:"dialogue_width"`

	// gravity used by Jump, in pixels per second squared.
	// 0 means DefaultJumpGravity.
	JumpGravity float64 `toml:"jump_gravity"`

	// elapsed time longer than this is clamped in one Advance, so that
	// a stalled frame does not skip whole animations. 0 means no clamp.
	MaxTick time.Duration `toml:"max_tick"`
}

func (c Config) Validate() error {
	if c.JumpGravity < 0 {
		return fmt.Errorf("scene: jump gravity must be >= 0, got %v", c.JumpGravity)
	}
	if c.MaxTick < 0 {
		return fmt.Errorf("scene: max tick must be >= 0, got %v", c.MaxTick)
	}
	return nil
}

func (c Config) dialogueWidth() int {
	switch {
	case c.DialogueWidth == 0:
		return DefaultDialogueWidth
	case c.DialogueWidth < 0:
		return 0 // no wrap
	}
	return c.DialogueWidth
}

func (c Config) jumpGravity() float64 {
	if c.JumpGravity == 0 {
		return DefaultJumpGravity
	}
	return c.JumpGravity
}
