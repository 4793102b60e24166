// package history provides undo/redo stacks of puzzle commands.
package history

// DefaultMaxLen is used when Config.MaxLen is not positive.
const DefaultMaxLen = 1000

// Config for History.
type Config struct {
	// maximum number of commands held in each stack. The oldest
	// command is dropped when exceeded. 0 or negative means DefaultMaxLen.
	MaxLen int `toml:"max_len"`
}

func (c Config) maxLen() int {
	if c.MaxLen <= 0 {
		return DefaultMaxLen
	}
	return c.MaxLen
}

// History is a pair of bounded stacks of command C.
// C is opaque here, the puzzle applies and unapplies it.
// The zero value is not usable, use New instead.
type History[C any] struct {
	undo   []C
	redo   []C
	maxLen int
}

func New[C any](config Config) *History[C] {
	return &History[C]{maxLen: config.maxLen()}
}

// Push records a new command and clears redo stack.
func (h *History[C]) Push(cmd C) {
	h.undo = pushBounded(h.undo, cmd, h.maxLen)
	h.redo = h.redo[:0]
}

// PopUndo takes the latest command and moves it onto redo stack.
// It returns false when there is nothing to undo.
func (h *History[C]) PopUndo() (C, bool) {
	var cmd C
	if len(h.undo) == 0 {
		return cmd, false
	}
	cmd, h.undo = pop(h.undo)
	h.redo = pushBounded(h.redo, cmd, h.maxLen)
	return cmd, true
}

// PopRedo takes the latest undone command and moves it back onto undo stack.
// It returns false when there is nothing to redo.
func (h *History[C]) PopRedo() (C, bool) {
	var cmd C
	if len(h.redo) == 0 {
		return cmd, false
	}
	cmd, h.redo = pop(h.redo)
	h.undo = pushBounded(h.undo, cmd, h.maxLen)
	return cmd, true
}

// Clear empties both stacks.
func (h *History[C]) Clear() {
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
}

func (h *History[C]) CanUndo() bool { return len(h.undo) > 0 }
func (h *History[C]) CanRedo() bool { return len(h.redo) > 0 }
func (h *History[C]) UndoLen() int  { return len(h.undo) }
func (h *History[C]) RedoLen() int  { return len(h.redo) }

func pushBounded[C any](stack []C, cmd C, maxLen int) []C {
	if len(stack) >= maxLen {
		// drop oldest one.
		n := copy(stack, stack[len(stack)-maxLen+1:])
		stack = stack[:n]
	}
	return append(stack, cmd)
}

func pop[C any](stack []C) (C, []C) {
	last := len(stack) - 1
	cmd := stack[last]
	var zero C
	stack[last] = zero // release reference held by the command.
	return cmd, stack[:last]
}
