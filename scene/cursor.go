package scene

import (
	"time"

	"github.com/mzki/puzzlescene/signal"
	"github.com/mzki/puzzlescene/uiadapter/event/input"
	"github.com/mzki/puzzlescene/util/log"
	"github.com/mzki/puzzlescene/width"
)

var noEvent = input.Event{Type: input.EventNone}

// nodeState is the resumable state of a node for one playback.
type nodeState struct {
	done    bool
	started bool
	// time consumed by wait, slide and jump.
	elapsed time.Duration
	// current child of sequence, or finished iterations of repeat.
	index int
	// start position of slide and jump.
	from Position
	// initial vertical velocity of jump.
	vy float64
	// id of the dialogue opened by talk.
	dialogue int
}

// tick is shared by all of nodes advanced in one Advance call.
type tick struct {
	ev         input.Event
	evConsumed bool
}

// Cursor is live progress of one Scene playback.
// A Cursor may be abandoned at any time. Effects already applied
// to the Stage are kept as is.
type Cursor struct {
	scene  *Scene
	states []nodeState
	stage  *Stage
	queue  *signal.Queue
	config Config

	finished bool
}

// Stage returns the stage which the cursor plays on.
func (c *Cursor) Stage() *Stage { return c.stage }

// Finished returns whether the whole scene is finished.
func (c *Cursor) Finished() bool { return c.finished }

// Advance progresses the scene by elapsed time, with ev observed by
// dialogue. Pass an EventNone event if no input in this tick.
// It returns true while the scene is still running.
func (c *Cursor) Advance(elapsed time.Duration, ev input.Event) bool {
	if c.finished {
		return false
	}
	if elapsed < 0 {
		elapsed = 0
	}
	if max := c.config.MaxTick; max > 0 && elapsed > max {
		elapsed = max
	}
	if len(c.scene.nodes) == 0 {
		c.finished = true
		return false
	}
	t := &tick{ev: ev}
	if done, _ := c.advance(0, elapsed, t); done {
		c.finished = true
	}
	return !c.finished
}

// Abandon stops playback. Dialogues opened by the cursor are closed
// since nothing can dismiss them anymore. Other effects on the stage are kept.
func (c *Cursor) Abandon() {
	if c.finished {
		return
	}
	for i := range c.scene.nodes {
		st := &c.states[i]
		if c.scene.nodes[i].kind == kindTalk && st.started && !st.done {
			c.stage.closeDialogue(st.dialogue)
		}
	}
	c.finished = true
}

// advance progresses nodes[i] within budget. It returns whether the node
// is finished and time used by it. A running node uses whole budget.
func (c *Cursor) advance(i int, budget time.Duration, t *tick) (bool, time.Duration) {
	st := &c.states[i]
	if st.done {
		return true, 0
	}
	done, used := c.advanceNode(i, budget, t)
	if done {
		st.done = true
	}
	return done, used
}

func (c *Cursor) advanceNode(i int, budget time.Duration, t *tick) (bool, time.Duration) {
	n := &c.scene.nodes[i]
	st := &c.states[i]
	stage := c.stage

	switch n.kind {
	case kindSequence:
		// time left by a finished child is handed to the next child.
		remaining := budget
		for st.index < len(n.children) {
			done, used := c.advance(n.children[st.index], remaining, t)
			remaining -= used
			if !done {
				return false, budget
			}
			st.index++
		}
		return true, budget - remaining

	case kindParallel:
		allDone := true
		var maxUsed time.Duration
		for _, child := range n.children {
			done, used := c.advance(child, budget, t)
			if !done {
				allDone = false
			}
			if used > maxUsed {
				maxUsed = used
			}
		}
		if !allDone {
			return false, budget
		}
		return true, maxUsed

	case kindRepeat:
		remaining := budget
		child := n.children[0]
		for st.index < n.count {
			done, used := c.advance(child, remaining, t)
			remaining -= used
			if !done {
				return false, budget
			}
			st.index++
			if st.index < n.count {
				c.reset(child)
			}
		}
		return true, budget - remaining

	case kindWait:
		return c.consume(st, n.duration, budget)

	case kindSlide:
		a, ok := stage.actors[n.actor]
		if !ok {
			log.Debugf("scene: slide: actor %d is not placed, skipped", n.actor)
			return true, 0
		}
		if !st.started {
			st.started = true
			st.from = a.Pos
			a.Mirrored = n.flip
			if n.front {
				stage.bringToFront(n.actor)
			}
		}
		done, used := c.consume(st, n.duration, budget)
		if done {
			a.Pos = n.pos // exact target, no accumulated error.
		} else {
			a.Pos = lerp(st.from, n.pos, progress(st.elapsed, n.duration))
		}
		return done, used

	case kindJump:
		a, ok := stage.actors[n.actor]
		if !ok {
			log.Debugf("scene: jump: actor %d is not placed, skipped", n.actor)
			return true, 0
		}
		g := c.config.jumpGravity()
		if !st.started {
			st.started = true
			st.from = a.Pos
			st.vy = jumpVelocity(st.from[1], n.pos[1], n.duration, g)
		}
		done, used := c.consume(st, n.duration, budget)
		if done {
			a.Pos = n.pos
		} else {
			a.Pos = arc(st.from, n.pos, st.vy, g, st.elapsed, n.duration)
		}
		return done, used

	case kindTalk:
		if !st.started {
			st.started = true
			lines := width.Wrap(n.text, c.config.dialogueWidth())
			st.dialogue = stage.openDialogue(Dialogue{
				Actor:   n.actor,
				Style:   n.style,
				Anchor:  n.anchor,
				Text:    n.text,
				Lines:   lines,
				Columns: width.MaxWidth(lines),
			})
			return false, budget
		}
		// dismissal goes to the front-most box only.
		if !t.evConsumed && t.ev.IsDismissal() && !stage.dialogueCovered(st.dialogue) {
			t.evConsumed = true
			stage.closeDialogue(st.dialogue)
			return true, 0
		}
		return false, budget

	case kindPlace:
		stage.place(n.actor, n.sprite, n.frame, n.pos)
	case kindRemove:
		stage.remove(n.actor)
	case kindSetPosition:
		if a, ok := stage.actors[n.actor]; ok {
			a.Pos = n.pos
		} else {
			log.Debugf("scene: setpos: actor %d is not placed, skipped", n.actor)
		}
	case kindSetFrame:
		if a, ok := stage.actors[n.actor]; ok {
			a.Frame = n.frame
		}
	case kindSetVisible:
		if a, ok := stage.actors[n.actor]; ok {
			a.Visible = n.flag
		}
	case kindSetLight:
		stage.dark = n.flag
	case kindPlaySound:
		stage.sounds = append(stage.sounds, n.sound)
	case kindSetBackground:
		stage.background = n.background
		stage.hasBackground = true
	case kindSignal:
		if c.queue != nil {
			c.queue.Push(n.signalKind, n.signalValue)
		}
	}
	// instantaneous actions.
	return true, 0
}

// consume accumulates budget into st.elapsed up to d.
func (c *Cursor) consume(st *nodeState, d, budget time.Duration) (bool, time.Duration) {
	left := d - st.elapsed
	if budget >= left {
		st.elapsed = d
		return true, left
	}
	st.elapsed += budget
	return false, budget
}

// reset clears states of nodes[i] and its descendants for next iteration.
func (c *Cursor) reset(i int) {
	end := c.scene.nodes[i].end
	for j := i; j < end; j++ {
		c.states[j] = nodeState{}
	}
}
