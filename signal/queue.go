// package signal provides the mailbox between scene playback and the puzzle view.
// Scenes push (kind, value) pairs while playing and the view drains them
// in emission order after each event dispatch.
package signal

import (
	"sync"
)

// Signal is a notification emitted by a scene, e.g. "reveal letter 3".
// The meaning of Kind and Value is defined by each puzzle.
type Signal struct {
	Kind  int
	Value int
}

// Queue is a FIFO of Signal.
// Push and Drain never block.
type Queue struct {
	mu  sync.Mutex
	buf []Signal
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push appends a signal to the end of queue.
func (q *Queue) Push(kind, value int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.buf = append(q.buf, Signal{Kind: kind, Value: value})
}

// Drain returns all of signals pushed since last Drain, in pushed order,
// and empties the queue. It returns nil if nothing is pushed.
func (q *Queue) Drain() []Signal {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.buf) == 0 {
		return nil
	}
	out := q.buf
	q.buf = nil
	return out
}

// Len returns number of pending signals.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buf)
}

// Clear discards pending signals.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.buf = nil
}
