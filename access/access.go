// package access defines the lifecycle marker attached to every puzzle.
package access

import (
	"errors"
	"fmt"
)

// State is a puzzle lifecycle marker. It only moves forward,
// Unvisited -> Visited -> Solved, except through Reset.
type State int8

const (
	Unvisited State = iota // never displayed.
	Visited                // displayed at least once.
	Solved                 // solved. sticky until Reset.
)

var ErrUnknownState = errors.New("access: unknown state")

var stateNames = [...]string{
	Unvisited: "unvisited",
	Visited:   "visited",
	Solved:    "solved",
}

func (s State) String() string {
	if s.IsValid() {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int8(s))
}

// IsValid returns whether s is one of the defined states.
func (s State) IsValid() bool {
	return s >= Unvisited && s <= Solved
}

func (s State) IsVisited() bool { return s >= Visited }
func (s State) IsSolved() bool  { return s == Solved }

// Visit moves Unvisited to Visited. It returns true when the state is changed.
func (s *State) Visit() bool {
	if *s != Unvisited {
		return false
	}
	*s = Visited
	return true
}

// Solve moves any state to Solved. It returns true when the state is changed.
func (s *State) Solve() bool {
	if *s == Solved {
		return false
	}
	*s = Solved
	return true
}

// Reset returns a visited or solved state back to Visited.
// Unvisited is kept as is since the puzzle was never shown.
func (s *State) Reset() {
	if *s != Unvisited {
		*s = Visited
	}
}

// implements encoding.TextMarshaler, used by toml and codec.
func (s State) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownState, int8(s))
	}
	return []byte(stateNames[s]), nil
}

// implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Parse returns State named by name.
func Parse(name string) (State, error) {
	for i, n := range stateNames {
		if n == name {
			return State(i), nil
		}
	}
	return Unvisited, fmt.Errorf("%w: %q", ErrUnknownState, name)
}
