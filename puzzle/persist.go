package puzzle

import (
	"context"
	"fmt"

	"github.com/mzki/puzzlescene/scene"
	"github.com/mzki/puzzlescene/state"
	"github.com/mzki/puzzlescene/util/log"
)

// SaveState writes access state and, if the puzzle implements
// state.Persistent, its progress into doc. Scenes are never saved.
func (s *Session[C]) SaveState(doc *state.Document) {
	if p, ok := s.puzzle.(state.Persistent); ok {
		p.SaveState(doc)
	}
	doc.SetAccess(s.puzzle.Access())
}

// LoadState restores the puzzle from doc. Active scene, stage, history
// and pending signals are discarded and the session becomes Idle.
// Solved access and solved progress are kept consistent:
// each of them forces the other.
func (s *Session[C]) LoadState(doc *state.Document) {
	s.SkipScene()
	s.stage = scene.NewStage()
	s.ClearUndoRedo()
	s.queue.Clear()

	if p, ok := s.puzzle.(state.Persistent); ok {
		p.LoadState(doc)
	}
	a := doc.Access()
	switch {
	case a.IsSolved() && !s.puzzle.IsSolved():
		log.Debugf("puzzle: loaded access is %v but progress is not, force solve", a)
		s.puzzle.Solve()
	case !a.IsSolved() && s.puzzle.IsSolved():
		log.Debugf("puzzle: loaded progress is solved, access %v is promoted", a)
		a.Solve()
	}
	s.puzzle.SetAccess(a)
}

// Save stores current state into repo as id.
func (s *Session[C]) Save(ctx context.Context, repo state.Repository, id, title string) error {
	if err := repo.Save(ctx, id, title, state.Snapshot(s)); err != nil {
		return fmt.Errorf("puzzle: save %s: %w", id, err)
	}
	return nil
}

// Load restores state of id from repo. The session is unchanged on error.
func (s *Session[C]) Load(ctx context.Context, repo state.Repository, id string) error {
	doc, err := repo.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("puzzle: load %s: %w", id, err)
	}
	s.LoadState(doc)
	return nil
}
