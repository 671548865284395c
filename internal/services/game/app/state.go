package app

import (
	"sync"

	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart"
	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart/levelup"
)

// State holds the active character, the open level-up session and whether a
// store write is pending. The rules engine never reads it; callers pass it to
// Service by reference.
type State struct {
	mu        sync.Mutex
	character *daggerheart.Character
	session   *levelup.Session
	pending   bool
}

// NewState returns an empty state.
func NewState() *State {
	return &State{}
}

// Character returns a copy of the active character.
func (s *State) Character() (daggerheart.Character, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.character == nil {
		return daggerheart.Character{}, false
	}
	return s.character.Clone(), true
}

// SetCharacter replaces the active character and returns a function that
// restores the previous one.
func (s *State) SetCharacter(c daggerheart.Character) (restore func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous := s.character
	next := c.Clone()
	s.character = &next
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.character = previous
	}
}

// Session returns the open level-up session, or nil.
func (s *State) Session() *levelup.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *State) setSession(session *levelup.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
}

// Pending reports whether an optimistic update awaits its store write.
func (s *State) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

func (s *State) setPending(pending bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = pending
}
