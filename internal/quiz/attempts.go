package quiz

import (
	"fmt"
	"sync"
	"time"

	"github.com/example/vocabquiz/internal/apperr"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// State of a quiz attempt
type State string

const (
	StateCreated   State = "created"
	StatePresented State = "presented"
	StateSubmitted State = "submitted"
	StateScored    State = "scored"
)

// Attempt is one presentation-and-scoring cycle over a test
type Attempt struct {
	ID           string
	TestID       int64
	ActorID      int64
	CanonicalIDs []int64
	PresentedIDs []int64
	State        State
	StartedAt    time.Time
}

// Attempts keeps the quiz attempts of the running process
type Attempts struct {
	mu    sync.Mutex
	items map[string]*Attempt
}

// NewAttempts creates an empty attempt store
func NewAttempts() *Attempts {
	return &Attempts{items: make(map[string]*Attempt)}
}

// Present registers a new attempt in state presented and returns its id
func (a *Attempts) Present(testID, actorID int64, canonical, presented []int64, now time.Time) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("failed to generate attempt id: %w", err)
	}
	attempt := &Attempt{
		ID:           id,
		TestID:       testID,
		ActorID:      actorID,
		CanonicalIDs: canonical,
		PresentedIDs: presented,
		State:        StateCreated,
		StartedAt:    now,
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.items[id] = attempt
	attempt.State = StatePresented
	return id, nil
}

// Claim moves a presented attempt owned by actorID to submitted and returns a copy of it
func (a *Attempts) Claim(id string, actorID int64) (Attempt, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	attempt, ok := a.items[id]
	if !ok {
		return Attempt{}, fmt.Errorf("%w: quiz attempt %q", apperr.ErrNotFound, id)
	}
	if attempt.ActorID != actorID {
		return Attempt{}, fmt.Errorf("%w: quiz attempt %q belongs to another user", apperr.ErrForbidden, id)
	}
	if attempt.State != StatePresented {
		return Attempt{}, apperr.Validation("quiz attempt %q was already submitted", id)
	}
	attempt.State = StateSubmitted
	return *attempt, nil
}

// Scored marks a submitted attempt as scored
func (a *Attempts) Scored(id string) {
	a.setState(id, StateSubmitted, StateScored)
}

// Release returns a submitted attempt to presented so it can be submitted again
func (a *Attempts) Release(id string) {
	a.setState(id, StateSubmitted, StatePresented)
}

func (a *Attempts) setState(id string, from, to State) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if attempt, ok := a.items[id]; ok && attempt.State == from {
		attempt.State = to
	}
}

// Get returns a copy of an attempt
func (a *Attempts) Get(id string) (Attempt, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	attempt, ok := a.items[id]
	if !ok {
		return Attempt{}, false
	}
	return *attempt, true
}

// Sweep drops every attempt started before now-ttl and returns how many were dropped
func (a *Attempts) Sweep(now time.Time, ttl time.Duration) int {
	cutoff := now.Add(-ttl)

	a.mu.Lock()
	defer a.mu.Unlock()
	removed := 0
	for id, attempt := range a.items {
		if attempt.StartedAt.Before(cutoff) {
			delete(a.items, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked attempts
func (a *Attempts) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.items)
}
