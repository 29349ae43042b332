package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/valueprop/internal/logging"
	"github.com/aretw0/valueprop/pkg/compose"
	"github.com/aretw0/valueprop/pkg/domain"
)

// Observer receives the latest answer record after each data mutation.
type Observer func(ctx context.Context, data domain.AnswerData)

// Store owns a SessionState and serializes every mutation.
// Observers run while the store lock is held: they must not call back into the Store.
type Store struct {
	mu        sync.Mutex
	state     domain.SessionState
	observers []Observer
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

// Option configures the Store.
type Option func(*Store)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Store) {
		s.hooks = hooks
	}
}

// WithLogger configures a logger for the Store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a Store holding the initial session state.
func NewStore(opts ...Option) *Store {
	s := &Store{
		state:  domain.NewState(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers an observer for data mutations.
func (s *Store) Subscribe(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Data returns a deep copy of the answer record.
func (s *Store) Data() domain.AnswerData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Data.Clone()
}

// CurrentStep returns the active step number.
func (s *Store) CurrentStep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CurrentStep
}

// UpdateData shallow-merges p into the answers.
// Writing ValueProposition directly marks it as user-edited.
func (s *Store) UpdateData(ctx context.Context, p domain.Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ValueProposition != nil {
		s.state.PropositionEdited = true
	}
	s.applyLocked(ctx, p, true)
}

// Hydrate merges a restored record.
// A blank proposition is composed when its inputs are complete. A stored proposition
// that differs from the composed sentence was written by the user and stays edited.
func (s *Store) Hydrate(ctx context.Context, p domain.Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.state.Data.Clone()
	s.state.Data = p.Apply(s.state.Data)

	composed, ok := compose.Proposition(s.state.Data)
	switch stored := s.state.Data.ValueProposition; {
	case stored == "" && ok:
		s.state.Data.ValueProposition = composed
	case stored != "" && stored != composed:
		s.state.PropositionEdited = true
	}
	s.publishLocked(ctx, before)
}

// AddItem appends a trimmed entry to a list field.
// Empty or whitespace-only entries are rejected silently and report false.
func (s *Store) AddItem(ctx context.Context, field domain.Field, value string) (bool, error) {
	if !field.IsList() {
		return false, fmt.Errorf("%w: %q is not a list", domain.ErrUnknownField, field)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, _ := s.state.Data.List(field)
	next := append(append(make([]string, 0, len(items)+1), items...), value)
	p, err := domain.SetList(field, next)
	if err != nil {
		return false, err
	}
	s.applyLocked(ctx, p, true)
	return true, nil
}

// RemoveItem deletes the entry at index from a list field.
// Other entries keep their relative order; duplicates are distinct positions.
func (s *Store) RemoveItem(ctx context.Context, field domain.Field, index int) error {
	if !field.IsList() {
		return fmt.Errorf("%w: %q is not a list", domain.ErrUnknownField, field)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, _ := s.state.Data.List(field)
	if index < 0 || index >= len(items) {
		return fmt.Errorf("%w: %d (len %d)", domain.ErrIndexOutOfRange, index, len(items))
	}

	next := make([]string, 0, len(items)-1)
	next = append(next, items[:index]...)
	next = append(next, items[index+1:]...)
	p, err := domain.SetList(field, next)
	if err != nil {
		return err
	}
	s.applyLocked(ctx, p, true)
	return nil
}

// RegenerateProposition drops the user-edited mark and recomposes the sentence.
func (s *Store) RegenerateProposition(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.PropositionEdited = false
	before := s.state.Data.Clone()
	s.recomposeLocked()
	s.publishLocked(ctx, before)
}

// SetStep moves to step n, clamped to the valid range.
func (s *Store) SetStep(ctx context.Context, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moveLocked(ctx, domain.ClampStep(n))
}

// NextStep advances one step. No-op on the last step.
func (s *Store) NextStep(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moveLocked(ctx, min(domain.LastStep, s.state.CurrentStep+1))
}

// PrevStep goes back one step. No-op on the first step.
func (s *Store) PrevStep(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moveLocked(ctx, max(domain.FirstStep, s.state.CurrentStep-1))
}

// Complete marks the session as complete.
func (s *Store) Complete(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.IsComplete {
		return
	}
	s.state.IsComplete = true
	if s.hooks.OnComplete != nil {
		s.hooks.OnComplete(ctx, &domain.EventBase{Timestamp: time.Now(), Type: domain.EventComplete})
	}
}

// Reset restores the initial state.
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.state.Data.Clone()
	s.state = domain.NewState()
	s.logger.Debug("Session reset")

	if s.hooks.OnReset != nil {
		s.hooks.OnReset(ctx, &domain.EventBase{Timestamp: time.Now(), Type: domain.EventReset})
	}
	s.publishLocked(ctx, before)
}

// applyLocked merges p, recomputes the proposition when its inputs changed,
// and notifies observers. Caller holds s.mu.
func (s *Store) applyLocked(ctx context.Context, p domain.Patch, recompose bool) {
	before := s.state.Data.Clone()
	s.state.Data = p.Apply(s.state.Data)

	if recompose && domain.Touches(domain.Diff(before, s.state.Data), domain.PropositionInputs) {
		s.recomposeLocked()
	}
	s.publishLocked(ctx, before)
}

func (s *Store) recomposeLocked() {
	if s.state.PropositionEdited {
		return
	}
	sentence, ok := compose.Proposition(s.state.Data)
	if !ok || sentence == s.state.Data.ValueProposition {
		return
	}
	s.state.Data.ValueProposition = sentence
}

// publishLocked fires hooks and observers with the latest data. Caller holds s.mu.
// Observers are notified on every mutation, even when no field changed.
func (s *Store) publishLocked(ctx context.Context, before domain.AnswerData) {
	changed := domain.Diff(before, s.state.Data)
	if len(changed) > 0 {
		s.logger.Debug("Session data changed", "fields", changed)
		if s.hooks.OnDataChange != nil {
			s.hooks.OnDataChange(ctx, &domain.DataEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventDataChange},
				Changed:   changed,
			})
		}
	}

	for _, obs := range s.observers {
		obs(ctx, s.state.Data.Clone())
	}
}

func (s *Store) moveLocked(ctx context.Context, to int) {
	from := s.state.CurrentStep
	if from == to {
		return
	}
	s.state.CurrentStep = to
	s.logger.Debug("Step changed", "from", from, "to", to)

	if s.hooks.OnStepChange != nil {
		s.hooks.OnStepChange(ctx, &domain.StepEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStepChange},
			From:      from,
			To:        to,
		})
	}
}
