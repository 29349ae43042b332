package wizard

import (
	"context"

	"github.com/aretw0/valueprop/pkg/domain"
	"github.com/aretw0/valueprop/pkg/session"
)

// View is what a front end needs to draw the active step.
type View struct {
	Step     Step                `json:"step"`
	Progress int                 `json:"progress"`
	First    bool                `json:"first"`
	Last     bool                `json:"last"`
	State    domain.SessionState `json:"state"`
}

// Sequencer routes navigation actions to the session store.
type Sequencer struct {
	store *session.Store
}

// NewSequencer binds a sequencer to a store.
func NewSequencer(store *session.Store) *Sequencer {
	return &Sequencer{store: store}
}

// Current returns the view for the store's current step.
func (q *Sequencer) Current() View {
	st := q.store.Snapshot()
	return View{
		Step:     Descriptor(st.CurrentStep),
		Progress: Progress(st.CurrentStep),
		First:    st.CurrentStep == domain.FirstStep,
		Last:     st.CurrentStep == domain.LastStep,
		State:    st,
	}
}

// Next advances one step. No-op on the last step.
func (q *Sequencer) Next(ctx context.Context) View {
	q.store.NextStep(ctx)
	return q.Current()
}

// Finish marks the session complete. It is only honoured on the last step
// and reports whether the session is complete afterwards.
func (q *Sequencer) Finish(ctx context.Context) bool {
	if q.store.CurrentStep() != domain.LastStep {
		return false
	}
	q.store.Complete(ctx)
	return true
}

// Back returns to the previous step.
func (q *Sequencer) Back(ctx context.Context) View {
	q.store.PrevStep(ctx)
	return q.Current()
}

// Jump moves to step n (clamped).
func (q *Sequencer) Jump(ctx context.Context, n int) View {
	q.store.SetStep(ctx, n)
	return q.Current()
}
