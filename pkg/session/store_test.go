package session_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/aretw0/valueprop/pkg/compose"
	"github.com/aretw0/valueprop/pkg/domain"
	"github.com/aretw0/valueprop/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(f domain.Field, v string) domain.Patch {
	p, err := domain.SetText(f, v)
	if err != nil {
		panic(err)
	}
	return p
}

func TestStore_Defaults(t *testing.T) {
	s := session.NewStore()
	st := s.Snapshot()

	assert.Equal(t, 1, st.CurrentStep)
	assert.False(t, st.IsComplete)
	assert.Equal(t, domain.NewAnswerData(), st.Data)
}

func TestStore_SetStepClamps(t *testing.T) {
	ctx := context.Background()
	s := session.NewStore()

	for _, n := range []int{-10, 0, 1, 2, 3, 4, 5, 6, 100} {
		s.SetStep(ctx, n)
		assert.Equal(t, domain.ClampStep(n), s.CurrentStep(), "SetStep(%d)", n)
	}
}

func TestStore_Navigation(t *testing.T) {
	ctx := context.Background()
	s := session.NewStore()

	s.PrevStep(ctx)
	assert.Equal(t, 1, s.CurrentStep(), "PrevStep at step 1 is a no-op")

	for i := 0; i < 10; i++ {
		s.NextStep(ctx)
	}
	assert.Equal(t, 5, s.CurrentStep(), "NextStep saturates at 5")

	s.PrevStep(ctx)
	assert.Equal(t, 4, s.CurrentStep())
}

func TestStore_UpdateDataMerges(t *testing.T) {
	ctx := context.Background()
	s := session.NewStore()

	s.UpdateData(ctx, text(domain.FieldMonetaryImpact, "$1M"))
	s.UpdateData(ctx, text(domain.FieldTimeSavings, "5h"))

	d := s.Data()
	assert.Equal(t, "$1M", d.MonetaryImpact)
	assert.Equal(t, "5h", d.TimeSavings)
}

func TestStore_AddItem(t *testing.T) {
	ctx := context.Background()
	s := session.NewStore()

	added, err := s.AddItem(ctx, domain.FieldTechnicalSkills, "  Go  ")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.AddItem(ctx, domain.FieldTechnicalSkills, "   ")
	require.NoError(t, err)
	assert.False(t, added, "whitespace-only entries are rejected")

	_, err = s.AddItem(ctx, domain.FieldAudience, "x")
	assert.ErrorIs(t, err, domain.ErrUnknownField)

	assert.Equal(t, []string{"Go"}, s.Data().TechnicalSkills)
}

func TestStore_RemoveItemByPosition(t *testing.T) {
	ctx := context.Background()
	s := session.NewStore()

	for _, v := range []string{"a", "dup", "b", "dup", "c"} {
		_, err := s.AddItem(ctx, domain.FieldTestimonials, v)
		require.NoError(t, err)
	}

	require.NoError(t, s.RemoveItem(ctx, domain.FieldTestimonials, 3))
	assert.Equal(t, []string{"a", "dup", "b", "c"}, s.Data().Testimonials)

	require.NoError(t, s.RemoveItem(ctx, domain.FieldTestimonials, 0))
	assert.Equal(t, []string{"dup", "b", "c"}, s.Data().Testimonials)

	assert.ErrorIs(t, s.RemoveItem(ctx, domain.FieldTestimonials, 3), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, s.RemoveItem(ctx, domain.FieldTestimonials, -1), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, s.RemoveItem(ctx, domain.FieldProblem, 0), domain.ErrUnknownField)
}

func TestStore_PropositionRecompute(t *testing.T) {
	ctx := context.Background()
	s := session.NewStore()

	s.UpdateData(ctx, text(domain.FieldAudience, "executives"))
	s.UpdateData(ctx, text(domain.FieldProblem, "wasted time"))
	assert.Empty(t, s.Data().ValueProposition, "no proposition until the guard holds")

	s.UpdateData(ctx, text(domain.FieldUniqueApproach, "automation"))
	assert.Equal(t,
		"I help executives solve wasted time through automation, setting myself apart through my proven track record of delivering exceptional results.",
		s.Data().ValueProposition)

	_, err := s.AddItem(ctx, domain.FieldQuantifiableResults, "saved 10 hours/week")
	require.NoError(t, err)
	assert.Equal(t,
		"I help executives solve wasted time through automation, setting myself apart through my proven track record of saved 10 hours/week.",
		s.Data().ValueProposition)

	// Clearing a guard field keeps the previous sentence.
	s.UpdateData(ctx, text(domain.FieldAudience, ""))
	assert.Contains(t, s.Data().ValueProposition, "I help executives")
}

func TestStore_UserEditSuppressesRecompute(t *testing.T) {
	ctx := context.Background()
	s := session.NewStore()

	s.UpdateData(ctx, text(domain.FieldAudience, "executives"))
	s.UpdateData(ctx, text(domain.FieldProblem, "wasted time"))
	s.UpdateData(ctx, text(domain.FieldUniqueApproach, "automation"))
	assert.False(t, s.Snapshot().PropositionEdited)

	s.UpdateData(ctx, text(domain.FieldValueProposition, "My own words."))
	assert.True(t, s.Snapshot().PropositionEdited)

	s.UpdateData(ctx, text(domain.FieldAudience, "founders"))
	assert.Equal(t, "My own words.", s.Data().ValueProposition)

	s.RegenerateProposition(ctx)
	assert.False(t, s.Snapshot().PropositionEdited)
	assert.Contains(t, s.Data().ValueProposition, "I help founders")
}

func TestStore_HydrateKeepsStoredProposition(t *testing.T) {
	ctx := context.Background()
	s := session.NewStore()

	stored := domain.NewAnswerData()
	stored.Audience = "executives"
	stored.Problem = "wasted time"
	stored.UniqueApproach = "automation"
	stored.ValueProposition = "Hand written."

	s.Hydrate(ctx, domain.PatchFrom(stored))

	st := s.Snapshot()
	assert.Equal(t, "Hand written.", st.Data.ValueProposition)
	assert.True(t, st.PropositionEdited)

	s.UpdateData(ctx, text(domain.FieldAudience, "founders"))
	assert.Equal(t, "Hand written.", s.Data().ValueProposition)
}

func TestStore_HydrateComposesBlankProposition(t *testing.T) {
	ctx := context.Background()
	s := session.NewStore()

	stored := domain.NewAnswerData()
	stored.Audience = "executives"
	stored.Problem = "wasted time"
	stored.UniqueApproach = "automation"

	s.Hydrate(ctx, domain.PatchFrom(stored))

	st := s.Snapshot()
	assert.True(t, strings.HasPrefix(st.Data.ValueProposition,
		"I help executives solve wasted time through automation"))
	assert.False(t, st.PropositionEdited)

	s.UpdateData(ctx, text(domain.FieldAudience, "founders"))
	assert.Contains(t, s.Data().ValueProposition, "I help founders")
}

func TestStore_HydrateComposedPropositionStaysAutomatic(t *testing.T) {
	ctx := context.Background()
	s := session.NewStore()

	stored := domain.NewAnswerData()
	stored.Audience = "executives"
	stored.Problem = "wasted time"
	stored.UniqueApproach = "automation"
	composed, ok := compose.Proposition(stored)
	require.True(t, ok)
	stored.ValueProposition = composed

	s.Hydrate(ctx, domain.PatchFrom(stored))
	assert.False(t, s.Snapshot().PropositionEdited)
	assert.Equal(t, composed, s.Data().ValueProposition)
}

func TestStore_CompleteAndReset(t *testing.T) {
	ctx := context.Background()
	var resets, completes int
	s := session.NewStore(session.WithLifecycleHooks(domain.LifecycleHooks{
		OnComplete: func(context.Context, *domain.EventBase) { completes++ },
		OnReset:    func(context.Context, *domain.EventBase) { resets++ },
	}))

	s.UpdateData(ctx, text(domain.FieldAudience, "executives"))
	s.SetStep(ctx, 4)
	s.Complete(ctx)
	s.Complete(ctx)
	assert.True(t, s.Snapshot().IsComplete)
	assert.Equal(t, 1, completes)

	s.Reset(ctx)
	assert.Equal(t, domain.NewState(), s.Snapshot())
	assert.Equal(t, 1, resets)
}

func TestStore_ObserversSeeLatestData(t *testing.T) {
	ctx := context.Background()
	s := session.NewStore()

	var seen []domain.AnswerData
	s.Subscribe(func(_ context.Context, d domain.AnswerData) {
		seen = append(seen, d)
	})

	s.UpdateData(ctx, text(domain.FieldAudience, "a"))
	_, _ = s.AddItem(ctx, domain.FieldSoftSkills, "x")
	s.SetStep(ctx, 3) // not a data mutation
	s.Reset(ctx)

	require.Len(t, seen, 3)
	assert.Equal(t, "a", seen[0].Audience)
	assert.Equal(t, []string{"x"}, seen[1].SoftSkills)
	assert.Equal(t, domain.NewAnswerData(), seen[2])
}

func TestStore_Hooks(t *testing.T) {
	ctx := context.Background()
	var steps []domain.StepEvent
	var changes [][]domain.Field

	s := session.NewStore(session.WithLifecycleHooks(domain.LifecycleHooks{
		OnStepChange: func(_ context.Context, e *domain.StepEvent) { steps = append(steps, *e) },
		OnDataChange: func(_ context.Context, e *domain.DataEvent) { changes = append(changes, e.Changed) },
	}))

	s.NextStep(ctx)
	s.SetStep(ctx, 2) // same step, no event
	s.UpdateData(ctx, text(domain.FieldTimeSavings, "1h"))

	require.Len(t, steps, 1)
	assert.Equal(t, 1, steps[0].From)
	assert.Equal(t, 2, steps[0].To)
	assert.Equal(t, [][]domain.Field{{domain.FieldTimeSavings}}, changes)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := session.NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.AddItem(ctx, domain.FieldSuccessStories, "story")
			s.NextStep(ctx)
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	assert.Len(t, s.Data().SuccessStories, 50)
	assert.Equal(t, 5, s.CurrentStep())
}
