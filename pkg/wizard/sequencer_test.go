package wizard_test

import (
	"context"
	"testing"

	"github.com/aretw0/valueprop/pkg/session"
	"github.com/aretw0/valueprop/pkg/wizard"
	"github.com/stretchr/testify/assert"
)

func TestSequencer_Navigation(t *testing.T) {
	ctx := context.Background()
	store := session.NewStore()
	seq := wizard.NewSequencer(store)

	v := seq.Current()
	assert.Equal(t, "Define Your Context", v.Step.Title)
	assert.Equal(t, 20, v.Progress)
	assert.True(t, v.First)
	assert.False(t, v.Last)

	v = seq.Back(ctx)
	assert.Equal(t, 1, v.Step.Number)

	for i := 0; i < 6; i++ {
		v = seq.Next(ctx)
	}
	assert.Equal(t, 5, v.Step.Number)
	assert.Equal(t, 100, v.Progress)
	assert.True(t, v.Last)
	assert.Equal(t, 5, store.CurrentStep())

	v = seq.Jump(ctx, 3)
	assert.Equal(t, "Generate Numbers", v.Step.Title)
}

func TestSequencer_Finish(t *testing.T) {
	ctx := context.Background()
	store := session.NewStore()
	seq := wizard.NewSequencer(store)

	assert.False(t, seq.Finish(ctx), "cannot finish before the last step")
	assert.False(t, store.Snapshot().IsComplete)

	seq.Jump(ctx, 5)
	assert.True(t, seq.Finish(ctx))
	assert.True(t, seq.Current().State.IsComplete)
}
