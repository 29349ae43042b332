package graph

import (
	"strings"
	"testing"

	"github.com/aretw0/valueprop/pkg/domain"
	"github.com/aretw0/valueprop/pkg/wizard"
	"github.com/stretchr/testify/assert"
)

func TestGenerateMermaid(t *testing.T) {
	out := GenerateMermaid(wizard.Steps(), nil)

	assert.True(t, strings.HasPrefix(out, "graph LR\n"))
	assert.Contains(t, out, `step1["1. Define Your Context"]`)
	assert.Contains(t, out, "step1 -- next --> step2")
	assert.Contains(t, out, "step2 -. back .-> step1")
	assert.Contains(t, out, `step5 -- complete --> done(("Done"))`)
	assert.NotContains(t, out, "classDef")
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	st := domain.NewState()
	st.CurrentStep = 3

	out := GenerateMermaid(wizard.Steps(), FromState(st))
	assert.Contains(t, out, "class step1 visited;")
	assert.Contains(t, out, "class step2 visited;")
	assert.Contains(t, out, "class step3 current;")
	assert.NotContains(t, out, "class step4")

	st.CurrentStep = 5
	st.IsComplete = true
	out = GenerateMermaid(wizard.Steps(), FromState(st))
	assert.Contains(t, out, "class step5 visited;")
	assert.Contains(t, out, "class done current;")
}

func TestGenerateMermaid_Empty(t *testing.T) {
	assert.Equal(t, "graph LR\n", GenerateMermaid(nil, nil))
}
