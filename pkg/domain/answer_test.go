package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatch_ApplyMerges(t *testing.T) {
	data := NewAnswerData()

	p1, err := SetText(FieldAudience, "executives")
	require.NoError(t, err)
	p2, err := SetText(FieldProblem, "wasted time")
	require.NoError(t, err)

	data = p2.Apply(p1.Apply(data))

	assert.Equal(t, "executives", data.Audience)
	assert.Equal(t, "wasted time", data.Problem)
	assert.Equal(t, []string{}, data.Testimonials)
}

func TestPatch_ApplyDoesNotAlias(t *testing.T) {
	items := []string{"a", "b"}
	p, err := SetList(FieldSoftSkills, items)
	require.NoError(t, err)

	data := p.Apply(NewAnswerData())
	items[0] = "changed"
	data.SoftSkills[1] = "mutated"

	assert.Equal(t, []string{"a", "b"}, *p.SoftSkills)
}

func TestPatch_DecodePartialJSON(t *testing.T) {
	var p Patch
	require.NoError(t, json.Unmarshal([]byte(`{"audience":"founders","softSkills":["Listening"]}`), &p))

	data := NewAnswerData()
	data.Problem = "kept"
	data = p.Apply(data)

	assert.Equal(t, "founders", data.Audience)
	assert.Equal(t, "kept", data.Problem)
	assert.Equal(t, []string{"Listening"}, data.SoftSkills)
}

func TestPatchFrom_RoundTrip(t *testing.T) {
	src := NewAnswerData()
	src.Audience = "teams"
	src.Testimonials = []string{"great", "great"}

	got := PatchFrom(src).Apply(NewAnswerData())
	assert.Equal(t, src, got)
}

func TestSetText_RejectsListField(t *testing.T) {
	_, err := SetText(FieldTestimonials, "x")
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = SetList(FieldAudience, nil)
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestClampStep(t *testing.T) {
	for n, want := range map[int]int{-3: 1, 0: 1, 1: 1, 3: 3, 5: 5, 6: 5, 99: 5} {
		assert.Equal(t, want, ClampStep(n), "n=%d", n)
	}
}

func TestAnswerData_SerializesEmptyLists(t *testing.T) {
	raw, err := json.Marshal(NewAnswerData())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"technicalSkills":[]`)
	assert.NotContains(t, string(raw), "null")
}
