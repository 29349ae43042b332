package domain

// AnswerData is the record collected across the wizard steps.
// Sequences are never nil so they serialize as empty arrays.
type AnswerData struct {
	Audience            string   `json:"audience"`
	Problem             string   `json:"problem"`
	UniqueApproach      string   `json:"uniqueApproach"`
	TechnicalSkills     []string `json:"technicalSkills"`
	SoftSkills          []string `json:"softSkills"`
	SuccessStories      []string `json:"successStories"`
	QuantifiableResults []string `json:"quantifiableResults"`
	Testimonials        []string `json:"testimonials"`
	MonetaryImpact      string   `json:"monetaryImpact"`
	TimeSavings         string   `json:"timeSavings"`
	CostReductions      string   `json:"costReductions"`
	ValueProposition    string   `json:"valueProposition"`
}

// NewAnswerData returns a record with every field at its empty default.
func NewAnswerData() AnswerData {
	return AnswerData{
		TechnicalSkills:     []string{},
		SoftSkills:          []string{},
		SuccessStories:      []string{},
		QuantifiableResults: []string{},
		Testimonials:        []string{},
	}
}

// Clone returns a deep copy so callers cannot alias the store's slices.
func (d AnswerData) Clone() AnswerData {
	d.TechnicalSkills = cloneList(d.TechnicalSkills)
	d.SoftSkills = cloneList(d.SoftSkills)
	d.SuccessStories = cloneList(d.SuccessStories)
	d.QuantifiableResults = cloneList(d.QuantifiableResults)
	d.Testimonials = cloneList(d.Testimonials)
	return d
}

// List returns the sequence stored under a list field.
func (d AnswerData) List(f Field) ([]string, bool) {
	switch f {
	case FieldTechnicalSkills:
		return d.TechnicalSkills, true
	case FieldSoftSkills:
		return d.SoftSkills, true
	case FieldSuccessStories:
		return d.SuccessStories, true
	case FieldQuantifiableResults:
		return d.QuantifiableResults, true
	case FieldTestimonials:
		return d.Testimonials, true
	}
	return nil, false
}

// Text returns the value of a free-text field.
func (d AnswerData) Text(f Field) (string, bool) {
	switch f {
	case FieldAudience:
		return d.Audience, true
	case FieldProblem:
		return d.Problem, true
	case FieldUniqueApproach:
		return d.UniqueApproach, true
	case FieldMonetaryImpact:
		return d.MonetaryImpact, true
	case FieldTimeSavings:
		return d.TimeSavings, true
	case FieldCostReductions:
		return d.CostReductions, true
	case FieldValueProposition:
		return d.ValueProposition, true
	}
	return "", false
}

// Patch is a partial AnswerData. Nil fields are absent and leave the target untouched.
// Decoding a partial JSON object into a Patch yields shallow-merge semantics.
type Patch struct {
	Audience            *string   `json:"audience,omitempty"`
	Problem             *string   `json:"problem,omitempty"`
	UniqueApproach      *string   `json:"uniqueApproach,omitempty"`
	TechnicalSkills     *[]string `json:"technicalSkills,omitempty"`
	SoftSkills          *[]string `json:"softSkills,omitempty"`
	SuccessStories      *[]string `json:"successStories,omitempty"`
	QuantifiableResults *[]string `json:"quantifiableResults,omitempty"`
	Testimonials        *[]string `json:"testimonials,omitempty"`
	MonetaryImpact      *string   `json:"monetaryImpact,omitempty"`
	TimeSavings         *string   `json:"timeSavings,omitempty"`
	CostReductions      *string   `json:"costReductions,omitempty"`
	ValueProposition    *string   `json:"valueProposition,omitempty"`
}

// PatchFrom builds a patch that sets every field of d.
func PatchFrom(d AnswerData) Patch {
	d = d.Clone()
	return Patch{
		Audience:            &d.Audience,
		Problem:             &d.Problem,
		UniqueApproach:      &d.UniqueApproach,
		TechnicalSkills:     &d.TechnicalSkills,
		SoftSkills:          &d.SoftSkills,
		SuccessStories:      &d.SuccessStories,
		QuantifiableResults: &d.QuantifiableResults,
		Testimonials:        &d.Testimonials,
		MonetaryImpact:      &d.MonetaryImpact,
		TimeSavings:         &d.TimeSavings,
		CostReductions:      &d.CostReductions,
		ValueProposition:    &d.ValueProposition,
	}
}

// SetText returns a patch assigning value to a free-text field.
func SetText(f Field, value string) (Patch, error) {
	var p Patch
	switch f {
	case FieldAudience:
		p.Audience = &value
	case FieldProblem:
		p.Problem = &value
	case FieldUniqueApproach:
		p.UniqueApproach = &value
	case FieldMonetaryImpact:
		p.MonetaryImpact = &value
	case FieldTimeSavings:
		p.TimeSavings = &value
	case FieldCostReductions:
		p.CostReductions = &value
	case FieldValueProposition:
		p.ValueProposition = &value
	default:
		return p, ErrUnknownField
	}
	return p, nil
}

// SetList returns a patch assigning items to a list field.
func SetList(f Field, items []string) (Patch, error) {
	items = cloneList(items)
	var p Patch
	switch f {
	case FieldTechnicalSkills:
		p.TechnicalSkills = &items
	case FieldSoftSkills:
		p.SoftSkills = &items
	case FieldSuccessStories:
		p.SuccessStories = &items
	case FieldQuantifiableResults:
		p.QuantifiableResults = &items
	case FieldTestimonials:
		p.Testimonials = &items
	default:
		return p, ErrUnknownField
	}
	return p, nil
}

// Apply shallow-merges p into d and returns the result. d is not modified.
func (p Patch) Apply(d AnswerData) AnswerData {
	out := d.Clone()
	mergeText(&out.Audience, p.Audience)
	mergeText(&out.Problem, p.Problem)
	mergeText(&out.UniqueApproach, p.UniqueApproach)
	mergeList(&out.TechnicalSkills, p.TechnicalSkills)
	mergeList(&out.SoftSkills, p.SoftSkills)
	mergeList(&out.SuccessStories, p.SuccessStories)
	mergeList(&out.QuantifiableResults, p.QuantifiableResults)
	mergeList(&out.Testimonials, p.Testimonials)
	mergeText(&out.MonetaryImpact, p.MonetaryImpact)
	mergeText(&out.TimeSavings, p.TimeSavings)
	mergeText(&out.CostReductions, p.CostReductions)
	mergeText(&out.ValueProposition, p.ValueProposition)
	return out
}

// Empty reports whether the patch carries no field.
func (p Patch) Empty() bool {
	return p == Patch{}
}

func mergeText(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func mergeList(dst *[]string, src *[]string) {
	if src != nil {
		*dst = cloneList(*src)
	}
}

func cloneList(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	return out
}
