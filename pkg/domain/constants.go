package domain

// Field names the JSON keys of AnswerData.
// They double as identifiers for step descriptors and list operations.
type Field string

const (
	FieldAudience            Field = "audience"
	FieldProblem             Field = "problem"
	FieldUniqueApproach      Field = "uniqueApproach"
	FieldTechnicalSkills     Field = "technicalSkills"
	FieldSoftSkills          Field = "softSkills"
	FieldSuccessStories      Field = "successStories"
	FieldQuantifiableResults Field = "quantifiableResults"
	FieldTestimonials        Field = "testimonials"
	FieldMonetaryImpact      Field = "monetaryImpact"
	FieldTimeSavings         Field = "timeSavings"
	FieldCostReductions      Field = "costReductions"
	FieldValueProposition    Field = "valueProposition"
)

const (
	// FirstStep and LastStep bound SessionState.CurrentStep.
	FirstStep = 1
	LastStep  = 5
)

// Fields lists every AnswerData field in declaration order.
var Fields = []Field{
	FieldAudience,
	FieldProblem,
	FieldUniqueApproach,
	FieldTechnicalSkills,
	FieldSoftSkills,
	FieldSuccessStories,
	FieldQuantifiableResults,
	FieldTestimonials,
	FieldMonetaryImpact,
	FieldTimeSavings,
	FieldCostReductions,
	FieldValueProposition,
}

// PropositionInputs are the fields the composed sentence is derived from.
var PropositionInputs = []Field{
	FieldAudience,
	FieldProblem,
	FieldUniqueApproach,
	FieldQuantifiableResults,
}

// IsList reports whether the field holds an ordered sequence of entries.
func (f Field) IsList() bool {
	switch f {
	case FieldTechnicalSkills, FieldSoftSkills, FieldSuccessStories,
		FieldQuantifiableResults, FieldTestimonials:
		return true
	}
	return false
}

// Valid reports whether f names an AnswerData field.
func (f Field) Valid() bool {
	for _, known := range Fields {
		if f == known {
			return true
		}
	}
	return false
}
