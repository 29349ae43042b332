package wizard

import (
	"math"

	"github.com/aretw0/valueprop/pkg/domain"
)

// Step describes one page of the wizard.
type Step struct {
	Number      int            `json:"number"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Fields      []domain.Field `json:"fields"`
	ReadOnly    []domain.Field `json:"readOnly,omitempty"`
}

var steps = []Step{
	{
		Number:      1,
		Title:       "Define Your Context",
		Description: "Identify your audience and unique approach",
		Fields:      []domain.Field{domain.FieldAudience, domain.FieldProblem, domain.FieldUniqueApproach},
	},
	{
		Number:      2,
		Title:       "Your Assets",
		Description: "List your skills and success stories",
		Fields:      []domain.Field{domain.FieldTechnicalSkills, domain.FieldSoftSkills, domain.FieldSuccessStories},
	},
	{
		Number:      3,
		Title:       "Generate Numbers",
		Description: "Quantify your impact and results",
		Fields:      []domain.Field{domain.FieldQuantifiableResults, domain.FieldTestimonials},
	},
	{
		Number:      4,
		Title:       "Calculate Value",
		Description: "Determine your financial impact",
		Fields:      []domain.Field{domain.FieldMonetaryImpact, domain.FieldTimeSavings, domain.FieldCostReductions},
	},
	{
		Number:      5,
		Title:       "Craft Proposition",
		Description: "Create your final value proposition",
		Fields:      []domain.Field{domain.FieldValueProposition},
		ReadOnly: []domain.Field{
			domain.FieldAudience, domain.FieldProblem, domain.FieldUniqueApproach,
			domain.FieldTechnicalSkills, domain.FieldSoftSkills, domain.FieldSuccessStories,
			domain.FieldQuantifiableResults, domain.FieldTestimonials,
			domain.FieldMonetaryImpact, domain.FieldTimeSavings, domain.FieldCostReductions,
		},
	},
}

// Steps returns the five descriptors in order.
func Steps() []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

// Descriptor returns the descriptor for step n.
// Numbers outside the valid range fall back to the first step.
func Descriptor(n int) Step {
	if n < domain.FirstStep || n > domain.LastStep {
		return steps[0]
	}
	return steps[n-1]
}

// Progress returns the completion percentage shown for step n.
func Progress(n int) int {
	return int(math.Round(float64(n) / float64(len(steps)) * 100))
}
