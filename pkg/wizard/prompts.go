package wizard

import "github.com/aretw0/valueprop/pkg/domain"

// Prompt is the label and example hint shown when asking for a field.
type Prompt struct {
	Label string `json:"label"`
	Hint  string `json:"hint"`
}

var prompts = map[domain.Field]Prompt{
	domain.FieldAudience: {
		Label: "Target Audience",
		Hint:  "e.g., Fortune 500 executives, startup founders, marketing teams...",
	},
	domain.FieldProblem: {
		Label: "Core Problem You Solve",
		Hint:  "Describe the specific problem or pain point you address...",
	},
	domain.FieldUniqueApproach: {
		Label: "Your Unique Differentiator",
		Hint:  "Explain what makes your methodology, experience, or approach unique...",
	},
	domain.FieldTechnicalSkills: {
		Label: "Technical Skills",
		Hint:  "e.g., Data Analysis, Project Management, Software Development...",
	},
	domain.FieldSoftSkills: {
		Label: "Soft Skills",
		Hint:  "e.g., Leadership, Communication, Problem Solving...",
	},
	domain.FieldSuccessStories: {
		Label: "Success Stories",
		Hint:  "Describe a specific success story with measurable outcomes...",
	},
	domain.FieldQuantifiableResults: {
		Label: "Quantifiable Results",
		Hint:  "e.g., 25% increase in efficiency, $50K cost savings, 40% faster delivery...",
	},
	domain.FieldTestimonials: {
		Label: "Testimonials and Case Studies",
		Hint:  "Include a testimonial or brief case study that validates your impact...",
	},
	domain.FieldMonetaryImpact: {
		Label: "Financial Benefits",
		Hint:  "e.g., Generated $500K in additional revenue, reduced costs by $200K annually...",
	},
	domain.FieldTimeSavings: {
		Label: "Time Efficiency Gains",
		Hint:  "e.g., Reduced project completion time by 30%, saved 10 hours/week through automation...",
	},
	domain.FieldCostReductions: {
		Label: "Cost Optimization",
		Hint:  "e.g., Eliminated redundant processes saving $100K, optimized vendor contracts...",
	},
	domain.FieldValueProposition: {
		Label: "Final Value Proposition",
		Hint:  "Your value proposition will be generated here...",
	},
}

// FieldPrompt returns the prompt for f. Unknown fields get their raw name as label.
func FieldPrompt(f domain.Field) Prompt {
	if p, ok := prompts[f]; ok {
		return p
	}
	return Prompt{Label: string(f)}
}
