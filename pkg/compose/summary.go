package compose

import (
	"fmt"
	"strings"

	"github.com/aretw0/valueprop/pkg/domain"
)

// SummaryFilename is the name offered for the exported summary.
const SummaryFilename = "value-proposition-summary.txt"

const bullet = "•"

// Summary renders the plain-text summary document.
// Sections appear in a fixed order, each under its literal header.
func Summary(data domain.AnswerData) string {
	var b strings.Builder
	b.WriteString("VALUE PROPOSITION SUMMARY\n")
	b.WriteString("========================\n")

	section(&b, "Value Proposition", data.ValueProposition)
	section(&b, "Technical Skills", bullets(data.TechnicalSkills))
	section(&b, "Soft Skills", bullets(data.SoftSkills))
	section(&b, "Quantifiable Results", bullets(data.QuantifiableResults))
	section(&b, "Success Stories", numbered(data.SuccessStories, false))
	section(&b, "Financial Impact", data.MonetaryImpact)
	section(&b, "Time Savings", data.TimeSavings)
	section(&b, "Cost Reductions", data.CostReductions)
	section(&b, "Testimonials", numbered(data.Testimonials, true))

	return b.String()
}

func section(b *strings.Builder, header, body string) {
	fmt.Fprintf(b, "\n%s:\n%s\n", header, body)
}

func bullets(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = bullet + " " + item
	}
	return strings.Join(lines, "\n")
}

// numbered lists items as "1. item", separated by blank lines.
func numbered(items []string, quoted bool) string {
	entries := make([]string, len(items))
	for i, item := range items {
		if quoted {
			item = `"` + item + `"`
		}
		entries[i] = fmt.Sprintf("%d. %s", i+1, item)
	}
	return strings.Join(entries, "\n\n")
}
