package compose

import (
	"fmt"

	"github.com/aretw0/valueprop/pkg/domain"
)

const (
	fallbackProblemClause = "achieve their goals"
	fallbackImpactClause  = "delivering exceptional results"
)

// Proposition composes the one-sentence value proposition.
// It reports false, producing nothing, unless audience, problem and unique approach are all set;
// callers then keep whatever proposition they already had.
func Proposition(data domain.AnswerData) (string, bool) {
	if data.Audience == "" || data.Problem == "" || data.UniqueApproach == "" {
		return "", false
	}

	problemClause := fallbackProblemClause
	if data.Problem != "" {
		problemClause = "solve " + data.Problem
	}

	impactClause := fallbackImpactClause
	if len(data.QuantifiableResults) > 0 {
		impactClause = data.QuantifiableResults[0]
	}

	return fmt.Sprintf("I help %s %s through %s, setting myself apart through my proven track record of %s.",
		data.Audience, problemClause, data.UniqueApproach, impactClause), true
}
