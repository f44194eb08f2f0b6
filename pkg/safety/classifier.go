// Package safety classifies messages against tiered sensitive-vocabulary
// lists and derives the user's age tier.
package safety

import "strings"

// Severity is the escalation level attached to a verdict.
type Severity string

const (
	SeveritySafe        Severity = "SAFE"
	SeverityMedium      Severity = "MEDIUM"
	SeverityHigh        Severity = "HIGH"
	SeveritySupervision Severity = "SUPERVISION"
)

// Verdict is the outcome of classifying one message. A message can be allowed
// yet carry a non-SAFE severity (teen medium-risk proceeds but is flagged);
// callers log the severity either way.
type Verdict struct {
	Allowed  bool
	Severity Severity
	Refusal  string
}

// Keyword lists carried over from the product's curated French vocabulary.
// Matching is ordered substring matching; the lists are a behavioral
// contract, not a linguistically complete taxonomy.
var (
	highRiskTerms = []string{
		"sexe", "viol", "suicide", "pornographie", "meurtre", "terrorisme",
	}
	mediumRiskTerms = []string{
		"drogue", "alcool", "violence", "accident",
	}
	supervisionTopics = []string{
		"politique", "économie", "guerre", "religion",
	}
)

// Tier-specific refusal messages.
const (
	refusalHighChild   = "⛔ Cette question n'est pas adaptée aux enfants. Tu peux demander à un adulte de t'aider."
	refusalHighTeen    = "⚠️ Ce sujet est très sensible. Il est préférable d'en parler avec un adulte de confiance."
	refusalMediumChild = "⚠️ Ce sujet est compliqué pour ton âge. Demande plutôt à un adulte !"
	refusalSupervision = "🤔 C'est un sujet d'adulte. Demande plutôt à tes parents ou ton professeur !"
)

// Classifier scores messages against the tiered keyword lists.
type Classifier struct {
	highRisk    []string
	mediumRisk  []string
	supervision []string
}

// NewClassifier returns a classifier over the built-in vocabulary.
func NewClassifier() *Classifier {
	return &Classifier{
		highRisk:    highRiskTerms,
		mediumRisk:  mediumRiskTerms,
		supervision: supervisionTopics,
	}
}

// Classify runs the checks in fixed priority order, first applicable match
// wins: HIGH over MEDIUM over SUPERVISION. Adults are unrestricted. No side
// effects; logging is the caller's job.
func (c *Classifier) Classify(text string, tier Tier) Verdict {
	lower := strings.ToLower(text)

	for _, term := range c.highRisk {
		if !strings.Contains(lower, term) {
			continue
		}
		switch tier {
		case TierChild:
			return Verdict{Allowed: false, Severity: SeverityHigh, Refusal: refusalHighChild}
		case TierTeen:
			return Verdict{Allowed: false, Severity: SeverityHigh, Refusal: refusalHighTeen}
		}
		// Adults are not restricted by the high-risk list.
	}

	for _, term := range c.mediumRisk {
		if !strings.Contains(lower, term) {
			continue
		}
		switch tier {
		case TierChild:
			return Verdict{Allowed: false, Severity: SeverityMedium, Refusal: refusalMediumChild}
		case TierTeen:
			// Proceeds, but flagged so the interaction log keeps the severity.
			return Verdict{Allowed: true, Severity: SeverityMedium}
		}
	}

	for _, topic := range c.supervision {
		if strings.Contains(lower, topic) && tier == TierChild {
			return Verdict{Allowed: false, Severity: SeveritySupervision, Refusal: refusalSupervision}
		}
	}

	return Verdict{Allowed: true, Severity: SeveritySafe}
}
