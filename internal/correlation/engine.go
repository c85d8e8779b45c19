// Package correlation detects pre-authored multi-indicator patterns (yield
// curve inversion, goldilocks conditions, housing stress and so on) over the
// current enriched snapshot. Confidence and severity are fixed per rule, not
// derived from the data.
package correlation

import (
	"fmt"

	"github.com/apetrov/econ-tracker/pkg/models"
)

// indicatorSet indexes the enriched snapshot by series code
type indicatorSet map[string]*models.EnrichedIndicator

func (s indicatorSet) get(name string) *models.EnrichedIndicator {
	return s[name]
}

// rule pairs a stable id with a predicate that yields zero or one pattern.
// A rule whose named indicators are absent returns nil (silent skip).
type rule struct {
	id   string
	eval func(set indicatorSet) *models.CorrelationPattern
}

// Engine evaluates the fixed pattern catalog against a snapshot
type Engine struct {
	rules []rule
}

// NewEngine creates new correlation engine
func NewEngine() *Engine {
	return &Engine{rules: ruleCatalog}
}

// Analyze runs every rule in catalog order and derives the overall risk.
// Pattern order in the result follows the catalog, not confidence.
func (e *Engine) Analyze(indicators []models.EnrichedIndicator) models.CorrelationAnalysis {
	set := make(indicatorSet, len(indicators))
	for i := range indicators {
		ind := &indicators[i]
		set[ind.Name] = ind
	}

	patterns := make([]models.CorrelationPattern, 0, len(e.rules))
	for _, r := range e.rules {
		if p := r.eval(set); p != nil {
			patterns = append(patterns, *p)
		}
	}

	risk := deriveRisk(patterns)

	return models.CorrelationAnalysis{
		Patterns:    patterns,
		Summary:     generateSummary(patterns, risk),
		OverallRisk: risk,
	}
}

func deriveRisk(patterns []models.CorrelationPattern) models.RiskLevel {
	var criticalCount, highCount, negativeCount int
	for _, p := range patterns {
		if p.Severity == models.PatternCritical {
			criticalCount++
		}
		if p.Severity == models.PatternHigh {
			highCount++
		}
		if p.Type == models.PatternNegative {
			negativeCount++
		}
	}

	switch {
	case criticalCount > 0 || (highCount > 1 && negativeCount > 2):
		return models.RiskCritical
	case highCount > 0 || negativeCount > 1:
		return models.RiskHigh
	case len(patterns) > 0 && negativeCount > 0:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

func generateSummary(patterns []models.CorrelationPattern, risk models.RiskLevel) string {
	if len(patterns) == 0 {
		return "No significant correlation patterns detected at this time. Economic indicators are showing independent trends."
	}

	var positiveCount, negativeCount int
	for _, p := range patterns {
		switch p.Type {
		case models.PatternPositive:
			positiveCount++
		case models.PatternNegative:
			negativeCount++
		}
	}

	summary := fmt.Sprintf("Detected %d significant correlation pattern%s. ", len(patterns), plural(len(patterns)))

	switch {
	case negativeCount > positiveCount:
		summary += fmt.Sprintf("Caution advised: %d concerning signal%s detected. ", negativeCount, plural(negativeCount))
	case positiveCount > negativeCount:
		summary += fmt.Sprintf("Positive outlook: %d favorable signal%s identified. ", positiveCount, plural(positiveCount))
	default:
		summary += "Mixed signals present - "
	}

	switch risk {
	case models.RiskCritical:
		summary += "Overall economic risk level is CRITICAL. Close monitoring and defensive positioning recommended."
	case models.RiskHigh:
		summary += "Overall economic risk level is HIGH. Exercise caution and review your financial positions."
	case models.RiskMedium:
		summary += "Overall economic risk level is MODERATE. Stay informed and maintain balanced approach."
	default:
		summary += "Overall economic risk level is LOW. Conditions appear relatively stable."
	}

	return summary
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
