// Package recommend turns the enriched snapshot plus correlation output into
// a persona-filtered action plan. Like the correlation engine it is a fixed
// ordered rule catalog: rules are independent, several can fire at once, and
// a rule whose inputs are missing is skipped without error.
package recommend

import (
	"fmt"
	"sort"

	"github.com/apetrov/econ-tracker/pkg/models"
)

// ruleContext is the shared input for every recommendation rule
type ruleContext struct {
	indicators    map[string]*models.EnrichedIndicator
	overallRisk   models.RiskLevel
	recessionProb float64
}

func (c *ruleContext) get(name string) *models.EnrichedIndicator {
	return c.indicators[name]
}

// rule yields zero or one recommendation for the given context
type rule struct {
	id   string
	eval func(ctx *ruleContext) *models.ActionRecommendation
}

// Engine evaluates the fixed recommendation catalog
type Engine struct {
	rules []rule
}

// NewEngine creates new recommendation engine
func NewEngine() *Engine {
	return &Engine{rules: ruleCatalog}
}

// GeneratePlan evaluates every rule, keeps recommendations applicable to the
// requested persona (or tagged general), and sorts them by priority with
// catalog order breaking ties.
func (e *Engine) GeneratePlan(
	indicators []models.EnrichedIndicator,
	correlations models.CorrelationAnalysis,
	profile models.UserProfile,
) models.ActionPlan {
	byName := make(map[string]*models.EnrichedIndicator, len(indicators))
	for i := range indicators {
		ind := &indicators[i]
		byName[ind.Name] = ind
	}

	ctx := &ruleContext{
		indicators:  byName,
		overallRisk: correlations.OverallRisk,
	}
	if recession := ctx.get("RECPROUSM156N"); recession != nil {
		ctx.recessionProb = recession.LatestValueOr(0)
	}

	var recommendations []models.ActionRecommendation
	for _, r := range e.rules {
		if rec := r.eval(ctx); rec != nil {
			recommendations = append(recommendations, *rec)
		}
	}

	filtered := make([]models.ActionRecommendation, 0, len(recommendations))
	for _, rec := range recommendations {
		if rec.AppliesTo(profile) {
			filtered = append(filtered, rec)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return models.PriorityRank(filtered[i].Priority) < models.PriorityRank(filtered[j].Priority)
	})

	return models.ActionPlan{
		Profile:         profile,
		Recommendations: filtered,
		Summary:         generateSummary(filtered),
		EconomicOutlook: generateOutlook(correlations.OverallRisk, ctx.recessionProb),
	}
}

func generateSummary(recommendations []models.ActionRecommendation) string {
	var criticalCount, highCount int
	for _, rec := range recommendations {
		switch rec.Priority {
		case models.PriorityCritical:
			criticalCount++
		case models.PriorityHigh:
			highCount++
		}
	}

	switch {
	case criticalCount > 0:
		return fmt.Sprintf("🚨 %d critical action%s recommended. Immediate attention required to protect your financial position.",
			criticalCount, plural(criticalCount))
	case highCount > 0:
		return fmt.Sprintf("⚠️ %d high-priority action%s suggested based on current economic conditions.",
			highCount, plural(highCount))
	case len(recommendations) > 0:
		return fmt.Sprintf("✓ %d recommendation%s to optimize your financial position.",
			len(recommendations), plural(len(recommendations)))
	default:
		return "✓ No urgent actions required. Continue monitoring economic conditions."
	}
}

func generateOutlook(risk models.RiskLevel, recessionProb float64) string {
	probPercent := recessionProb * 100

	switch risk {
	case models.RiskCritical:
		return fmt.Sprintf("Economic outlook is concerning with %.0f%% recession probability. Multiple warning signals detected. Focus on capital preservation and risk management.", probPercent)
	case models.RiskHigh:
		return fmt.Sprintf("Economic conditions show elevated risk (%.0f%% recession probability). Exercise caution with major financial decisions and maintain strong cash positions.", probPercent)
	case models.RiskMedium:
		return "Economic outlook is mixed with moderate uncertainty. Stay informed and maintain a balanced, diversified approach to finances."
	default:
		return fmt.Sprintf("Economic conditions appear relatively stable with %.0f%% recession probability. Good time for planned financial moves with appropriate risk management.", probPercent)
	}
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
