package recommend

import (
	"strings"
	"testing"

	"github.com/apetrov/econ-tracker/pkg/models"
)

func testIndicator(name string, latest float64, trend models.Trend, changePercent float64) models.EnrichedIndicator {
	return models.EnrichedIndicator{
		DashboardSummary: models.DashboardSummary{
			Name:          name,
			LatestValue:   models.DecimalPtr(latest),
			ChangePercent: models.DecimalPtr(changePercent),
		},
		Trend: trend,
	}
}

func analysisWithRisk(risk models.RiskLevel) models.CorrelationAnalysis {
	return models.CorrelationAnalysis{OverallRisk: risk}
}

func findRecommendation(recs []models.ActionRecommendation, id string) *models.ActionRecommendation {
	for i := range recs {
		if recs[i].ID == id {
			return &recs[i]
		}
	}
	return nil
}

func TestGeneratePlanPersonaFiltering(t *testing.T) {
	engine := NewEngine()

	indicators := []models.EnrichedIndicator{
		testIndicator("SP500", 4600, models.TrendDown, -12.0),
	}

	// Buying opportunity targets investors only
	plan := engine.GeneratePlan(indicators, analysisWithRisk(models.RiskLow), models.ProfileGeneral)
	if findRecommendation(plan.Recommendations, "buying-opportunity") != nil {
		t.Error("buying-opportunity should not apply to the general profile")
	}

	plan = engine.GeneratePlan(indicators, analysisWithRisk(models.RiskLow), models.ProfileAggressiveInvestor)
	if findRecommendation(plan.Recommendations, "buying-opportunity") == nil {
		t.Error("buying-opportunity should apply to aggressive investors")
	}
}

func TestBuyingOpportunitySuppressedAtCriticalRisk(t *testing.T) {
	engine := NewEngine()

	indicators := []models.EnrichedIndicator{
		testIndicator("SP500", 4600, models.TrendDown, -12.0),
	}

	plan := engine.GeneratePlan(indicators, analysisWithRisk(models.RiskCritical), models.ProfileAggressiveInvestor)
	if findRecommendation(plan.Recommendations, "buying-opportunity") != nil {
		t.Error("buying-opportunity should not fire when overall risk is critical")
	}
}

func TestEmergencyFundVariants(t *testing.T) {
	engine := NewEngine()

	// Elevated recession probability selects the boost variant
	indicators := []models.EnrichedIndicator{
		testIndicator("RECPROUSM156N", 0.45, models.TrendUp, 10.0),
	}
	plan := engine.GeneratePlan(indicators, analysisWithRisk(models.RiskLow), models.ProfileGeneral)

	boost := findRecommendation(plan.Recommendations, "emergency-fund-boost")
	if boost == nil {
		t.Fatal("expected emergency-fund-boost")
	}
	if boost.Priority != models.PriorityHigh {
		t.Errorf("boost priority = %s, want high", boost.Priority)
	}
	if !strings.Contains(boost.Reasoning, "45%") {
		t.Errorf("reasoning should state the probability, got %q", boost.Reasoning)
	}
	if findRecommendation(plan.Recommendations, "emergency-fund-maintain") != nil {
		t.Error("the two emergency fund variants are mutually exclusive")
	}

	// Moderate probability selects the maintain variant
	indicators = []models.EnrichedIndicator{
		testIndicator("RECPROUSM156N", 0.25, models.TrendStable, 0.1),
	}
	plan = engine.GeneratePlan(indicators, analysisWithRisk(models.RiskLow), models.ProfileGeneral)

	maintain := findRecommendation(plan.Recommendations, "emergency-fund-maintain")
	if maintain == nil {
		t.Fatal("expected emergency-fund-maintain")
	}
	if maintain.Priority != models.PriorityMedium {
		t.Errorf("maintain priority = %s, want medium", maintain.Priority)
	}
}

func TestCriticalRiskEscalatesPriorities(t *testing.T) {
	engine := NewEngine()

	indicators := []models.EnrichedIndicator{
		testIndicator("RECPROUSM156N", 0.45, models.TrendUp, 10.0),
	}

	plan := engine.GeneratePlan(indicators, analysisWithRisk(models.RiskCritical), models.ProfileBusinessOwner)

	cashFlow := findRecommendation(plan.Recommendations, "business-cash-flow")
	if cashFlow == nil {
		t.Fatal("expected business-cash-flow for business owners")
	}
	if cashFlow.Priority != models.PriorityCritical {
		t.Errorf("cash flow priority = %s, want critical", cashFlow.Priority)
	}

	boost := findRecommendation(plan.Recommendations, "emergency-fund-boost")
	if boost == nil {
		t.Fatal("expected emergency-fund-boost via the general tag")
	}
	if boost.Priority != models.PriorityCritical {
		t.Errorf("boost priority = %s, want critical", boost.Priority)
	}

	if !strings.HasPrefix(plan.Summary, "🚨") {
		t.Errorf("summary should lead with the critical marker, got %q", plan.Summary)
	}
}

func TestRecommendationsSortedByPriority(t *testing.T) {
	engine := NewEngine()

	// employment-security fires high, emergency-fund-maintain fires medium;
	// the catalog lists emergency-fund first, so sorting must reorder them
	indicators := []models.EnrichedIndicator{
		testIndicator("RECPROUSM156N", 0.25, models.TrendStable, 0.1),
		testIndicator("UNRATE", 4.5, models.TrendUp, 2.3),
	}

	plan := engine.GeneratePlan(indicators, analysisWithRisk(models.RiskLow), models.ProfileGeneral)
	if len(plan.Recommendations) < 2 {
		t.Fatalf("expected at least 2 recommendations, got %d", len(plan.Recommendations))
	}
	if plan.Recommendations[0].ID != "employment-security" {
		t.Errorf("first recommendation = %s, want employment-security", plan.Recommendations[0].ID)
	}
	if plan.Recommendations[1].ID != "emergency-fund-maintain" {
		t.Errorf("second recommendation = %s, want emergency-fund-maintain", plan.Recommendations[1].ID)
	}
}

func TestEmptyPlan(t *testing.T) {
	engine := NewEngine()

	plan := engine.GeneratePlan(nil, analysisWithRisk(models.RiskLow), models.ProfileGeneral)

	if len(plan.Recommendations) != 0 {
		t.Errorf("expected no recommendations, got %d", len(plan.Recommendations))
	}
	if plan.Summary != "✓ No urgent actions required. Continue monitoring economic conditions." {
		t.Errorf("unexpected summary: %q", plan.Summary)
	}
}

func TestEconomicOutlook(t *testing.T) {
	engine := NewEngine()

	// Recession probability is consumed as a 0-1 fraction and rendered as percent
	indicators := []models.EnrichedIndicator{
		testIndicator("RECPROUSM156N", 0.15, models.TrendStable, 0.1),
	}

	plan := engine.GeneratePlan(indicators, analysisWithRisk(models.RiskLow), models.ProfileGeneral)
	if !strings.Contains(plan.EconomicOutlook, "15% recession probability") {
		t.Errorf("outlook should render the probability, got %q", plan.EconomicOutlook)
	}

	plan = engine.GeneratePlan(indicators, analysisWithRisk(models.RiskMedium), models.ProfileGeneral)
	if !strings.Contains(plan.EconomicOutlook, "mixed with moderate uncertainty") {
		t.Errorf("medium risk outlook mismatch: %q", plan.EconomicOutlook)
	}
}

func TestJobOpportunityRequiresLowUnemployment(t *testing.T) {
	engine := NewEngine()

	indicators := []models.EnrichedIndicator{
		testIndicator("PAYEMS", 158000, models.TrendUp, 1.0),
		testIndicator("UNRATE", 4.0, models.TrendStable, 0.1),
	}
	plan := engine.GeneratePlan(indicators, analysisWithRisk(models.RiskLow), models.ProfileJobSeeker)
	if findRecommendation(plan.Recommendations, "job-opportunity") != nil {
		t.Error("job-opportunity should require unemployment strictly below 4%")
	}

	indicators[1] = testIndicator("UNRATE", 3.6, models.TrendStable, 0.1)
	plan = engine.GeneratePlan(indicators, analysisWithRisk(models.RiskLow), models.ProfileJobSeeker)
	if findRecommendation(plan.Recommendations, "job-opportunity") == nil {
		t.Error("expected job-opportunity at 3.6% unemployment")
	}
}
