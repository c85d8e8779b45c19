package correlation

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

func findPattern(patterns []models.CorrelationPattern, id string) *models.CorrelationPattern {
	for i := range patterns {
		if patterns[i].ID == id {
			return &patterns[i]
		}
	}
	return nil
}

func TestAnalyzeEmptySnapshot(t *testing.T) {
	engine := NewEngine()

	analysis := engine.Analyze(nil)

	if len(analysis.Patterns) != 0 {
		t.Errorf("expected no patterns, got %d", len(analysis.Patterns))
	}
	if analysis.OverallRisk != models.RiskLow {
		t.Errorf("risk = %s, want low", analysis.OverallRisk)
	}
	if analysis.Summary != "No significant correlation patterns detected at this time. Economic indicators are showing independent trends." {
		t.Errorf("unexpected summary: %q", analysis.Summary)
	}
}

func TestYieldInversionBasic(t *testing.T) {
	engine := NewEngine()

	analysis := engine.Analyze([]models.EnrichedIndicator{
		testIndicator("FEDFUNDS", 5.5, models.TrendStable, 0),
		testIndicator("GS10", 4.5, models.TrendStable, 0),
	})

	pattern := findPattern(analysis.Patterns, "yield-inversion")
	if pattern == nil {
		t.Fatal("expected yield-inversion pattern")
	}
	if pattern.Confidence != 70 {
		t.Errorf("confidence = %d, want 70", pattern.Confidence)
	}
	if pattern.Severity != models.PatternHigh {
		t.Errorf("severity = %s, want high", pattern.Severity)
	}
	if analysis.OverallRisk != models.RiskHigh {
		t.Errorf("risk = %s, want high", analysis.OverallRisk)
	}
	if !strings.Contains(pattern.Description, "1.00%") {
		t.Errorf("description should contain the spread, got %q", pattern.Description)
	}
}

func TestYieldInversionWithRisingUnemployment(t *testing.T) {
	engine := NewEngine()

	analysis := engine.Analyze([]models.EnrichedIndicator{
		testIndicator("FEDFUNDS", 5.5, models.TrendStable, 0),
		testIndicator("GS10", 4.5, models.TrendStable, 0),
		testIndicator("UNRATE", 4.3, models.TrendUp, 2.4),
	})

	if findPattern(analysis.Patterns, "yield-inversion") != nil {
		t.Error("basic variant should not fire alongside the escalated one")
	}

	pattern := findPattern(analysis.Patterns, "yield-inversion-unemployment")
	if pattern == nil {
		t.Fatal("expected yield-inversion-unemployment pattern")
	}
	if pattern.Confidence != 85 {
		t.Errorf("confidence = %d, want 85", pattern.Confidence)
	}
	if pattern.Severity != models.PatternCritical {
		t.Errorf("severity = %s, want critical", pattern.Severity)
	}
	if analysis.OverallRisk != models.RiskCritical {
		t.Errorf("risk = %s, want critical", analysis.OverallRisk)
	}
}

func TestNoInversionWhenCurveNormal(t *testing.T) {
	engine := NewEngine()

	analysis := engine.Analyze([]models.EnrichedIndicator{
		testIndicator("FEDFUNDS", 4.5, models.TrendStable, 0),
		testIndicator("GS10", 5.0, models.TrendStable, 0),
	})

	if len(analysis.Patterns) != 0 {
		t.Errorf("expected no patterns, got %d", len(analysis.Patterns))
	}
}

func TestHousingStressMediumRisk(t *testing.T) {
	engine := NewEngine()

	analysis := engine.Analyze([]models.EnrichedIndicator{
		testIndicator("MORTGAGE30US", 7.1, models.TrendStable, 0),
		testIndicator("GDPC1", 22000, models.TrendStable, 0.2),
	})

	pattern := findPattern(analysis.Patterns, "housing-stress")
	if pattern == nil {
		t.Fatal("expected housing-stress pattern")
	}
	if pattern.Severity != models.PatternMedium {
		t.Errorf("severity = %s, want medium", pattern.Severity)
	}
	if analysis.OverallRisk != models.RiskMedium {
		t.Errorf("risk = %s, want medium", analysis.OverallRisk)
	}
}

func TestGoldilocksBoundaries(t *testing.T) {
	engine := NewEngine()

	base := func(cpiChange float64) []models.EnrichedIndicator {
		return []models.EnrichedIndicator{
			testIndicator("GDPC1", 22000, models.TrendUp, 2.0),
			testIndicator("UNRATE", 3.8, models.TrendStable, 0.1),
			testIndicator("CPIAUCSL", 310.0, models.TrendUp, cpiChange),
		}
	}

	// Inflation band is exclusive on both ends
	if findPattern(engine.Analyze(base(1.5)).Patterns, "goldilocks-economy") != nil {
		t.Error("goldilocks should not fire at exactly 1.5% inflation change")
	}
	if findPattern(engine.Analyze(base(3.0)).Patterns, "goldilocks-economy") != nil {
		t.Error("goldilocks should not fire at exactly 3% inflation change")
	}
	if findPattern(engine.Analyze(base(2.0)).Patterns, "goldilocks-economy") == nil {
		t.Error("goldilocks should fire inside the inflation band")
	}
}

func TestRateCutRallyLowRisk(t *testing.T) {
	engine := NewEngine()

	analysis := engine.Analyze([]models.EnrichedIndicator{
		testIndicator("FEDFUNDS", 4.25, models.TrendDown, -1.0),
		testIndicator("SP500", 5300, models.TrendUp, 2.0),
	})

	pattern := findPattern(analysis.Patterns, "rate-cut-rally")
	if pattern == nil {
		t.Fatal("expected rate-cut-rally pattern")
	}
	if pattern.Type != models.PatternPositive {
		t.Errorf("type = %s, want positive", pattern.Type)
	}
	if analysis.OverallRisk != models.RiskLow {
		t.Errorf("risk = %s, want low", analysis.OverallRisk)
	}
	if !strings.Contains(analysis.Summary, "Positive outlook") {
		t.Errorf("summary should mention positive outlook, got %q", analysis.Summary)
	}
}

func TestMixedSignalsRequiresAllThree(t *testing.T) {
	engine := NewEngine()

	// Without SP500 in the snapshot the rule must stay silent even though
	// the employment/production divergence is present
	analysis := engine.Analyze([]models.EnrichedIndicator{
		testIndicator("PAYEMS", 158000, models.TrendUp, 1.0),
		testIndicator("INDPRO", 102.5, models.TrendDown, -1.0),
	})
	if findPattern(analysis.Patterns, "mixed-signals") != nil {
		t.Error("mixed-signals should require SP500 to be present")
	}

	analysis = engine.Analyze([]models.EnrichedIndicator{
		testIndicator("PAYEMS", 158000, models.TrendUp, 1.0),
		testIndicator("INDPRO", 102.5, models.TrendDown, -1.0),
		testIndicator("SP500", 5300, models.TrendStable, 0.1),
	})
	if findPattern(analysis.Patterns, "mixed-signals") == nil {
		t.Error("expected mixed-signals pattern")
	}
}
