package interpret

import (
	"strings"
	"testing"

	"github.com/apetrov/econ-tracker/pkg/models"
)

func testEnriched(name string, cat models.Category, sentiment models.Sentiment, severity models.Severity, trend models.Trend) models.EnrichedIndicator {
	return models.EnrichedIndicator{
		DashboardSummary: models.DashboardSummary{
			Name:        name,
			Description: name + " description",
		},
		Trend:           trend,
		Sentiment:       sentiment,
		Severity:        severity,
		Category:        cat,
		FormattedChange: "+6.00%",
	}
}

func TestHealthLabel(t *testing.T) {
	tests := []struct {
		score    int
		expected string
	}{
		{100, "Excellent"},
		{80, "Excellent"},
		{79, "Good"},
		{65, "Good"},
		{64, "Fair"},
		{50, "Fair"},
		{49, "Weak"},
		{35, "Weak"},
		{34, "Poor"},
		{0, "Poor"},
	}

	for _, tt := range tests {
		got := healthLabel(tt.score)
		if got != tt.expected {
			t.Errorf("healthLabel(%d) = %q, want %q", tt.score, got, tt.expected)
		}
	}
}

func TestGenerateEconomicHealthWeighting(t *testing.T) {
	svc := NewService()

	// Employment (weight 1.5) positive, markets (weight 0.8) negative:
	// (100*1.5 + 0*0.8) / 2.3 = 65.2 -> 65
	indicators := []models.EnrichedIndicator{
		testEnriched("UNRATE", models.CategoryEmployment, models.SentimentPositive, models.SeverityMild, models.TrendDown),
		testEnriched("SP500", models.CategoryMarkets, models.SentimentNegative, models.SeverityMild, models.TrendDown),
	}

	summary := svc.GenerateEconomicHealth(indicators)

	if summary.OverallScore != 65 {
		t.Errorf("overall score = %d, want 65", summary.OverallScore)
	}
	if summary.ScoreLabel != "Good" {
		t.Errorf("score label = %q, want Good", summary.ScoreLabel)
	}
	if len(summary.CategoryScores) != 2 {
		t.Fatalf("expected 2 category scores, got %d", len(summary.CategoryScores))
	}
}

func TestGenerateEconomicHealthEmpty(t *testing.T) {
	svc := NewService()

	summary := svc.GenerateEconomicHealth(nil)

	if summary.OverallScore != 50 {
		t.Errorf("empty snapshot score = %d, want 50", summary.OverallScore)
	}
	if summary.ScoreLabel != "Fair" {
		t.Errorf("empty snapshot label = %q, want Fair", summary.ScoreLabel)
	}
	if len(summary.KeyInsights) != 0 {
		t.Errorf("empty snapshot should have no insights, got %d", len(summary.KeyInsights))
	}
}

func TestGroupByCategoryOrder(t *testing.T) {
	svc := NewService()

	// Fed in reverse of the fixed category order
	indicators := []models.EnrichedIndicator{
		testEnriched("SP500", models.CategoryMarkets, models.SentimentNeutral, models.SeverityMild, models.TrendStable),
		testEnriched("CPIAUCSL", models.CategoryInflation, models.SentimentNeutral, models.SeverityMild, models.TrendStable),
		testEnriched("UNRATE", models.CategoryEmployment, models.SentimentNeutral, models.SeverityMild, models.TrendStable),
	}

	groups := svc.GroupByCategory(indicators)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}

	expected := []models.Category{models.CategoryEmployment, models.CategoryInflation, models.CategoryMarkets}
	for i, cat := range expected {
		if groups[i].Category != cat {
			t.Errorf("group %d = %s, want %s", i, groups[i].Category, cat)
		}
	}
}

func TestCategoryTrendAggregation(t *testing.T) {
	svc := NewService()

	indicators := []models.EnrichedIndicator{
		testEnriched("UNRATE", models.CategoryEmployment, models.SentimentPositive, models.SeverityMild, models.TrendDown),
		testEnriched("PAYEMS", models.CategoryEmployment, models.SentimentPositive, models.SeverityMild, models.TrendUp),
		testEnriched("CIVPART", models.CategoryEmployment, models.SentimentNegative, models.SeverityMild, models.TrendDown),
	}

	groups := svc.GroupByCategory(indicators)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].OverallTrend != models.CategoryImproving {
		t.Errorf("trend = %s, want improving", groups[0].OverallTrend)
	}

	// 2 positive + 1 negative: (100+100+0)/3
	wantScore := 200.0 / 3.0
	if diff := groups[0].HealthScore - wantScore; diff > 0.01 || diff < -0.01 {
		t.Errorf("health score = %.2f, want %.2f", groups[0].HealthScore, wantScore)
	}
}

func TestGenerateKeyInsightsOrderAndCap(t *testing.T) {
	// Fires all four insight rules at once: strong positive mover, strong
	// negative mover, inflation moderating, labor market strong.
	indicators := []models.EnrichedIndicator{
		testEnriched("PAYEMS", models.CategoryEmployment, models.SentimentPositive, models.SeverityStrong, models.TrendUp),
		testEnriched("SP500", models.CategoryMarkets, models.SentimentNegative, models.SeverityStrong, models.TrendDown),
		testEnriched("CPIAUCSL", models.CategoryInflation, models.SentimentPositive, models.SeverityMild, models.TrendDown),
	}

	insights := generateKeyInsights(indicators)
	if len(insights) != 4 {
		t.Fatalf("expected 4 insights, got %d", len(insights))
	}

	if !strings.HasPrefix(insights[0].Title, "Strong:") {
		t.Errorf("insight 0 title = %q, want Strong: prefix", insights[0].Title)
	}
	if !strings.HasPrefix(insights[1].Title, "Watch:") {
		t.Errorf("insight 1 title = %q, want Watch: prefix", insights[1].Title)
	}
	if insights[2].Title != "Inflation Moderating" {
		t.Errorf("insight 2 title = %q", insights[2].Title)
	}
	if insights[3].Title != "Labor Market Strong" {
		t.Errorf("insight 3 title = %q", insights[3].Title)
	}
}

func TestGenerateKeyInsightsInflationMajority(t *testing.T) {
	// One of two inflation indicators falling is not a majority
	indicators := []models.EnrichedIndicator{
		testEnriched("CPIAUCSL", models.CategoryInflation, models.SentimentNeutral, models.SeverityMild, models.TrendDown),
		testEnriched("PPIACO", models.CategoryInflation, models.SentimentNeutral, models.SeverityMild, models.TrendUp),
	}

	for _, insight := range generateKeyInsights(indicators) {
		if insight.Title == "Inflation Moderating" {
			t.Error("inflation insight should require a strict majority trending down")
		}
	}
}
