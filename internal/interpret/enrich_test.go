package interpret

import (
	"testing"

	"github.com/apetrov/econ-tracker/pkg/models"
)

func testSummary(name string, latest, changePercent float64) models.DashboardSummary {
	return models.DashboardSummary{
		Name:          name,
		Description:   name + " description",
		LatestValue:   models.DecimalPtr(latest),
		ChangePercent: models.DecimalPtr(changePercent),
	}
}

func TestCalculateTrend(t *testing.T) {
	tests := []struct {
		changePercent float64
		expected      models.Trend
	}{
		{0, models.TrendStable},
		{0.49, models.TrendStable},
		{-0.49, models.TrendStable},
		{0.5, models.TrendUp},
		{-0.5, models.TrendDown},
		{3.2, models.TrendUp},
		{-12.0, models.TrendDown},
	}

	for _, tt := range tests {
		got := calculateTrend(tt.changePercent)
		if got != tt.expected {
			t.Errorf("calculateTrend(%.2f) = %s, want %s", tt.changePercent, got, tt.expected)
		}
	}
}

func TestCalculateSeverity(t *testing.T) {
	tests := []struct {
		changePercent float64
		expected      models.Severity
	}{
		{0, models.SeverityMild},
		{2.0, models.SeverityMild},
		{2.01, models.SeverityModerate},
		{5.0, models.SeverityModerate},
		{5.01, models.SeverityStrong},
		{-6.0, models.SeverityStrong},
		{-2.0, models.SeverityMild},
	}

	for _, tt := range tests {
		got := calculateSeverity(tt.changePercent)
		if got != tt.expected {
			t.Errorf("calculateSeverity(%.2f) = %s, want %s", tt.changePercent, got, tt.expected)
		}
	}
}

func TestEnrichSentiment(t *testing.T) {
	svc := NewService()

	// Unemployment rising is bad
	enriched := svc.Enrich(testSummary("UNRATE", 4.2, 2.5))
	if enriched.Sentiment != models.SentimentNegative {
		t.Errorf("rising UNRATE sentiment = %s, want negative", enriched.Sentiment)
	}
	if enriched.Trend != models.TrendUp {
		t.Errorf("rising UNRATE trend = %s, want up", enriched.Trend)
	}

	// Unemployment falling is good
	enriched = svc.Enrich(testSummary("UNRATE", 3.8, -2.5))
	if enriched.Sentiment != models.SentimentPositive {
		t.Errorf("falling UNRATE sentiment = %s, want positive", enriched.Sentiment)
	}

	// Stable movement is always neutral
	enriched = svc.Enrich(testSummary("UNRATE", 4.0, 0.2))
	if enriched.Sentiment != models.SentimentNeutral {
		t.Errorf("stable UNRATE sentiment = %s, want neutral", enriched.Sentiment)
	}

	// Payrolls rising is good (opposite good direction)
	enriched = svc.Enrich(testSummary("PAYEMS", 158000, 1.0))
	if enriched.Sentiment != models.SentimentPositive {
		t.Errorf("rising PAYEMS sentiment = %s, want positive", enriched.Sentiment)
	}
}

func TestEnrichCategory(t *testing.T) {
	svc := NewService()

	enriched := svc.Enrich(testSummary("CPIAUCSL", 310.5, 0.3))
	if enriched.Category != models.CategoryInflation {
		t.Errorf("CPIAUCSL category = %s, want inflation", enriched.Category)
	}

	enriched = svc.Enrich(testSummary("SP500", 5200, 1.2))
	if enriched.Category != models.CategoryMarkets {
		t.Errorf("SP500 category = %s, want markets", enriched.Category)
	}
}

func TestEnrichUnknownSeries(t *testing.T) {
	svc := NewService()

	enriched := svc.Enrich(testSummary("NOTASERIES", 12.0, 1.0))

	if enriched.Category != models.CategoryUnknown {
		t.Errorf("unknown series category = %s, want unknown", enriched.Category)
	}
	if enriched.Sentiment != models.SentimentNeutral {
		t.Errorf("unknown series sentiment = %s, want neutral", enriched.Sentiment)
	}
	if enriched.Severity != models.SeverityMild {
		t.Errorf("unknown series severity = %s, want mild", enriched.Severity)
	}
	if enriched.CurrentAssessment != "No assessment available" {
		t.Errorf("unknown series assessment = %q", enriched.CurrentAssessment)
	}
	if enriched.FormattedValue != "12.00" {
		t.Errorf("unknown series formatted value = %q, want 12.00", enriched.FormattedValue)
	}
	if enriched.Trend != models.TrendUp {
		t.Errorf("unknown series trend = %s, want up", enriched.Trend)
	}
}

func TestEnrichMissingObservations(t *testing.T) {
	svc := NewService()

	// Series with no observations at all: nil values degrade to zero change
	enriched := svc.Enrich(models.DashboardSummary{Name: "UNRATE"})

	if enriched.Trend != models.TrendStable {
		t.Errorf("empty summary trend = %s, want stable", enriched.Trend)
	}
	if enriched.Sentiment != models.SentimentNeutral {
		t.Errorf("empty summary sentiment = %s, want neutral", enriched.Sentiment)
	}
	if enriched.FormattedChange != "0.00%" {
		t.Errorf("empty summary formatted change = %q, want 0.00%%", enriched.FormattedChange)
	}
}

func TestFormatChange(t *testing.T) {
	tests := []struct {
		changePercent float64
		expected      string
	}{
		{1.5, "+1.50%"},
		{-2.0, "-2.00%"},
		{0, "0.00%"},
	}

	for _, tt := range tests {
		got := formatChange(tt.changePercent)
		if got != tt.expected {
			t.Errorf("formatChange(%.2f) = %q, want %q", tt.changePercent, got, tt.expected)
		}
	}
}

func TestEnrichAllPreservesOrder(t *testing.T) {
	svc := NewService()

	summaries := []models.DashboardSummary{
		testSummary("SP500", 5200, 1.2),
		testSummary("UNRATE", 4.0, 0.1),
		testSummary("CPIAUCSL", 310.5, 0.3),
	}

	enriched := svc.EnrichAll(summaries)
	if len(enriched) != 3 {
		t.Fatalf("expected 3 enriched indicators, got %d", len(enriched))
	}
	for i := range summaries {
		if enriched[i].Name != summaries[i].Name {
			t.Errorf("position %d: got %s, want %s", i, enriched[i].Name, summaries[i].Name)
		}
	}
}
