package interpret

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/apetrov/econ-tracker/pkg/models"
)

// stableThreshold is the single source of truth for "no meaningful movement":
// absolute percent change below this classifies as stable.
const stableThreshold = 0.5

// Service enriches dashboard summaries with derived interpretation
type Service struct{}

// NewService creates new interpretation service
func NewService() *Service {
	return &Service{}
}

// Enrich converts one raw summary into an enriched indicator. Unknown series
// degrade to a neutral default; this never fails.
func (s *Service) Enrich(summary models.DashboardSummary) models.EnrichedIndicator {
	md := Lookup(summary.Name)
	if md == nil {
		return s.defaultEnriched(summary)
	}

	changePercent := summary.ChangePercentOrZero()
	trend := calculateTrend(changePercent)
	sentiment := calculateSentiment(trend, md.GoodDirection)
	severity := calculateSeverity(changePercent)

	return models.EnrichedIndicator{
		DashboardSummary:    summary,
		Trend:               trend,
		Sentiment:           sentiment,
		Severity:            severity,
		Category:            md.Category,
		WhatItMeans:         md.WhatItMeans,
		WhyItMatters:        md.WhyItMatters,
		CurrentAssessment:   generateAssessment(changePercent, md),
		WhatDrivesThis:      md.WhatDrives,
		Implications:        generateImplications(trend, md),
		BenchmarkComparison: generateBenchmarkComparison(summary, md),
		FormattedValue:      formatValue(summary.LatestValueOr(0), md),
		FormattedChange:     formatChange(changePercent),
	}
}

// EnrichAll enriches every summary in the snapshot, preserving order
func (s *Service) EnrichAll(summaries []models.DashboardSummary) []models.EnrichedIndicator {
	enriched := make([]models.EnrichedIndicator, len(summaries))
	for i, summary := range summaries {
		enriched[i] = s.Enrich(summary)
	}
	return enriched
}

func (s *Service) defaultEnriched(summary models.DashboardSummary) models.EnrichedIndicator {
	changePercent := summary.ChangePercentOrZero()

	return models.EnrichedIndicator{
		DashboardSummary:  summary,
		Trend:             calculateTrend(changePercent),
		Sentiment:         models.SentimentNeutral,
		Severity:          models.SeverityMild,
		Category:          models.CategoryUnknown,
		CurrentAssessment: "No assessment available",
		FormattedValue:    strconv.FormatFloat(summary.LatestValueOr(0), 'f', 2, 64),
		FormattedChange:   formatChange(changePercent),
	}
}

func calculateTrend(changePercent float64) models.Trend {
	if math.Abs(changePercent) < stableThreshold {
		return models.TrendStable
	}
	if changePercent > 0 {
		return models.TrendUp
	}
	return models.TrendDown
}

func calculateSentiment(trend models.Trend, goodDirection models.Trend) models.Sentiment {
	if trend == models.TrendStable {
		return models.SentimentNeutral
	}
	if trend == goodDirection {
		return models.SentimentPositive
	}
	return models.SentimentNegative
}

// Severity bounds are strict: exactly 5.0 is moderate, exactly 2.0 is mild.
func calculateSeverity(changePercent float64) models.Severity {
	absChange := math.Abs(changePercent)
	if absChange > 5 {
		return models.SeverityStrong
	}
	if absChange > 2 {
		return models.SeverityModerate
	}
	return models.SeverityMild
}

func generateAssessment(changePercent float64, md *Metadata) string {
	absChange := math.Abs(changePercent)

	direction := "falling"
	if changePercent > 0 {
		direction = "rising"
	}

	isGood := calculateSentiment(calculateTrend(changePercent), md.GoodDirection) == models.SentimentPositive

	switch {
	case absChange < stableThreshold:
		return "Stable with minimal change"
	case absChange < 2:
		if isGood {
			return fmt.Sprintf("Favorable - %s moderately", direction)
		}
		return fmt.Sprintf("Unfavorable - %s moderately", direction)
	case absChange < 5:
		if isGood {
			return fmt.Sprintf("Positive - %s significantly", direction)
		}
		return fmt.Sprintf("Concerning - %s significantly", direction)
	default:
		if isGood {
			return fmt.Sprintf("Strong improvement - %s rapidly", direction)
		}
		return fmt.Sprintf("Sharp decline - %s rapidly", direction)
	}
}

func generateImplications(trend models.Trend, md *Metadata) string {
	if trend == models.TrendStable {
		return "Maintaining current levels suggests stability in this economic area"
	}
	if trend == models.TrendUp {
		return md.RisingMeans
	}
	return md.FallingMeans
}

func generateBenchmarkComparison(summary models.DashboardSummary, md *Metadata) string {
	if summary.LatestValue == nil {
		return ""
	}
	current := summary.LatestValue.InexactFloat64()

	var comparisons []string

	if md.Benchmarks.PreCovidAvg != nil {
		comparisons = append(comparisons, benchmarkFragment(current, *md.Benchmarks.PreCovidAvg, "pre-COVID avg", md))
	}

	if md.Benchmarks.HistoricalAvg != nil {
		comparisons = append(comparisons, benchmarkFragment(current, *md.Benchmarks.HistoricalAvg, "long-term avg", md))
	}

	if md.Benchmarks.Recession != nil && md.Benchmarks.Expansion != nil {
		if current <= *md.Benchmarks.Recession {
			comparisons = append(comparisons, "⚠️ Near recession levels")
		} else if current >= *md.Benchmarks.Expansion {
			comparisons = append(comparisons, "✓ At expansion levels")
		}
	}

	return strings.Join(comparisons, " • ")
}

func benchmarkFragment(current, benchmark float64, label string, md *Metadata) string {
	diff := current - benchmark
	percentDiff := math.Abs(diff / benchmark * 100)

	direction := "below"
	if diff > 0 {
		direction = "above"
	}

	return fmt.Sprintf("%s%% %s %s (%s)",
		strconv.FormatFloat(percentDiff, 'f', 1, 64),
		direction, label, formatValue(benchmark, md),
	)
}

func formatValue(value float64, md *Metadata) string {
	formatted := strconv.FormatFloat(value, 'f', md.Formatting.Decimals, 64)

	if md.Formatting.IsCurrency {
		formatted = "$" + formatted
	}
	if md.Formatting.Suffix != "" {
		formatted += md.Formatting.Suffix
	}

	return formatted
}

func formatChange(changePercent float64) string {
	sign := ""
	if changePercent > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%s%%", sign, strconv.FormatFloat(changePercent, 'f', 2, 64))
}
