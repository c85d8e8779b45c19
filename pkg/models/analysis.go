package models

import "time"

// Trend is the short-term direction of an indicator
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Sentiment is the value judgment of a trend given the indicator's good direction
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Severity is the magnitude tier of a change, independent of favorability
type Severity string

const (
	SeverityStrong   Severity = "strong"
	SeverityModerate Severity = "moderate"
	SeverityMild     Severity = "mild"
)

// Category groups indicators by economic area
type Category string

const (
	CategoryEmployment Category = "employment"
	CategoryInflation  Category = "inflation"
	CategoryGrowth     Category = "growth"
	CategoryMarkets    Category = "markets"
	CategoryHousing    Category = "housing"
	CategoryConsumer   Category = "consumer"
	CategoryUnknown    Category = "unknown"
)

// CategoryTrend is the aggregate direction of a category group
type CategoryTrend string

const (
	CategoryImproving CategoryTrend = "improving"
	CategoryStable    CategoryTrend = "stable"
	CategoryDeclining CategoryTrend = "declining"
)

// EnrichedIndicator is a DashboardSummary plus derived interpretation.
// It is recomputed from the current snapshot on every request, never stored.
type EnrichedIndicator struct {
	DashboardSummary

	Trend               Trend     `json:"trend"`
	Sentiment           Sentiment `json:"sentiment"`
	Severity            Severity  `json:"severity"`
	Category            Category  `json:"category"`
	WhatItMeans         string    `json:"whatItMeans"`
	WhyItMatters        string    `json:"whyItMatters"`
	CurrentAssessment   string    `json:"currentAssessment"`
	WhatDrivesThis      string    `json:"whatDrivesThis"`
	Implications        string    `json:"implications"`
	BenchmarkComparison string    `json:"benchmarkComparison,omitempty"`
	FormattedValue      string    `json:"formattedValue"`
	FormattedChange     string    `json:"formattedChange"`
}

// CategoryGroup collects the enriched indicators of one category
type CategoryGroup struct {
	Category     Category            `json:"category"`
	CategoryName string              `json:"categoryName"`
	Icon         string              `json:"icon"`
	Color        string              `json:"color"`
	Indicators   []EnrichedIndicator `json:"indicators"`
	HealthScore  float64             `json:"healthScore"`
	OverallTrend CategoryTrend       `json:"overallTrend"`
}

// KeyInsight is one headline takeaway for the dashboard
type KeyInsight struct {
	Type       Sentiment `json:"type"`
	Icon       string    `json:"icon"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Indicators []string  `json:"indicators"`
}

// CategoryScore is a category's contribution to the health summary
type CategoryScore struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
	Trend    Trend   `json:"trend"`
}

// EconomicHealthSummary is the composite view across all categories
type EconomicHealthSummary struct {
	OverallScore   int             `json:"overallScore"`
	ScoreLabel     string          `json:"scoreLabel"`
	CategoryScores []CategoryScore `json:"categoryScores"`
	KeyInsights    []KeyInsight    `json:"keyInsights"`
	LastUpdated    time.Time       `json:"lastUpdated"`
}
