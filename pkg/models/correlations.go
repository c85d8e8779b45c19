package models

// RiskLevel grades the combined severity of detected patterns
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// PatternSeverity is the author-assigned weight of a correlation rule
type PatternSeverity string

const (
	PatternLow      PatternSeverity = "low"
	PatternMedium   PatternSeverity = "medium"
	PatternHigh     PatternSeverity = "high"
	PatternCritical PatternSeverity = "critical"
)

// PatternType tells whether a pattern is a favorable or concerning signal
type PatternType string

const (
	PatternPositive PatternType = "positive"
	PatternNegative PatternType = "negative"
	PatternNeutral  PatternType = "neutral"
)

// CorrelationPattern is one matched multi-indicator rule. Confidence and
// severity are fixed per rule, not computed from the data.
type CorrelationPattern struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Indicators        []string        `json:"indicators"`
	Confidence        int             `json:"confidence"`
	Severity          PatternSeverity `json:"severity"`
	Type              PatternType     `json:"type"`
	EconomicSignal    string          `json:"economicSignal"`
	HistoricalContext string          `json:"historicalContext"`
}

// CorrelationAnalysis is the full pattern-detection result for one snapshot
type CorrelationAnalysis struct {
	Patterns    []CorrelationPattern `json:"patterns"`
	Summary     string               `json:"summary"`
	OverallRisk RiskLevel            `json:"overallRisk"`
}
