package interpret

import (
	"fmt"
	"math"
	"time"

	"github.com/apetrov/econ-tracker/pkg/models"
)

// categoryWeights bias the overall score toward employment and inflation
var categoryWeights = map[models.Category]float64{
	models.CategoryEmployment: 1.5,
	models.CategoryInflation:  1.5,
	models.CategoryGrowth:     1.2,
	models.CategoryMarkets:    0.8,
	models.CategoryHousing:    0.8,
	models.CategoryConsumer:   1.0,
}

// GroupByCategory partitions enriched indicators into category groups with a
// health score and aggregate trend each. Groups follow the fixed category
// priority order; categories outside it are appended in discovery order.
func (s *Service) GroupByCategory(indicators []models.EnrichedIndicator) []models.CategoryGroup {
	byCategory := make(map[models.Category][]models.EnrichedIndicator)
	var discovered []models.Category

	for _, ind := range indicators {
		if _, seen := byCategory[ind.Category]; !seen {
			discovered = append(discovered, ind.Category)
		}
		byCategory[ind.Category] = append(byCategory[ind.Category], ind)
	}

	ordered := make([]models.Category, 0, len(discovered))
	inFixedOrder := make(map[models.Category]bool)
	for _, cat := range CategoryOrder {
		inFixedOrder[cat] = true
		if _, ok := byCategory[cat]; ok {
			ordered = append(ordered, cat)
		}
	}
	for _, cat := range discovered {
		if !inFixedOrder[cat] {
			ordered = append(ordered, cat)
		}
	}

	groups := make([]models.CategoryGroup, 0, len(ordered))
	for _, cat := range ordered {
		members := byCategory[cat]

		info, ok := CategoryDisplay[cat]
		if !ok {
			info = CategoryInfo{ID: cat, Name: "Other", Icon: "📊", Color: "#9e9e9e"}
		}

		groups = append(groups, models.CategoryGroup{
			Category:     cat,
			CategoryName: info.Name,
			Icon:         info.Icon,
			Color:        info.Color,
			Indicators:   members,
			HealthScore:  categoryHealth(members),
			OverallTrend: categoryTrend(members),
		})
	}

	return groups
}

// GenerateEconomicHealth computes the composite health summary for a snapshot
func (s *Service) GenerateEconomicHealth(indicators []models.EnrichedIndicator) models.EconomicHealthSummary {
	groups := s.GroupByCategory(indicators)

	overallScore := overallHealth(groups)

	categoryScores := make([]models.CategoryScore, 0, len(groups))
	for _, group := range groups {
		categoryScores = append(categoryScores, models.CategoryScore{
			Category: group.CategoryName,
			Score:    group.HealthScore,
			Trend:    trendDirection(group.OverallTrend),
		})
	}

	return models.EconomicHealthSummary{
		OverallScore:   overallScore,
		ScoreLabel:     healthLabel(overallScore),
		CategoryScores: categoryScores,
		KeyInsights:    generateKeyInsights(indicators),
		LastUpdated:    time.Now(),
	}
}

func sentimentScore(sentiment models.Sentiment) float64 {
	switch sentiment {
	case models.SentimentPositive:
		return 100
	case models.SentimentNeutral:
		return 50
	default:
		return 0
	}
}

func categoryHealth(indicators []models.EnrichedIndicator) float64 {
	if len(indicators) == 0 {
		return 50
	}

	var total float64
	for _, ind := range indicators {
		total += sentimentScore(ind.Sentiment)
	}
	return total / float64(len(indicators))
}

func categoryTrend(indicators []models.EnrichedIndicator) models.CategoryTrend {
	var positive, negative int
	for _, ind := range indicators {
		switch ind.Sentiment {
		case models.SentimentPositive:
			positive++
		case models.SentimentNegative:
			negative++
		}
	}

	if positive > negative {
		return models.CategoryImproving
	}
	if negative > positive {
		return models.CategoryDeclining
	}
	return models.CategoryStable
}

func overallHealth(groups []models.CategoryGroup) int {
	if len(groups) == 0 {
		return 50
	}

	var totalScore, totalWeight float64
	for _, group := range groups {
		weight, ok := categoryWeights[group.Category]
		if !ok {
			weight = 1.0
		}
		totalScore += group.HealthScore * weight
		totalWeight += weight
	}

	return int(math.Round(totalScore / totalWeight))
}

func healthLabel(score int) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 65:
		return "Good"
	case score >= 50:
		return "Fair"
	case score >= 35:
		return "Weak"
	default:
		return "Poor"
	}
}

func trendDirection(trend models.CategoryTrend) models.Trend {
	switch trend {
	case models.CategoryImproving:
		return models.TrendUp
	case models.CategoryDeclining:
		return models.TrendDown
	default:
		return models.TrendStable
	}
}

// generateKeyInsights emits up to four headline insights, evaluated in fixed
// priority order with at most one insight per rule.
func generateKeyInsights(indicators []models.EnrichedIndicator) []models.KeyInsight {
	var insights []models.KeyInsight

	// Strong positive mover
	for _, ind := range indicators {
		if ind.Sentiment == models.SentimentPositive && ind.Severity == models.SeverityStrong {
			verb := "decreased"
			if ind.Trend == models.TrendUp {
				verb = "increased"
			}
			insights = append(insights, models.KeyInsight{
				Type:       models.SentimentPositive,
				Icon:       "✅",
				Title:      fmt.Sprintf("Strong: %s", ind.Description),
				Message:    fmt.Sprintf("%s %s by %s", ind.Description, verb, ind.FormattedChange),
				Indicators: []string{ind.Name},
			})
			break
		}
	}

	// Strong negative mover
	for _, ind := range indicators {
		if ind.Sentiment == models.SentimentNegative && ind.Severity == models.SeverityStrong {
			verb := "fell"
			if ind.Trend == models.TrendUp {
				verb = "rose"
			}
			insights = append(insights, models.KeyInsight{
				Type:       models.SentimentNegative,
				Icon:       "⚠️",
				Title:      fmt.Sprintf("Watch: %s", ind.Description),
				Message:    fmt.Sprintf("%s %s by %s", ind.Description, verb, ind.FormattedChange),
				Indicators: []string{ind.Name},
			})
			break
		}
	}

	// Majority of inflation indicators trending down
	var inflationNames []string
	inflationDown := 0
	for _, ind := range indicators {
		if ind.Category == models.CategoryInflation {
			inflationNames = append(inflationNames, ind.Name)
			if ind.Trend == models.TrendDown {
				inflationDown++
			}
		}
	}
	if len(inflationNames) > 0 && float64(inflationDown) > float64(len(inflationNames))/2 {
		insights = append(insights, models.KeyInsight{
			Type:       models.SentimentPositive,
			Icon:       "📉",
			Title:      "Inflation Moderating",
			Message:    "Price pressures showing signs of easing",
			Indicators: inflationNames,
		})
	}

	// Every employment indicator positive
	var employmentNames []string
	employmentAllPositive := true
	for _, ind := range indicators {
		if ind.Category == models.CategoryEmployment {
			employmentNames = append(employmentNames, ind.Name)
			if ind.Sentiment != models.SentimentPositive {
				employmentAllPositive = false
			}
		}
	}
	if len(employmentNames) > 0 && employmentAllPositive {
		insights = append(insights, models.KeyInsight{
			Type:       models.SentimentPositive,
			Icon:       "💼",
			Title:      "Labor Market Strong",
			Message:    "Employment indicators remain healthy",
			Indicators: employmentNames,
		})
	}

	if len(insights) > 4 {
		insights = insights[:4]
	}
	return insights
}
