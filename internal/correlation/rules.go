package correlation

import (
	"fmt"
	"math"

	"github.com/apetrov/econ-tracker/pkg/models"
)

// ruleCatalog is evaluated in order; its order fixes display order.
// Rules are independent and not mutually exclusive, except the two variants
// of the yield inversion signal which share one rule.
var ruleCatalog = []rule{
	{id: "yield-inversion", eval: evalYieldInversion},
	{id: "soft-landing", eval: evalSoftLanding},
	{id: "production-employment-decline", eval: evalProductionEmploymentDecline},
	{id: "inflation-rate-spiral", eval: evalInflationRateSpiral},
	{id: "goldilocks-economy", eval: evalGoldilocks},
	{id: "housing-stress", eval: evalHousingStress},
	{id: "market-disconnect", eval: evalMarketDisconnect},
	{id: "rate-cut-rally", eval: evalRateCutRally},
	{id: "mixed-signals", eval: evalMixedSignals},
}

// Yield curve inversion, escalated when unemployment is also rising.
// The two variants are mutually exclusive.
func evalYieldInversion(set indicatorSet) *models.CorrelationPattern {
	fedfunds := set.get("FEDFUNDS")
	gs10 := set.get("GS10")
	if fedfunds == nil || gs10 == nil {
		return nil
	}

	yieldSpread := gs10.LatestValueOr(0) - fedfunds.LatestValueOr(0)
	if yieldSpread >= 0 {
		return nil
	}

	unrate := set.get("UNRATE")
	if unrate != nil && unrate.Trend == models.TrendUp {
		return &models.CorrelationPattern{
			ID:                "yield-inversion-unemployment",
			Title:             "⚠️ Yield Curve Inversion + Rising Unemployment",
			Description:       fmt.Sprintf("10-year Treasury yield is %.2f%% below Fed Funds rate while unemployment is trending up", math.Abs(yieldSpread)),
			Indicators:        []string{"FEDFUNDS", "GS10", "UNRATE"},
			Confidence:        85,
			Severity:          models.PatternCritical,
			Type:              models.PatternNegative,
			EconomicSignal:    "Historically strong recession indicator - this pattern has preceded 7 of the last 8 recessions",
			HistoricalContext: "When the yield curve inverts and unemployment begins rising, recession typically follows within 6-18 months",
		}
	}

	return &models.CorrelationPattern{
		ID:                "yield-inversion",
		Title:             "⚠️ Yield Curve Inversion Detected",
		Description:       fmt.Sprintf("10-year Treasury yield is %.2f%% below Fed Funds rate", math.Abs(yieldSpread)),
		Indicators:        []string{"FEDFUNDS", "GS10"},
		Confidence:        70,
		Severity:          models.PatternHigh,
		Type:              models.PatternNegative,
		EconomicSignal:    "Potential recession warning - markets expect Fed to cut rates in the future",
		HistoricalContext: "Yield curve inversions have preceded recessions, though timing varies (6-24 months)",
	}
}

func evalSoftLanding(set indicatorSet) *models.CorrelationPattern {
	fedfunds := set.get("FEDFUNDS")
	cpi := set.get("CPIAUCSL")
	if fedfunds == nil || cpi == nil {
		return nil
	}

	cpiStableOrFalling := cpi.Trend == models.TrendDown || cpi.Trend == models.TrendStable
	if fedfunds.Trend != models.TrendDown || !cpiStableOrFalling {
		return nil
	}

	return &models.CorrelationPattern{
		ID:                "soft-landing",
		Title:             "✅ Potential Soft Landing Scenario",
		Description:       "Fed cutting rates while inflation remains controlled",
		Indicators:        []string{"FEDFUNDS", "CPIAUCSL"},
		Confidence:        65,
		Severity:          models.PatternLow,
		Type:              models.PatternPositive,
		EconomicSignal:    "Fed may be successfully reducing inflation without triggering recession",
		HistoricalContext: "Soft landings are rare but possible - last achieved in mid-1990s",
	}
}

func evalProductionEmploymentDecline(set indicatorSet) *models.CorrelationPattern {
	indpro := set.get("INDPRO")
	payems := set.get("PAYEMS")
	if indpro == nil || payems == nil {
		return nil
	}

	if indpro.Trend != models.TrendDown || payems.Trend != models.TrendDown {
		return nil
	}

	return &models.CorrelationPattern{
		ID:                "production-employment-decline",
		Title:             "⚠️ Industrial Production & Employment Both Declining",
		Description:       "Manufacturing output and job growth both trending negative",
		Indicators:        []string{"INDPRO", "PAYEMS"},
		Confidence:        80,
		Severity:          models.PatternHigh,
		Type:              models.PatternNegative,
		EconomicSignal:    "Early recession signal - businesses cutting production and workforce",
		HistoricalContext: "Simultaneous declines typically indicate economic contraction is underway",
	}
}

func evalInflationRateSpiral(set indicatorSet) *models.CorrelationPattern {
	cpi := set.get("CPIAUCSL")
	ppi := set.get("PPIACO")
	fedfunds := set.get("FEDFUNDS")
	if cpi == nil || ppi == nil || fedfunds == nil {
		return nil
	}

	inflationRising := cpi.Trend == models.TrendUp || ppi.Trend == models.TrendUp
	if !inflationRising || fedfunds.Trend != models.TrendUp {
		return nil
	}

	return &models.CorrelationPattern{
		ID:                "inflation-rate-spiral",
		Title:             "⚠️ Inflation Pressure + Fed Tightening",
		Description:       "Inflation trending up while Fed raises rates to combat it",
		Indicators:        []string{"CPIAUCSL", "PPIACO", "FEDFUNDS"},
		Confidence:        75,
		Severity:          models.PatternHigh,
		Type:              models.PatternNegative,
		EconomicSignal:    "Fed fighting inflation - expect higher borrowing costs and potential economic slowdown",
		HistoricalContext: "Aggressive rate hikes to combat inflation often lead to recessions (1980-82, 2001)",
	}
}

// Strong growth, low unemployment, inflation inside (1.5, 3) exclusive.
func evalGoldilocks(set indicatorSet) *models.CorrelationPattern {
	gdp := set.get("GDPC1")
	unrate := set.get("UNRATE")
	cpi := set.get("CPIAUCSL")
	if gdp == nil || unrate == nil || cpi == nil {
		return nil
	}

	gdpStrong := gdp.Trend == models.TrendUp && gdp.ChangePercentOrZero() > 1
	unemploymentLow := unrate.LatestValueOr(100) < 4.5
	cpiChange := cpi.ChangePercentOrZero()
	inflationModerate := cpiChange < 3 && cpiChange > 1.5

	if !gdpStrong || !unemploymentLow || !inflationModerate {
		return nil
	}

	return &models.CorrelationPattern{
		ID:                "goldilocks-economy",
		Title:             "✅ \"Goldilocks\" Economic Conditions",
		Description:       "Strong growth, low unemployment, and controlled inflation",
		Indicators:        []string{"GDPC1", "UNRATE", "CPIAUCSL"},
		Confidence:        70,
		Severity:          models.PatternLow,
		Type:              models.PatternPositive,
		EconomicSignal:    "Ideal economic conditions - not too hot, not too cold",
		HistoricalContext: "Sustainable when productivity growth supports wage gains without triggering inflation",
	}
}

func evalHousingStress(set indicatorSet) *models.CorrelationPattern {
	mortgage := set.get("MORTGAGE30US")
	gdp := set.get("GDPC1")
	if mortgage == nil || gdp == nil {
		return nil
	}

	mortgageHigh := mortgage.LatestValueOr(0) > 6.5
	economicSlowing := gdp.Trend == models.TrendDown || gdp.Trend == models.TrendStable
	if !mortgageHigh || !economicSlowing {
		return nil
	}

	return &models.CorrelationPattern{
		ID:                "housing-stress",
		Title:             "⚠️ Housing Market Stress",
		Description:       fmt.Sprintf("Mortgage rates at %.2f%% while economy slowing", mortgage.LatestValueOr(0)),
		Indicators:        []string{"MORTGAGE30US", "GDPC1"},
		Confidence:        65,
		Severity:          models.PatternMedium,
		Type:              models.PatternNegative,
		EconomicSignal:    "Housing market cooling - affordability challenges and reduced activity",
		HistoricalContext: "High mortgage rates typically slow housing market and can impact consumer spending",
	}
}

func evalMarketDisconnect(set indicatorSet) *models.CorrelationPattern {
	sp500 := set.get("SP500")
	recession := set.get("RECPROUSM156N")
	if sp500 == nil || recession == nil {
		return nil
	}

	marketUp := sp500.Trend == models.TrendUp && sp500.ChangePercentOrZero() > 5
	recessionSignal := recession.LatestValueOr(0) > 0.3
	if !marketUp || !recessionSignal {
		return nil
	}

	return &models.CorrelationPattern{
		ID:                "market-disconnect",
		Title:             "⚠️ Market-Economy Disconnect",
		Description:       "Stock market rallying despite elevated recession risk",
		Indicators:        []string{"SP500", "RECPROUSM156N"},
		Confidence:        60,
		Severity:          models.PatternMedium,
		Type:              models.PatternNeutral,
		EconomicSignal:    "Markets may be pricing in future recovery or Fed pivot - increased volatility likely",
		HistoricalContext: "Markets often bottom before recessions end, anticipating recovery",
	}
}

func evalRateCutRally(set indicatorSet) *models.CorrelationPattern {
	fedfunds := set.get("FEDFUNDS")
	sp500 := set.get("SP500")
	if fedfunds == nil || sp500 == nil {
		return nil
	}

	if fedfunds.Trend != models.TrendDown || sp500.Trend != models.TrendUp {
		return nil
	}

	return &models.CorrelationPattern{
		ID:                "rate-cut-rally",
		Title:             "✅ Rate Cut Market Rally",
		Description:       "Declining interest rates supporting stock market gains",
		Indicators:        []string{"FEDFUNDS", "SP500"},
		Confidence:        75,
		Severity:          models.PatternLow,
		Type:              models.PatternPositive,
		EconomicSignal:    "Lower rates boost valuations and reduce borrowing costs - positive for equities",
		HistoricalContext: "Rate cut cycles often support market rallies, though timing matters",
	}
}

func evalMixedSignals(set indicatorSet) *models.CorrelationPattern {
	payems := set.get("PAYEMS")
	indpro := set.get("INDPRO")
	sp500 := set.get("SP500")
	if payems == nil || indpro == nil || sp500 == nil {
		return nil
	}

	if payems.Trend != models.TrendUp || indpro.Trend != models.TrendDown {
		return nil
	}

	return &models.CorrelationPattern{
		ID:                "mixed-signals",
		Title:             "⚠️ Mixed Economic Signals",
		Description:       "Employment strong but industrial production weak",
		Indicators:        []string{"PAYEMS", "INDPRO"},
		Confidence:        55,
		Severity:          models.PatternMedium,
		Type:              models.PatternNeutral,
		EconomicSignal:    "Economy transitioning - could indicate shift from manufacturing to services",
		HistoricalContext: "Diverging indicators suggest economic inflection point - monitor closely",
	}
}
