package recommend

import (
	"fmt"
	"math"

	"github.com/apetrov/econ-tracker/pkg/models"
)

// ruleCatalog is evaluated in order; within a priority band the catalog order
// fixes display order. The emergency fund rule has two mutually exclusive
// variants (boost vs maintain) sharing one entry.
var ruleCatalog = []rule{
	{id: "emergency-fund", eval: evalEmergencyFund},
	{id: "market-volatility", eval: evalMarketVolatility},
	{id: "buying-opportunity", eval: evalBuyingOpportunity},
	{id: "bond-opportunity", eval: evalBondOpportunity},
	{id: "defensive-position", eval: evalDefensivePosition},
	{id: "mortgage-high", eval: evalMortgageHigh},
	{id: "mortgage-refinance", eval: evalMortgageRefinance},
	{id: "housing-wait", eval: evalHousingWait},
	{id: "employment-security", eval: evalEmploymentSecurity},
	{id: "job-market-caution", eval: evalJobMarketCaution},
	{id: "job-opportunity", eval: evalJobOpportunity},
	{id: "inflation-spending", eval: evalInflationSpending},
	{id: "debt-paydown", eval: evalDebtPaydown},
	{id: "recession-preparation", eval: evalRecessionPreparation},
	{id: "business-cash-flow", eval: evalBusinessCashFlow},
}

func evalEmergencyFund(ctx *ruleContext) *models.ActionRecommendation {
	elevated := ctx.recessionProb > 0.4 ||
		ctx.overallRisk == models.RiskCritical ||
		ctx.overallRisk == models.RiskHigh

	if elevated {
		priority := models.PriorityHigh
		if ctx.overallRisk == models.RiskCritical {
			priority = models.PriorityCritical
		}
		return &models.ActionRecommendation{
			ID:          "emergency-fund-boost",
			Category:    "emergency-fund",
			Icon:        "🛡️",
			Title:       "Increase Emergency Fund",
			Description: "Build emergency savings to 6-12 months of expenses",
			Priority:    priority,
			Timeframe:   "immediate",
			Profiles: []models.UserProfile{
				models.ProfileGeneral, models.ProfileConservativeInvestor,
				models.ProfileHomeowner, models.ProfileRenter, models.ProfileJobSeeker,
			},
			Reasoning: fmt.Sprintf("With recession probability at %.0f%% and %s risk level, having robust emergency savings is crucial to weather potential job loss or income reduction.",
				ctx.recessionProb*100, ctx.overallRisk),
			RelevantIndicators: []string{"RECPROUSM156N", "UNRATE"},
		}
	}

	if ctx.recessionProb > 0.2 {
		return &models.ActionRecommendation{
			ID:          "emergency-fund-maintain",
			Category:    "emergency-fund",
			Icon:        "💰",
			Title:       "Maintain 3-6 Month Emergency Fund",
			Description: "Ensure you have adequate liquid savings",
			Priority:    models.PriorityMedium,
			Timeframe:   "short-term",
			Profiles: []models.UserProfile{
				models.ProfileGeneral, models.ProfileConservativeInvestor,
				models.ProfileAggressiveInvestor, models.ProfileHomeowner, models.ProfileRenter,
			},
			Reasoning: fmt.Sprintf("Economic uncertainty is moderate (%.0f%% recession risk). A standard emergency fund provides good protection.",
				ctx.recessionProb*100),
			RelevantIndicators: []string{"RECPROUSM156N"},
		}
	}

	return nil
}

func evalMarketVolatility(ctx *ruleContext) *models.ActionRecommendation {
	sp500 := ctx.get("SP500")
	if sp500 == nil || math.Abs(sp500.ChangePercentOrZero()) <= 15 {
		return nil
	}

	return &models.ActionRecommendation{
		ID:          "market-volatility",
		Category:    "investment",
		Icon:        "📊",
		Title:       "High Market Volatility Detected",
		Description: "Consider dollar-cost averaging instead of lump-sum investing",
		Priority:    models.PriorityHigh,
		Timeframe:   "immediate",
		Profiles: []models.UserProfile{
			models.ProfileConservativeInvestor, models.ProfileAggressiveInvestor, models.ProfileGeneral,
		},
		Reasoning: fmt.Sprintf("S&P 500 has moved %.1f%% - significant volatility. DCA reduces timing risk and emotional decision-making.",
			sp500.ChangePercentOrZero()),
		RelevantIndicators: []string{"SP500"},
	}
}

func evalBuyingOpportunity(ctx *ruleContext) *models.ActionRecommendation {
	sp500 := ctx.get("SP500")
	if sp500 == nil || sp500.ChangePercentOrZero() >= -10 || ctx.overallRisk == models.RiskCritical {
		return nil
	}

	return &models.ActionRecommendation{
		ID:       "buying-opportunity",
		Category: "investment",
		Icon:     "💎",
		Title:    "Potential Buying Opportunity",
		Description: fmt.Sprintf("S&P 500 down %.1f%% - consider quality stocks at discount",
			math.Abs(sp500.ChangePercentOrZero())),
		Priority:  models.PriorityMedium,
		Timeframe: "short-term",
		Profiles: []models.UserProfile{
			models.ProfileAggressiveInvestor, models.ProfileConservativeInvestor,
		},
		Reasoning:          "Market corrections create opportunities for long-term investors. Focus on quality companies with strong fundamentals and balance sheets.",
		RelevantIndicators: []string{"SP500"},
	}
}

func evalBondOpportunity(ctx *ruleContext) *models.ActionRecommendation {
	fedfunds := ctx.get("FEDFUNDS")
	if fedfunds == nil || fedfunds.Trend != models.TrendUp || fedfunds.LatestValueOr(0) <= 4 {
		return nil
	}

	return &models.ActionRecommendation{
		ID:       "bond-opportunity",
		Category: "investment",
		Icon:     "📈",
		Title:    "Higher Bond Yields Available",
		Description: fmt.Sprintf("Fed Funds at %.2f%% - bonds more attractive",
			fedfunds.LatestValueOr(0)),
		Priority:  models.PriorityMedium,
		Timeframe: "short-term",
		Profiles: []models.UserProfile{
			models.ProfileConservativeInvestor, models.ProfileGeneral,
		},
		Reasoning:          "Higher interest rates make fixed income investments more attractive. Consider laddering bonds or CDs for guaranteed returns.",
		RelevantIndicators: []string{"FEDFUNDS"},
	}
}

func evalDefensivePosition(ctx *ruleContext) *models.ActionRecommendation {
	if ctx.overallRisk != models.RiskCritical {
		return nil
	}

	return &models.ActionRecommendation{
		ID:          "defensive-position",
		Category:    "investment",
		Icon:        "🛡️",
		Title:       "Consider Defensive Positioning",
		Description: "Shift toward defensive sectors, cash, and high-quality bonds",
		Priority:    models.PriorityCritical,
		Timeframe:   "immediate",
		Profiles: []models.UserProfile{
			models.ProfileConservativeInvestor, models.ProfileAggressiveInvestor, models.ProfileGeneral,
		},
		Reasoning:          "Multiple recession signals detected. Defensive assets (utilities, consumer staples, healthcare) and cash positions help preserve capital during downturns.",
		RelevantIndicators: []string{"RECPROUSM156N", "SP500"},
	}
}

func evalMortgageHigh(ctx *ruleContext) *models.ActionRecommendation {
	mortgage := ctx.get("MORTGAGE30US")
	if mortgage == nil || mortgage.LatestValueOr(0) <= 6.5 {
		return nil
	}

	return &models.ActionRecommendation{
		ID:       "mortgage-high",
		Category: "real-estate",
		Icon:     "🏠",
		Title:    "Mortgage Rates Elevated",
		Description: fmt.Sprintf("30-year rates at %.2f%% - consider waiting or adjustable rate",
			mortgage.LatestValueOr(0)),
		Priority:  models.PriorityHigh,
		Timeframe: "medium-term",
		Profiles: []models.UserProfile{
			models.ProfileRenter, models.ProfileHomeowner,
		},
		Reasoning:          "High mortgage rates significantly impact affordability. If buying is urgent, consider ARM or wait for potential rate decreases. Current homeowners: avoid cash-out refinancing unless necessary.",
		RelevantIndicators: []string{"MORTGAGE30US"},
	}
}

func evalMortgageRefinance(ctx *ruleContext) *models.ActionRecommendation {
	mortgage := ctx.get("MORTGAGE30US")
	if mortgage == nil || mortgage.Trend != models.TrendDown || mortgage.LatestValueOr(0) >= 6 {
		return nil
	}

	return &models.ActionRecommendation{
		ID:       "mortgage-refinance",
		Category: "real-estate",
		Icon:     "🏡",
		Title:    "Refinancing Opportunity",
		Description: fmt.Sprintf("Mortgage rates trending down to %.2f%%",
			mortgage.LatestValueOr(0)),
		Priority:           models.PriorityMedium,
		Timeframe:          "short-term",
		Profiles:           []models.UserProfile{models.ProfileHomeowner},
		Reasoning:          "Declining rates create refinancing opportunities. Check if you can lower your rate by 0.5%+ to justify closing costs.",
		RelevantIndicators: []string{"MORTGAGE30US"},
	}
}

func evalHousingWait(ctx *ruleContext) *models.ActionRecommendation {
	mortgage := ctx.get("MORTGAGE30US")
	if ctx.recessionProb <= 0.4 || mortgage == nil || mortgage.LatestValueOr(0) <= 6 {
		return nil
	}

	return &models.ActionRecommendation{
		ID:          "housing-wait",
		Category:    "real-estate",
		Icon:        "⏳",
		Title:       "Consider Delaying Home Purchase",
		Description: "High rates + recession risk may lead to price corrections",
		Priority:    models.PriorityMedium,
		Timeframe:   "medium-term",
		Profiles:    []models.UserProfile{models.ProfileRenter},
		Reasoning: fmt.Sprintf("Recession probability at %.0f%% combined with %.2f%% mortgage rates suggests potential for both price and rate decreases ahead.",
			ctx.recessionProb*100, mortgage.LatestValueOr(0)),
		RelevantIndicators: []string{"MORTGAGE30US", "RECPROUSM156N"},
	}
}

func evalEmploymentSecurity(ctx *ruleContext) *models.ActionRecommendation {
	unrate := ctx.get("UNRATE")
	if unrate == nil || unrate.Trend != models.TrendUp {
		return nil
	}

	return &models.ActionRecommendation{
		ID:          "employment-security",
		Category:    "employment",
		Icon:        "💼",
		Title:       "Strengthen Job Security",
		Description: "Update skills, network, and maintain strong work performance",
		Priority:    models.PriorityHigh,
		Timeframe:   "immediate",
		Profiles: []models.UserProfile{
			models.ProfileGeneral, models.ProfileJobSeeker,
		},
		Reasoning: fmt.Sprintf("Unemployment trending up to %.1f%%. Proactively strengthen your position: document achievements, expand skills, build professional network.",
			unrate.LatestValueOr(0)),
		RelevantIndicators: []string{"UNRATE"},
	}
}

func evalJobMarketCaution(ctx *ruleContext) *models.ActionRecommendation {
	payems := ctx.get("PAYEMS")
	if payems == nil || payems.Trend != models.TrendDown {
		return nil
	}

	return &models.ActionRecommendation{
		ID:          "job-market-caution",
		Category:    "employment",
		Icon:        "⚠️",
		Title:       "Job Market Cooling",
		Description: "Hiring slowing - be cautious about job changes",
		Priority:    models.PriorityMedium,
		Timeframe:   "immediate",
		Profiles: []models.UserProfile{
			models.ProfileGeneral, models.ProfileJobSeeker,
		},
		Reasoning:          "Payroll growth declining suggests fewer job opportunities. If employed, focus on job security. If job hunting, be prepared for longer search times.",
		RelevantIndicators: []string{"PAYEMS"},
	}
}

func evalJobOpportunity(ctx *ruleContext) *models.ActionRecommendation {
	payems := ctx.get("PAYEMS")
	unrate := ctx.get("UNRATE")
	if payems == nil || payems.Trend != models.TrendUp || unrate == nil || unrate.LatestValueOr(100) >= 4 {
		return nil
	}

	return &models.ActionRecommendation{
		ID:          "job-opportunity",
		Category:    "employment",
		Icon:        "🎯",
		Title:       "Strong Job Market",
		Description: "Good time for career advancement or job change",
		Priority:    models.PriorityLow,
		Timeframe:   "short-term",
		Profiles: []models.UserProfile{
			models.ProfileGeneral, models.ProfileJobSeeker,
		},
		Reasoning: fmt.Sprintf("Low unemployment (%.1f%%) and growing payrolls indicate strong labor demand. Workers have negotiating power for better positions and wages.",
			unrate.LatestValueOr(0)),
		RelevantIndicators: []string{"UNRATE", "PAYEMS"},
	}
}

func evalInflationSpending(ctx *ruleContext) *models.ActionRecommendation {
	cpi := ctx.get("CPIAUCSL")
	if cpi == nil || cpi.ChangePercentOrZero() <= 3 {
		return nil
	}

	return &models.ActionRecommendation{
		ID:          "inflation-spending",
		Category:    "spending",
		Icon:        "💳",
		Title:       "Combat Inflation Impact",
		Description: "Review budget, focus on necessities, consider inflation-protected assets",
		Priority:    models.PriorityHigh,
		Timeframe:   "immediate",
		Profiles: []models.UserProfile{
			models.ProfileGeneral, models.ProfileConservativeInvestor,
			models.ProfileRenter, models.ProfileHomeowner,
		},
		Reasoning: fmt.Sprintf("Inflation at %.1f%% erodes purchasing power. Review discretionary spending, shop strategically, consider I-Bonds or TIPS.",
			cpi.ChangePercentOrZero()),
		RelevantIndicators: []string{"CPIAUCSL"},
	}
}

func evalDebtPaydown(ctx *ruleContext) *models.ActionRecommendation {
	fedfunds := ctx.get("FEDFUNDS")
	if fedfunds == nil || fedfunds.Trend != models.TrendUp {
		return nil
	}

	return &models.ActionRecommendation{
		ID:          "debt-paydown",
		Category:    "debt",
		Icon:        "💰",
		Title:       "Pay Down Variable-Rate Debt",
		Description: "Focus on credit cards and variable loans as rates rise",
		Priority:    models.PriorityHigh,
		Timeframe:   "immediate",
		Profiles: []models.UserProfile{
			models.ProfileGeneral, models.ProfileHomeowner,
			models.ProfileRenter, models.ProfileBusinessOwner,
		},
		Reasoning: fmt.Sprintf("Fed raising rates to %.2f%% increases cost of variable-rate debt. Prioritize paying down credit cards, HELOCs, and variable-rate loans.",
			fedfunds.LatestValueOr(0)),
		RelevantIndicators: []string{"FEDFUNDS"},
	}
}

func evalRecessionPreparation(ctx *ruleContext) *models.ActionRecommendation {
	if ctx.recessionProb <= 0.5 {
		return nil
	}

	return &models.ActionRecommendation{
		ID:          "recession-preparation",
		Category:    "spending",
		Icon:        "📉",
		Title:       "Prepare for Economic Downturn",
		Description: "Reduce discretionary spending, delay major purchases",
		Priority:    models.PriorityCritical,
		Timeframe:   "immediate",
		Profiles: []models.UserProfile{
			models.ProfileGeneral, models.ProfileHomeowner,
			models.ProfileRenter, models.ProfileBusinessOwner,
		},
		Reasoning: fmt.Sprintf("Recession probability at %.0f%%. Conserve cash, defer non-essential purchases, prepare for potential income disruption.",
			ctx.recessionProb*100),
		RelevantIndicators: []string{"RECPROUSM156N"},
	}
}

func evalBusinessCashFlow(ctx *ruleContext) *models.ActionRecommendation {
	elevated := ctx.recessionProb > 0.3 ||
		ctx.overallRisk == models.RiskHigh ||
		ctx.overallRisk == models.RiskCritical
	if !elevated {
		return nil
	}

	priority := models.PriorityHigh
	if ctx.overallRisk == models.RiskCritical {
		priority = models.PriorityCritical
	}

	return &models.ActionRecommendation{
		ID:                 "business-cash-flow",
		Category:           "spending",
		Icon:               "🏢",
		Title:              "Strengthen Business Cash Position",
		Description:        "Build cash reserves, review expenses, secure credit lines",
		Priority:           priority,
		Timeframe:          "immediate",
		Profiles:           []models.UserProfile{models.ProfileBusinessOwner},
		Reasoning:          "Economic uncertainty ahead. Businesses should increase cash reserves, defer non-critical investments, and secure credit lines before conditions tighten.",
		RelevantIndicators: []string{"RECPROUSM156N", "FEDFUNDS"},
	}
}
