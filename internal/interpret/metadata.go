// Package interpret derives human-readable interpretation from raw indicator
// summaries: trend/sentiment/severity classification, category grouping,
// health scoring and headline insights. Everything here is a pure function of
// the input snapshot plus a static metadata table; nothing is persisted.
package interpret

import (
	"sort"

	"github.com/apetrov/econ-tracker/pkg/models"
)

// Range bounds a healthy band for an indicator value
type Range struct {
	Min float64
	Max float64
}

// Benchmarks are reference levels used for the comparison string.
// Nil means the benchmark is not defined for the indicator.
type Benchmarks struct {
	PreCovidAvg   *float64
	HistoricalAvg *float64
	Recession     *float64
	Expansion     *float64
}

// Formatting controls how values are rendered
type Formatting struct {
	Suffix     string
	Decimals   int
	IsCurrency bool
}

// Metadata is the static reference entry for one series code
type Metadata struct {
	SeriesID      string
	Category      models.Category
	Priority      int
	DisplayOrder  int
	GoodDirection models.Trend
	TargetRange   *Range
	WhatItMeans   string
	WhyItMatters  string
	GoodRange     string
	WhatDrives    string
	RisingMeans   string
	FallingMeans  string
	Benchmarks    Benchmarks
	Formatting    Formatting
}

// CategoryInfo is display metadata for one category
type CategoryInfo struct {
	ID          models.Category
	Name        string
	Icon        string
	Description string
	Color       string
}

func f(v float64) *float64 { return &v }

// CategoryDisplay maps categories to their dashboard presentation
var CategoryDisplay = map[models.Category]CategoryInfo{
	models.CategoryEmployment: {
		ID:          models.CategoryEmployment,
		Name:        "Employment & Labor",
		Icon:        "💼",
		Description: "Job market health and workforce participation",
		Color:       "#667eea",
	},
	models.CategoryInflation: {
		ID:          models.CategoryInflation,
		Name:        "Inflation & Prices",
		Icon:        "💵",
		Description: "Price levels and purchasing power",
		Color:       "#f093fb",
	},
	models.CategoryGrowth: {
		ID:          models.CategoryGrowth,
		Name:        "Economic Growth",
		Icon:        "📈",
		Description: "Overall economic output and activity",
		Color:       "#43e97b",
	},
	models.CategoryMarkets: {
		ID:          models.CategoryMarkets,
		Name:        "Markets & Rates",
		Icon:        "💰",
		Description: "Financial markets and interest rates",
		Color:       "#4facfe",
	},
	models.CategoryHousing: {
		ID:          models.CategoryHousing,
		Name:        "Housing Market",
		Icon:        "🏠",
		Description: "Real estate prices and mortgage rates",
		Color:       "#fa709a",
	},
	models.CategoryConsumer: {
		ID:          models.CategoryConsumer,
		Name:        "Consumer Health",
		Icon:        "🛒",
		Description: "Consumer spending and sentiment",
		Color:       "#fee140",
	},
}

// CategoryOrder fixes dashboard ordering; categories outside this list are
// appended in discovery order.
var CategoryOrder = []models.Category{
	models.CategoryEmployment,
	models.CategoryInflation,
	models.CategoryGrowth,
	models.CategoryMarkets,
	models.CategoryHousing,
	models.CategoryConsumer,
}

// registryOrder preserves insertion order for ListByCategory tie-breaks
var registryOrder = []string{
	"UNRATE", "PAYEMS",
	"CPIAUCSL", "PPIACO",
	"GDPC1", "INDPRO",
	"FEDFUNDS", "GS10", "SP500", "RECPROUSM156N",
	"MORTGAGE30US",
	"PCE",
}

var registry = map[string]Metadata{
	// EMPLOYMENT & LABOR
	"UNRATE": {
		SeriesID:      "UNRATE",
		Category:      models.CategoryEmployment,
		Priority:      1,
		DisplayOrder:  1,
		GoodDirection: models.TrendDown,
		TargetRange:   &Range{Min: 3.5, Max: 5.0},
		WhatItMeans:   "Percentage of people actively looking for work who cannot find jobs",
		WhyItMatters:  "Low unemployment indicates a strong job market and healthy economy",
		GoodRange:     "3.5-5.0% is considered healthy full employment",
		WhatDrives:    "Job creation/losses, labor force participation, economic growth, business confidence, and seasonal factors",
		RisingMeans:   "Job losses, weakening economy, reduced consumer spending power, potential recession signal",
		FallingMeans:  "Job creation, economic expansion, increased consumer spending, but if too low may cause wage inflation",
		Benchmarks:    Benchmarks{PreCovidAvg: f(3.7), HistoricalAvg: f(5.7), Recession: f(8.0), Expansion: f(4.0)},
		Formatting:    Formatting{Suffix: "%", Decimals: 1},
	},
	"PAYEMS": {
		SeriesID:      "PAYEMS",
		Category:      models.CategoryEmployment,
		Priority:      2,
		DisplayOrder:  2,
		GoodDirection: models.TrendUp,
		WhatItMeans:   "Total number of employees on nonfarm payrolls (in thousands)",
		WhyItMatters:  "Rising payrolls indicate job creation and economic expansion",
		GoodRange:     "Steady growth of 150,000+ jobs per month is healthy",
		WhatDrives:    "Business expansion/contraction, economic growth, consumer demand, productivity, and automation trends",
		RisingMeans:   "Job creation, economic growth, increased income and spending, tightening labor market",
		FallingMeans:  "Layoffs, business contraction, recession risk, reduced consumer spending power",
		Benchmarks:    Benchmarks{PreCovidAvg: f(152000), HistoricalAvg: f(140000), Recession: f(130000), Expansion: f(160000)},
		Formatting:    Formatting{Suffix: "K", Decimals: 0},
	},

	// INFLATION & PRICES
	"CPIAUCSL": {
		SeriesID:      "CPIAUCSL",
		Category:      models.CategoryInflation,
		Priority:      1,
		DisplayOrder:  1,
		GoodDirection: models.TrendDown,
		TargetRange:   &Range{Min: 1.5, Max: 2.5},
		WhatItMeans:   "Measures average change in prices paid by urban consumers for goods and services",
		WhyItMatters:  "High inflation erodes purchasing power; too low can signal weak demand",
		GoodRange:     "Fed targets around 2% annual increase",
		WhatDrives:    "Supply/demand balance, energy prices, wage growth, monetary policy, global supply chains",
		RisingMeans:   "Eroding purchasing power, potential Fed rate hikes, reduced consumer spending, higher cost of living",
		FallingMeans:  "Increased purchasing power, potential Fed rate cuts, but if too low may signal weak demand or deflation risk",
		Benchmarks:    Benchmarks{PreCovidAvg: f(252), HistoricalAvg: f(230), Recession: f(240), Expansion: f(255)},
		Formatting:    Formatting{Decimals: 2},
	},
	"PPIACO": {
		SeriesID:      "PPIACO",
		Category:      models.CategoryInflation,
		Priority:      3,
		DisplayOrder:  2,
		GoodDirection: models.TrendDown,
		WhatItMeans:   "Measures average change in prices received by domestic producers",
		WhyItMatters:  "Leading indicator for consumer inflation; shows upstream price pressures",
		GoodRange:     "Moderate growth around 2% annually",
		WhatDrives:    "Raw material costs, energy prices, labor costs, global commodity prices, supply chain efficiency",
		RisingMeans:   "Producer cost pressures, likely future consumer price increases, margin compression for businesses",
		FallingMeans:  "Easing input costs, potential consumer price relief, improving business margins",
		Benchmarks:    Benchmarks{PreCovidAvg: f(195), HistoricalAvg: f(180), Recession: f(185), Expansion: f(200)},
		Formatting:    Formatting{Decimals: 2},
	},

	// ECONOMIC GROWTH
	"GDPC1": {
		SeriesID:      "GDPC1",
		Category:      models.CategoryGrowth,
		Priority:      1,
		DisplayOrder:  1,
		GoodDirection: models.TrendUp,
		WhatItMeans:   "Total value of all goods and services produced, adjusted for inflation",
		WhyItMatters:  "The primary measure of economic growth and overall economic health",
		GoodRange:     "Growth of 2-3% annually is considered healthy",
		WhatDrives:    "Consumer spending, business investment, government spending, exports minus imports, productivity gains",
		RisingMeans:   "Economic expansion, job creation, business growth, rising incomes, increased tax revenues",
		FallingMeans:  "Economic contraction, potential recession, job losses, declining corporate profits",
		Benchmarks:    Benchmarks{PreCovidAvg: f(19000), HistoricalAvg: f(17500), Recession: f(18000), Expansion: f(19500)},
		Formatting:    Formatting{Suffix: "B", Decimals: 2, IsCurrency: true},
	},
	"INDPRO": {
		SeriesID:      "INDPRO",
		Category:      models.CategoryGrowth,
		Priority:      2,
		DisplayOrder:  2,
		GoodDirection: models.TrendUp,
		WhatItMeans:   "Measures output of manufacturing, mining, and utilities sectors",
		WhyItMatters:  "Key indicator of industrial sector health and economic activity",
		GoodRange:     "Steady positive growth indicates expanding production",
		WhatDrives:    "Manufacturing demand, capacity utilization, new orders, inventory levels, export demand",
		RisingMeans:   "Strong manufacturing sector, business expansion, increased hiring, supply meeting demand",
		FallingMeans:  "Weak manufacturing, potential layoffs, reduced business investment, weakening economic activity",
		Benchmarks:    Benchmarks{PreCovidAvg: f(109), HistoricalAvg: f(100), Recession: f(95), Expansion: f(110)},
		Formatting:    Formatting{Decimals: 2},
	},

	// MARKETS & RATES
	"FEDFUNDS": {
		SeriesID:      "FEDFUNDS",
		Category:      models.CategoryMarkets,
		Priority:      1,
		DisplayOrder:  1,
		GoodDirection: models.TrendDown,
		WhatItMeans:   "Interest rate at which banks lend to each other overnight",
		WhyItMatters:  "Fed uses this to control inflation and stimulate/cool the economy",
		GoodRange:     "Depends on economic conditions; higher to fight inflation, lower to boost growth",
		WhatDrives:    "Federal Reserve policy decisions based on inflation, unemployment, and economic growth targets",
		RisingMeans:   "Fed fighting inflation, higher borrowing costs, slowing economic activity, stronger dollar, potential housing market cooling",
		FallingMeans:  "Fed stimulating economy, lower borrowing costs, encouraging investment and spending, weaker dollar",
		Benchmarks:    Benchmarks{PreCovidAvg: f(1.75), HistoricalAvg: f(3.5), Recession: f(0.25), Expansion: f(2.5)},
		Formatting:    Formatting{Suffix: "%", Decimals: 2},
	},
	"GS10": {
		SeriesID:      "GS10",
		Category:      models.CategoryMarkets,
		Priority:      2,
		DisplayOrder:  2,
		GoodDirection: models.TrendDown,
		WhatItMeans:   "Yield on 10-year U.S. Treasury bonds",
		WhyItMatters:  "Benchmark for mortgage rates and corporate borrowing; reflects economic expectations",
		GoodRange:     "Varies with inflation expectations and economic conditions",
		WhatDrives:    "Inflation expectations, Fed policy, economic growth outlook, global demand for safe assets, government borrowing",
		RisingMeans:   "Higher borrowing costs, mortgage rates up, bond prices down, often signals economic growth or inflation fears",
		FallingMeans:  "Lower borrowing costs, mortgage rates down, bond prices up, often signals economic uncertainty or recession fears",
		Benchmarks:    Benchmarks{PreCovidAvg: f(2.0), HistoricalAvg: f(4.5), Recession: f(1.5), Expansion: f(3.0)},
		Formatting:    Formatting{Suffix: "%", Decimals: 2},
	},
	"SP500": {
		SeriesID:      "SP500",
		Category:      models.CategoryMarkets,
		Priority:      1,
		DisplayOrder:  3,
		GoodDirection: models.TrendUp,
		WhatItMeans:   "Stock market index of 500 largest U.S. public companies",
		WhyItMatters:  "Reflects investor confidence and corporate profitability",
		GoodRange:     "Steady long-term growth with moderate volatility",
		WhatDrives:    "Corporate earnings, economic growth, interest rates, investor sentiment, geopolitical events, Fed policy",
		RisingMeans:   "Strong investor confidence, positive economic outlook, wealth effect boosts spending, rising retirement accounts",
		FallingMeans:  "Investor uncertainty, economic concerns, potential recession fears, declining household wealth",
		Benchmarks:    Benchmarks{PreCovidAvg: f(3230), HistoricalAvg: f(2500), Recession: f(2200), Expansion: f(3500)},
		Formatting:    Formatting{Decimals: 2},
	},
	"RECPROUSM156N": {
		SeriesID:      "RECPROUSM156N",
		Category:      models.CategoryMarkets,
		Priority:      2,
		DisplayOrder:  4,
		GoodDirection: models.TrendDown,
		WhatItMeans:   "Probability that U.S. economy is in recession based on yield curve",
		WhyItMatters:  "Early warning indicator for potential economic downturns",
		GoodRange:     "Below 20% is low risk; above 30% signals elevated recession risk",
		WhatDrives:    "Yield curve shape (spread between long and short-term rates), Fed policy, economic growth expectations",
		RisingMeans:   "Increased recession risk, inverted yield curve, potential economic slowdown ahead, flight to safety",
		FallingMeans:  "Lower recession risk, normal yield curve, positive economic outlook, investor confidence improving",
		Benchmarks:    Benchmarks{PreCovidAvg: f(5), HistoricalAvg: f(15), Recession: f(60), Expansion: f(10)},
		Formatting:    Formatting{Suffix: "%", Decimals: 1},
	},

	// HOUSING MARKET
	"MORTGAGE30US": {
		SeriesID:      "MORTGAGE30US",
		Category:      models.CategoryHousing,
		Priority:      1,
		DisplayOrder:  1,
		GoodDirection: models.TrendDown,
		WhatItMeans:   "Average interest rate on 30-year fixed-rate mortgages",
		WhyItMatters:  "Directly impacts home affordability and housing market activity",
		GoodRange:     "Below 4% historically favorable; above 7% significantly impacts affordability",
		WhatDrives:    "10-year Treasury yields, Fed policy, inflation expectations, housing demand, lender risk assessments",
		RisingMeans:   "Reduced home affordability, slower housing market, fewer refinancings, potential price corrections",
		FallingMeans:  "Improved affordability, increased home buying, refinancing boom, potential housing price increases",
		Benchmarks:    Benchmarks{PreCovidAvg: f(3.9), HistoricalAvg: f(6.0), Recession: f(3.5), Expansion: f(4.5)},
		Formatting:    Formatting{Suffix: "%", Decimals: 2},
	},

	// CONSUMER HEALTH
	"PCE": {
		SeriesID:      "PCE",
		Category:      models.CategoryConsumer,
		Priority:      1,
		DisplayOrder:  1,
		GoodDirection: models.TrendUp,
		WhatItMeans:   "Total spending by consumers on goods and services",
		WhyItMatters:  "Consumer spending drives ~70% of U.S. economy; key growth indicator",
		GoodRange:     "Steady growth indicates healthy consumer confidence",
		WhatDrives:    "Employment levels, wage growth, consumer confidence, credit availability, savings rates, wealth effects",
		RisingMeans:   "Strong consumer confidence, economic growth, business expansion, job creation, but may fuel inflation",
		FallingMeans:  "Weak consumer confidence, economic slowdown, potential recession, business contraction, deflation risk",
		Benchmarks:    Benchmarks{PreCovidAvg: f(14500), HistoricalAvg: f(13000), Recession: f(13500), Expansion: f(15000)},
		Formatting:    Formatting{Suffix: "B", Decimals: 2, IsCurrency: true},
	},
}

// Lookup returns the metadata for a series code, nil when the series is not
// in the registry. Callers must treat a miss as a first-class case.
func Lookup(seriesName string) *Metadata {
	if md, ok := registry[seriesName]; ok {
		return &md
	}
	return nil
}

// CategoryOf returns the category for a series code, CategoryUnknown on miss
func CategoryOf(seriesName string) models.Category {
	if md, ok := registry[seriesName]; ok {
		return md.Category
	}
	return models.CategoryUnknown
}

// ListByCategory groups registry entries by category, sorted by display
// order within each category, insertion order breaking ties.
func ListByCategory() map[models.Category][]Metadata {
	grouped := make(map[models.Category][]Metadata)

	for _, name := range registryOrder {
		md := registry[name]
		grouped[md.Category] = append(grouped[md.Category], md)
	}

	for _, entries := range grouped {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].DisplayOrder < entries[j].DisplayOrder
		})
	}

	return grouped
}
