package models

// UserProfile selects which recommendations apply to the requesting user
type UserProfile string

const (
	ProfileGeneral              UserProfile = "general"
	ProfileConservativeInvestor UserProfile = "conservative-investor"
	ProfileAggressiveInvestor   UserProfile = "aggressive-investor"
	ProfileHomeowner            UserProfile = "homeowner"
	ProfileRenter               UserProfile = "renter"
	ProfileJobSeeker            UserProfile = "job-seeker"
	ProfileBusinessOwner        UserProfile = "business-owner"
)

// ValidProfile reports whether p is one of the known persona tags
func ValidProfile(p UserProfile) bool {
	switch p {
	case ProfileGeneral, ProfileConservativeInvestor, ProfileAggressiveInvestor,
		ProfileHomeowner, ProfileRenter, ProfileJobSeeker, ProfileBusinessOwner:
		return true
	}
	return false
}

// Priority ranks recommendations for display
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// PriorityRank orders critical < high < medium < low for sorting
func PriorityRank(p Priority) int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

// ActionRecommendation is one matched condition→action rule
type ActionRecommendation struct {
	ID                 string        `json:"id"`
	Category           string        `json:"category"`
	Icon               string        `json:"icon"`
	Title              string        `json:"title"`
	Description        string        `json:"description"`
	Priority           Priority      `json:"priority"`
	Timeframe          string        `json:"timeframe"`
	Profiles           []UserProfile `json:"profiles"`
	Reasoning          string        `json:"reasoning"`
	RelevantIndicators []string      `json:"relevantIndicators"`
}

// AppliesTo reports whether the recommendation targets the given persona
func (r ActionRecommendation) AppliesTo(profile UserProfile) bool {
	for _, p := range r.Profiles {
		if p == profile || p == ProfileGeneral {
			return true
		}
	}
	return false
}

// ActionPlan is the persona-filtered recommendation set for one snapshot
type ActionPlan struct {
	Profile         UserProfile            `json:"profile"`
	Recommendations []ActionRecommendation `json:"recommendations"`
	Summary         string                 `json:"summary"`
	EconomicOutlook string                 `json:"economicOutlook"`
}
