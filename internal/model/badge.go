package model

// Badge describes an achievement the platform can award.  EarnedAt is set
// only in responses about badges the current user has earned.
type Badge struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Icon          string `json:"icon"`
	Tier          string `json:"tier"`
	CriteriaType  string `json:"criteriaType"`
	CriteriaValue int    `json:"criteriaValue"`
	CreatedAt     Time   `json:"createdAt"`
	EarnedAt      *Time  `json:"earnedAt,omitempty"`
}

// BadgeProgress reports how far the current user is toward one badge.
// The my-progress endpoint returns a map keyed by badge name.
type BadgeProgress struct {
	BadgeName     string `json:"badgeName"`
	CurrentValue  int64  `json:"currentValue"`
	CriteriaValue int    `json:"criteriaValue"`
	Earned        bool   `json:"earned"`
	Percentage    int    `json:"percentage"`
}
