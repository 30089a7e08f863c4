package models

// ActionCount is one row of the actions-by-type breakdown.
type ActionCount struct {
	Action string `json:"action"`
	Count  int    `json:"count"`
}

// AdminActivity is one row of the active-admins breakdown.
type AdminActivity struct {
	AdminID     int64  `json:"admin_id"`
	AdminName   string `json:"admin_name"`
	ActionCount int    `json:"action_count"`
}

// TimeBucket is one hourly bucket of the actions-over-time series.
type TimeBucket struct {
	Hour  string `json:"hour"`
	Count int    `json:"count"`
}

// ActivityStats is the precomputed activity statistics payload. The backend
// claims ActionsByType is sorted by count descending; logwatch re-sorts it
// anyway before use.
type ActivityStats struct {
	TotalActions    int             `json:"total_actions"`
	ActionsByType   []ActionCount   `json:"actions_by_type"`
	ActiveAdmins    []AdminActivity `json:"active_admins"`
	ActionsOverTime []TimeBucket    `json:"actions_over_time"`
	TimeRangeHours  int             `json:"time_range_hours"`
}
