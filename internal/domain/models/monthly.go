package models

// MonthlyPoint is one row of the herd's monthly KPI series. Points exist only
// for calendar months that actually contain readings; the series is never
// persisted and is recomputed on every request.
type MonthlyPoint struct {
	MonthKey              string   `json:"month_key"` // YYYY-MM in the reporting timezone
	TotalEntities         int      `json:"total_entities"`
	AverageWeightKg       *float64 `json:"average_weight_kg"`
	StuckOrDecliningCount int      `json:"stuck_or_declining_count"`

	// Month-over-month signals. All zero for the first month in the series.
	TotalEntitiesPct float64 `json:"total_entities_pct"`
	AverageWeightPct float64 `json:"average_weight_pct"`
	StuckLossPct     float64 `json:"stuck_loss_pct"` // share of the current month's herd, not a MoM delta

	HealthScore      float64 `json:"health_score"`
	HealthScoreDelta float64 `json:"health_score_delta"`
}
