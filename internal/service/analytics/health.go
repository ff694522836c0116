package analytics

import "math"

// Risk weighting for the monthly health index. The divisors are the
// percentage drop (or stuck share) at which each risk term saturates at 1.0.
// Domain constants: changing any of them rewrites every historical score.
const (
	headcountDropSaturationPct = 20.0
	weightDropSaturationPct    = 10.0
	stuckShareSaturationPct    = 40.0

	headcountRiskWeight = 0.4
	weightRiskWeight    = 0.3
	stuckRiskWeight     = 0.3
)

// HealthScore converts one month's percentage signals into a composite score
// bounded to [0,100]. Only decreases carry risk; a growing herd or rising
// average weight contributes zero risk but is never rewarded past 100.
func HealthScore(totalEntitiesPct, averageWeightPct, stuckLossPct float64) float64 {
	growthDownRisk := clamp01(math.Max(0, -totalEntitiesPct) / headcountDropSaturationPct)
	weightDownRisk := clamp01(math.Max(0, -averageWeightPct) / weightDropSaturationPct)
	stuckRisk := clamp01(stuckLossPct / stuckShareSaturationPct)

	combined := headcountRiskWeight*growthDownRisk +
		weightRiskWeight*weightDownRisk +
		stuckRiskWeight*stuckRisk

	return math.Max(0, 100*(1-combined))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
