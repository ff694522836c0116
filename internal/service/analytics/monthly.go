package analytics

import (
	"sort"
	"time"

	"github.com/growtlabs/growt/internal/domain/models"
)

const monthKeyLayout = "2006-01"

// MonthlySeries groups readings by calendar month in the given reporting
// timezone and reduces each month to herd-level KPIs plus the health index.
// Only months that actually contain readings appear; there is no gap filling
// and an animal absent from a month is not carried forward into it.
func MonthlySeries(readings []models.AnnotatedReading, loc *time.Location) []models.MonthlyPoint {
	if loc == nil {
		loc = time.UTC
	}

	buckets := make(map[string][]models.AnnotatedReading)
	for _, r := range readings {
		key := r.RecordedAt.In(loc).Format(monthKeyLayout)
		buckets[key] = append(buckets[key], r)
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	points := make([]models.MonthlyPoint, 0, len(keys))
	for i, key := range keys {
		point := reduceMonth(key, buckets[key])

		if i > 0 {
			prev := points[i-1]
			point.TotalEntitiesPct = percentChangeInt(prev.TotalEntities, point.TotalEntities)
			point.AverageWeightPct = percentChangeWeight(prev.AverageWeightKg, point.AverageWeightKg)
			if point.TotalEntities > 0 {
				point.StuckLossPct = float64(point.StuckOrDecliningCount) / float64(point.TotalEntities) * 100
			}
		}

		point.HealthScore = HealthScore(point.TotalEntitiesPct, point.AverageWeightPct, point.StuckLossPct)
		if i > 0 {
			point.HealthScoreDelta = point.HealthScore - points[i-1].HealthScore
		}

		points = append(points, point)
	}

	return points
}

// reduceMonth computes the per-month absolutes from that month's latest
// snapshot per animal. An animal on its first-ever reading has no delta and
// is excluded from the stuck/declining count even though its status defaults
// to stable.
func reduceMonth(key string, readings []models.AnnotatedReading) models.MonthlyPoint {
	snapshots := LatestSnapshots(readings)

	point := models.MonthlyPoint{
		MonthKey:      key,
		TotalEntities: len(snapshots),
	}

	var weightSum float64
	var weighed int
	for _, s := range snapshots {
		if s.WeightKg != nil {
			weightSum += *s.WeightKg
			weighed++
		}
		if s.DeltaKg != nil && (s.Status == models.StatusStable || s.Status == models.StatusDeclining) {
			point.StuckOrDecliningCount++
		}
	}

	if weighed > 0 {
		average := weightSum / float64(weighed)
		point.AverageWeightKg = &average
	}

	return point
}

// percentChangeInt is the guarded month-over-month change for headcounts.
// A zero prior yields 0, never a division error.
func percentChangeInt(prev, curr int) float64 {
	if prev == 0 {
		return 0
	}
	return float64(curr-prev) / float64(prev) * 100
}

// percentChangeWeight is the same guard for nullable average weights.
func percentChangeWeight(prev, curr *float64) float64 {
	if prev == nil || *prev == 0 || curr == nil {
		return 0
	}
	return (*curr - *prev) / *prev * 100
}
