package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growtlabs/growt/internal/domain/models"
)

func monthlyFixture(t *testing.T) []models.AnnotatedReading {
	t.Helper()
	// A1 declines from 100 to 90; A2 gains from 50 to 55.
	rows := []models.RawReadingRow{
		rawRow("1", "A1", 100.0, "2025-01-10T08:00:00Z"),
		rawRow("2", "A2", 50.0, "2025-01-12T08:00:00Z"),
		rawRow("3", "A1", 90.0, "2025-02-10T08:00:00Z"),
		rawRow("4", "A2", 55.0, "2025-02-12T08:00:00Z"),
	}
	annotated, err := Annotate(rows, annotateRef)
	require.NoError(t, err)
	return annotated
}

func TestMonthlySeries_TwoMonthScenario(t *testing.T) {
	series := MonthlySeries(monthlyFixture(t), time.UTC)
	require.Len(t, series, 2)

	first, second := series[0], series[1]

	assert.Equal(t, "2025-01", first.MonthKey)
	assert.Equal(t, 2, first.TotalEntities)
	require.NotNil(t, first.AverageWeightKg)
	assert.Equal(t, 75.0, *first.AverageWeightKg)
	assert.Equal(t, 0, first.StuckOrDecliningCount)
	assert.Zero(t, first.TotalEntitiesPct)
	assert.Zero(t, first.AverageWeightPct)
	assert.Zero(t, first.StuckLossPct)
	assert.Equal(t, 100.0, first.HealthScore)
	assert.Zero(t, first.HealthScoreDelta)

	assert.Equal(t, "2025-02", second.MonthKey)
	assert.Equal(t, 2, second.TotalEntities)
	require.NotNil(t, second.AverageWeightKg)
	assert.Equal(t, 72.5, *second.AverageWeightKg)
	assert.Equal(t, 1, second.StuckOrDecliningCount, "A1 declined, A2 improved")
	assert.Zero(t, second.TotalEntitiesPct)
	assert.InDelta(t, -3.3333, second.AverageWeightPct, 0.001)
	assert.Equal(t, 50.0, second.StuckLossPct)

	// weightDownRisk 0.3333, stuckRisk saturated at 1.0:
	// combined = 0.3*0.3333 + 0.3*1.0 = 0.4 -> score 60.
	assert.InDelta(t, 60.0, second.HealthScore, 0.001)
	assert.InDelta(t, -40.0, second.HealthScoreDelta, 0.001)
}

func TestMonthlySeries_FirstReadingExcludedFromStuckCount(t *testing.T) {
	// A single first-ever reading defaults to stable but has no prior
	// comparison, so it must not count as stuck.
	rows := []models.RawReadingRow{
		rawRow("1", "A1", 100.0, "2025-01-10T08:00:00Z"),
	}
	annotated, err := Annotate(rows, annotateRef)
	require.NoError(t, err)

	series := MonthlySeries(annotated, time.UTC)
	require.Len(t, series, 1)
	assert.Equal(t, 0, series[0].StuckOrDecliningCount)
}

func TestMonthlySeries_AbsentMonthNotCarriedForward(t *testing.T) {
	rows := []models.RawReadingRow{
		rawRow("1", "A1", 100.0, "2025-01-10T08:00:00Z"),
		rawRow("2", "A2", 50.0, "2025-01-11T08:00:00Z"),
		rawRow("3", "A1", 105.0, "2025-03-10T08:00:00Z"),
	}
	annotated, err := Annotate(rows, annotateRef)
	require.NoError(t, err)

	series := MonthlySeries(annotated, time.UTC)
	require.Len(t, series, 2, "february has no readings and no point")

	assert.Equal(t, "2025-01", series[0].MonthKey)
	assert.Equal(t, "2025-03", series[1].MonthKey)
	assert.Equal(t, 1, series[1].TotalEntities, "A2 is not carried into march")
	assert.Equal(t, -50.0, series[1].TotalEntitiesPct)
}

func TestMonthlySeries_NoWeighedAnimalsYieldsNilAverage(t *testing.T) {
	rows := []models.RawReadingRow{
		rawRow("1", "A1", nil, "2025-01-10T08:00:00Z"),
	}
	annotated, err := Annotate(rows, annotateRef)
	require.NoError(t, err)

	series := MonthlySeries(annotated, time.UTC)
	require.Len(t, series, 1)
	assert.Equal(t, 1, series[0].TotalEntities)
	assert.Nil(t, series[0].AverageWeightKg)
}

func TestMonthlySeries_NilPriorAverageGuard(t *testing.T) {
	rows := []models.RawReadingRow{
		rawRow("1", "A1", nil, "2025-01-10T08:00:00Z"),
		rawRow("2", "A1", 80.0, "2025-02-10T08:00:00Z"),
	}
	annotated, err := Annotate(rows, annotateRef)
	require.NoError(t, err)

	series := MonthlySeries(annotated, time.UTC)
	require.Len(t, series, 2)
	assert.Zero(t, series[1].AverageWeightPct, "no prior average to compare against")
}

func TestMonthlySeries_MonthKeyUsesReportingTimezone(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	// 2025-01-31T20:00Z is already February 1st in UTC+7.
	rows := []models.RawReadingRow{
		rawRow("1", "A1", 100.0, "2025-01-31T20:00:00Z"),
	}
	annotated, err := Annotate(rows, annotateRef)
	require.NoError(t, err)

	series := MonthlySeries(annotated, jakarta)
	require.Len(t, series, 1)
	assert.Equal(t, "2025-02", series[0].MonthKey)

	utcSeries := MonthlySeries(annotated, time.UTC)
	require.Len(t, utcSeries, 1)
	assert.Equal(t, "2025-01", utcSeries[0].MonthKey)
}

func TestMonthlySeries_Empty(t *testing.T) {
	assert.Empty(t, MonthlySeries(nil, time.UTC))
}

func TestMonthlySeries_Deterministic(t *testing.T) {
	annotated := monthlyFixture(t)
	assert.Equal(t, MonthlySeries(annotated, time.UTC), MonthlySeries(annotated, time.UTC))
}
