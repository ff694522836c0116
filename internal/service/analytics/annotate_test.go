package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growtlabs/growt/internal/domain/models"
)

var annotateRef = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func rawRow(id, rfid string, weight interface{}, recordedAt string) models.RawReadingRow {
	return models.RawReadingRow{ID: id, RFID: rfid, WeightKg: weight, RecordedAt: recordedAt}
}

func TestAnnotate_SimpleGain(t *testing.T) {
	rows := []models.RawReadingRow{
		rawRow("1", "A1", 100.0, "2025-01-10T08:00:00Z"),
		rawRow("2", "A1", 110.0, "2025-02-10T08:00:00Z"),
	}

	annotated, err := Annotate(rows, annotateRef)
	require.NoError(t, err)
	require.Len(t, annotated, 2)

	first, second := annotated[0], annotated[1]

	assert.Nil(t, first.DeltaKg)
	assert.Equal(t, models.StatusStable, first.Status)

	require.NotNil(t, second.DeltaKg)
	assert.Equal(t, 10.0, *second.DeltaKg)
	assert.Equal(t, models.StatusImproving, second.Status)
}

func TestAnnotate_Decline(t *testing.T) {
	rows := []models.RawReadingRow{
		rawRow("1", "A1", 100.0, "2025-01-10T08:00:00Z"),
		rawRow("2", "A1", 97.5, "2025-02-10T08:00:00Z"),
	}

	annotated, err := Annotate(rows, annotateRef)
	require.NoError(t, err)

	require.NotNil(t, annotated[1].DeltaKg)
	assert.Equal(t, -2.5, *annotated[1].DeltaKg)
	assert.Equal(t, models.StatusDeclining, annotated[1].Status)
}

func TestAnnotate_ZeroDeltaIsStable(t *testing.T) {
	rows := []models.RawReadingRow{
		rawRow("1", "A1", 100.0, "2025-01-10T08:00:00Z"),
		rawRow("2", "A1", 100.0, "2025-02-10T08:00:00Z"),
	}

	annotated, err := Annotate(rows, annotateRef)
	require.NoError(t, err)

	require.NotNil(t, annotated[1].DeltaKg)
	assert.Equal(t, 0.0, *annotated[1].DeltaKg)
	assert.Equal(t, models.StatusStable, annotated[1].Status)
}

func TestAnnotate_FirstReadingPerAnimal(t *testing.T) {
	rows := []models.RawReadingRow{
		rawRow("1", "A2", 50.0, "2025-01-10T08:00:00Z"),
	}

	annotated, err := Annotate(rows, annotateRef)
	require.NoError(t, err)
	require.Len(t, annotated, 1)
	assert.Nil(t, annotated[0].DeltaKg)
	assert.Equal(t, models.StatusStable, annotated[0].Status)
}

func TestAnnotate_UnorderedInputSortedPerAnimal(t *testing.T) {
	// Interleaved and reversed input; deltas must follow true chronology.
	rows := []models.RawReadingRow{
		rawRow("4", "B2", 62.0, "2025-03-01T08:00:00Z"),
		rawRow("1", "A1", 110.0, "2025-02-01T08:00:00Z"),
		rawRow("3", "B2", 60.0, "2025-01-01T08:00:00Z"),
		rawRow("2", "A1", 100.0, "2025-01-01T08:00:00Z"),
	}

	annotated, err := Annotate(rows, annotateRef)
	require.NoError(t, err)
	require.Len(t, annotated, 4)

	// Output order is (rfid asc, recordedAt asc).
	assert.Equal(t, []string{"A1", "A1", "B2", "B2"},
		[]string{annotated[0].RFID, annotated[1].RFID, annotated[2].RFID, annotated[3].RFID})

	require.NotNil(t, annotated[1].DeltaKg)
	assert.Equal(t, 10.0, *annotated[1].DeltaKg)
	require.NotNil(t, annotated[3].DeltaKg)
	assert.Equal(t, 2.0, *annotated[3].DeltaKg)
}

func TestAnnotate_NilWeightBreaksDeltaChain(t *testing.T) {
	rows := []models.RawReadingRow{
		rawRow("1", "A1", 100.0, "2025-01-01T08:00:00Z"),
		rawRow("2", "A1", nil, "2025-02-01T08:00:00Z"),
		rawRow("3", "A1", 105.0, "2025-03-01T08:00:00Z"),
	}

	annotated, err := Annotate(rows, annotateRef)
	require.NoError(t, err)
	require.Len(t, annotated, 3)

	assert.Nil(t, annotated[1].DeltaKg)
	assert.Equal(t, models.StatusStable, annotated[1].Status)

	// The unmeasured reading replaced the last seen weight, so the next
	// numeric reading has nothing to compare against.
	assert.Nil(t, annotated[2].DeltaKg)
	assert.Equal(t, models.StatusStable, annotated[2].Status)
}

func TestAnnotate_StatusMatchesDeltaSign(t *testing.T) {
	rows := []models.RawReadingRow{
		rawRow("1", "A1", 100.0, "2025-01-01T08:00:00Z"),
		rawRow("2", "A1", 102.0, "2025-02-01T08:00:00Z"),
		rawRow("3", "A1", 99.0, "2025-03-01T08:00:00Z"),
		rawRow("4", "A1", 99.0, "2025-04-01T08:00:00Z"),
		rawRow("5", "B1", nil, "2025-01-01T08:00:00Z"),
	}

	annotated, err := Annotate(rows, annotateRef)
	require.NoError(t, err)

	for _, r := range annotated {
		switch {
		case r.DeltaKg == nil:
			assert.Equal(t, models.StatusStable, r.Status)
		case *r.DeltaKg > 0:
			assert.Equal(t, models.StatusImproving, r.Status)
		case *r.DeltaKg < 0:
			assert.Equal(t, models.StatusDeclining, r.Status)
		default:
			assert.Equal(t, models.StatusStable, r.Status)
		}
	}
}

func TestAnnotate_AgeUsesReferenceInstantNotReadingTime(t *testing.T) {
	attrs := &models.AnimalAttrs{DOB: "2024-06-01"}
	rows := []models.RawReadingRow{
		{ID: "1", RFID: "A1", WeightKg: 40.0, RecordedAt: "2024-07-01T08:00:00Z", Animal: attrs},
		{ID: "2", RFID: "A1", WeightKg: 55.0, RecordedAt: "2025-05-01T08:00:00Z", Animal: attrs},
	}

	annotated, err := Annotate(rows, annotateRef)
	require.NoError(t, err)

	// Both readings show the animal's age as of the request, one year here,
	// not its age at weighing time.
	for _, r := range annotated {
		require.NotNil(t, r.Age)
		assert.Equal(t, 1, r.Age.Years)
		assert.Equal(t, 0, r.Age.Months)
		require.NotNil(t, r.LifeStage)
		assert.Equal(t, models.StageJuvenile, *r.LifeStage)
	}
}

func TestAnnotate_MissingAttrsYieldNilAge(t *testing.T) {
	rows := []models.RawReadingRow{
		rawRow("1", "A1", 40.0, "2025-01-01T08:00:00Z"),
		{ID: "2", RFID: "A2", WeightKg: 41.0, RecordedAt: "2025-01-01T08:00:00Z", Animal: &models.AnimalAttrs{DOB: "junk"}},
	}

	annotated, err := Annotate(rows, annotateRef)
	require.NoError(t, err)

	for _, r := range annotated {
		assert.Nil(t, r.Age)
		assert.Nil(t, r.LifeStage)
	}
}

func TestAnnotate_MalformedRowRejectsBatch(t *testing.T) {
	rows := []models.RawReadingRow{
		rawRow("1", "A1", 100.0, "2025-01-01T08:00:00Z"),
		rawRow("2", "", 90.0, "2025-01-02T08:00:00Z"),
	}

	annotated, err := Annotate(rows, annotateRef)
	require.Error(t, err)
	assert.Nil(t, annotated)
}

func TestAnnotate_Deterministic(t *testing.T) {
	rows := []models.RawReadingRow{
		rawRow("3", "B2", 60.0, "2025-01-01T08:00:00Z"),
		rawRow("1", "A1", 100.0, "2025-01-01T08:00:00Z"),
		rawRow("2", "A1", 110.0, "2025-02-01T08:00:00Z"),
		rawRow("4", "B2", nil, "2025-02-01T08:00:00Z"),
	}

	first, err := Annotate(rows, annotateRef)
	require.NoError(t, err)
	second, err := Annotate(rows, annotateRef)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNewestFirst(t *testing.T) {
	rows := []models.RawReadingRow{
		rawRow("1", "A1", 100.0, "2025-01-01T08:00:00Z"),
		rawRow("2", "B1", 50.0, "2025-03-01T08:00:00Z"),
		rawRow("3", "A1", 110.0, "2025-02-01T08:00:00Z"),
	}

	annotated, err := Annotate(rows, annotateRef)
	require.NoError(t, err)

	ordered := NewestFirst(annotated)
	require.Len(t, ordered, 3)
	assert.Equal(t, "B1", ordered[0].RFID)
	assert.Equal(t, "A1", ordered[1].RFID)
	require.NotNil(t, ordered[1].DeltaKg)
	assert.Equal(t, 10.0, *ordered[1].DeltaKg)
	assert.Equal(t, "A1", ordered[2].RFID)
	assert.Nil(t, ordered[2].DeltaKg)
}
