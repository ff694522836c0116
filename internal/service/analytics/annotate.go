package analytics

import (
	"sort"
	"time"

	"github.com/growtlabs/growt/internal/domain/models"
)

// Annotate validates a raw batch and derives delta, status, age and life
// stage for every reading. ref is the request-time instant ages are computed
// against; historical rows therefore carry the animal's current age, not its
// age at weighing time.
//
// Output order is (rfid asc, recordedAt asc); callers re-sort for display.
func Annotate(rows []models.RawReadingRow, ref time.Time) ([]models.AnnotatedReading, error) {
	readings, err := NormalizeRows(rows)
	if err != nil {
		return nil, err
	}
	return annotateReadings(readings, ref), nil
}

// annotateReadings folds once over the chronologically sorted batch with a
// per-invocation lastWeightSeen map. The sort is the load-bearing invariant:
// delta correctness depends on visiting each animal's readings in true
// chronological order.
func annotateReadings(readings []models.Reading, ref time.Time) []models.AnnotatedReading {
	sorted := make([]models.Reading, len(readings))
	copy(sorted, readings)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].RFID != sorted[j].RFID {
			return sorted[i].RFID < sorted[j].RFID
		}
		return sorted[i].RecordedAt.Before(sorted[j].RecordedAt)
	})

	lastWeightSeen := make(map[string]*float64, len(sorted))
	out := make([]models.AnnotatedReading, 0, len(sorted))

	for _, r := range sorted {
		prev, seen := lastWeightSeen[r.RFID]

		var delta *float64
		status := models.StatusStable
		if seen && prev != nil && r.WeightKg != nil {
			d := *r.WeightKg - *prev
			delta = &d
			switch {
			case d > 0:
				status = models.StatusImproving
			case d < 0:
				status = models.StatusDeclining
			}
		}

		// A nil weight is recorded too, so it breaks the delta chain for the
		// next reading of the same animal.
		lastWeightSeen[r.RFID] = r.WeightKg

		var age *models.AgeParts
		if r.Animal != nil {
			age = AgeAt(r.Animal.DOB, ref)
		}

		out = append(out, models.AnnotatedReading{
			Reading:   r,
			DeltaKg:   delta,
			Status:    status,
			Age:       age,
			LifeStage: StageFor(age),
		})
	}

	return out
}

// NewestFirst returns a copy sorted for display: most recent reading first.
// The sort is stable, so same-instant readings keep their annotated order.
func NewestFirst(readings []models.AnnotatedReading) []models.AnnotatedReading {
	out := make([]models.AnnotatedReading, len(readings))
	copy(out, readings)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecordedAt.After(out[j].RecordedAt)
	})
	return out
}
