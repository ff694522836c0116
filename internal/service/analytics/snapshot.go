package analytics

import "github.com/growtlabs/growt/internal/domain/models"

// LatestSnapshots collapses a collection of annotated readings down to the
// most recent reading per animal. On identical timestamps the reading seen
// later in the input wins, which after the annotator's stable sort means the
// later raw input row. Output keeps first-seen RFID order, so the result is
// deterministic for a fixed input.
func LatestSnapshots(readings []models.AnnotatedReading) []models.AnnotatedReading {
	latest := make(map[string]models.AnnotatedReading, len(readings))
	order := make([]string, 0, len(readings))

	for _, r := range readings {
		current, ok := latest[r.RFID]
		if !ok {
			order = append(order, r.RFID)
			latest[r.RFID] = r
			continue
		}
		if !r.RecordedAt.Before(current.RecordedAt) {
			latest[r.RFID] = r
		}
	}

	out := make([]models.AnnotatedReading, 0, len(order))
	for _, rfid := range order {
		out = append(out, latest[rfid])
	}
	return out
}
