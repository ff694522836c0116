package analytics

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/growtlabs/growt/internal/domain/models"
)

// Validation errors for malformed store rows. Any of these rejects the whole
// batch; callers must not render partial data.
var (
	ErrMissingRFID      = errors.New("reading row missing rfid")
	ErrMissingTimestamp = errors.New("reading row missing recorded_at")
)

// NormalizeRows validates and coerces a raw joined batch into canonical
// Readings. One malformed row fails the entire batch so that upstream data
// problems never produce phantom readings.
func NormalizeRows(rows []models.RawReadingRow) ([]models.Reading, error) {
	out := make([]models.Reading, 0, len(rows))
	for i, row := range rows {
		reading, err := normalizeRow(row)
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", i, err)
		}
		out = append(out, reading)
	}
	return out, nil
}

func normalizeRow(row models.RawReadingRow) (models.Reading, error) {
	if strings.TrimSpace(row.RFID) == "" {
		return models.Reading{}, ErrMissingRFID
	}
	if strings.TrimSpace(row.RecordedAt) == "" {
		return models.Reading{}, ErrMissingTimestamp
	}

	recordedAt, err := time.Parse(time.RFC3339, row.RecordedAt)
	if err != nil {
		return models.Reading{}, fmt.Errorf("parse recorded_at %q: %w", row.RecordedAt, err)
	}

	var rowID string
	if row.ID != nil {
		rowID = fmt.Sprint(row.ID)
	}

	return models.Reading{
		RowID:      rowID,
		RFID:       row.RFID,
		WeightKg:   coerceWeight(row.WeightKg),
		RecordedAt: recordedAt,
		Animal:     row.Animal,
	}, nil
}

// coerceWeight turns the store's loosely-typed weight value into a float
// pointer. Absent or non-numeric values become nil, not an error; a missing
// weight is a valid unmeasured reading.
func coerceWeight(value interface{}) *float64 {
	if value == nil {
		return nil
	}

	str := strings.TrimSpace(fmt.Sprint(value))
	if str == "" {
		return nil
	}

	parsed, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return nil
	}
	return &parsed
}
