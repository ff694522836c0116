package models

import "time"

// Status classifies a reading's weight movement against the animal's
// immediately preceding reading.
type Status string

const (
	StatusImproving Status = "improving"
	StatusStable    Status = "stable"
	StatusDeclining Status = "declining"
)

// LifeStage buckets an animal by its total age in months.
type LifeStage string

const (
	StageInfant   LifeStage = "infant"
	StageJuvenile LifeStage = "juvenile"
	StageAdult    LifeStage = "adult"
)

// AgeParts is a calendar-exact age relative to a reference instant.
type AgeParts struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}

// RawReadingRow mirrors one joined document as returned by the store: flat
// weighing fields plus the nested, possibly-absent animal attributes. Weight
// and id keep their loose store types; the analytics normalizer coerces them.
type RawReadingRow struct {
	ID         interface{}  `bson:"_id" json:"id"`
	RFID       string       `bson:"rfid" json:"rfid"`
	WeightKg   interface{}  `bson:"weight_kg" json:"weight_kg"`
	RecordedAt string       `bson:"recorded_at" json:"recorded_at"`
	Animal     *AnimalAttrs `bson:"animal" json:"animal"`
}

// Reading is the canonical, validated form of one weighing event.
type Reading struct {
	RowID      string       `json:"row_id"`
	RFID       string       `json:"rfid"`
	WeightKg   *float64     `json:"weight_kg"`
	RecordedAt time.Time    `json:"recorded_at"`
	Animal     *AnimalAttrs `json:"animal"`
}

// AnnotatedReading is a Reading plus the derived fields consumed by every
// downstream view. Derived fields are never persisted.
type AnnotatedReading struct {
	Reading
	DeltaKg   *float64   `json:"delta_kg"`
	Status    Status     `json:"status"`
	Age       *AgeParts  `json:"age"`
	LifeStage *LifeStage `json:"life_stage"`
}

// WeighingEvent is one immutable weighing record as persisted by the ingest
// path. RecordedAt is kept as the ISO-8601 string the device reported.
type WeighingEvent struct {
	RFID       string    `bson:"rfid" json:"rfid"`
	DeviceID   string    `bson:"device_id" json:"device_id"`
	WeightKg   *float64  `bson:"weight_kg" json:"weight_kg"`
	RecordedAt string    `bson:"recorded_at" json:"recorded_at"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

// WeighingRequest is the payload IoT scales post for one weighing event.
type WeighingRequest struct {
	DeviceID   string   `json:"device_id" binding:"required"`
	RFID       string   `json:"rfid" binding:"required"`
	WeightKg   *float64 `json:"weight_kg"`
	RecordedAt string   `json:"recorded_at" binding:"required"`
}
