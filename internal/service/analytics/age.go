package analytics

import (
	"time"

	"github.com/growtlabs/growt/internal/domain/models"
)

const dobLayout = "2006-01-02"

// Life-stage thresholds in total months of age.
const (
	infantMaxMonths   = 6
	juvenileMaxMonths = 18
)

// AgeAt computes the calendar-exact age for a YYYY-MM-DD date of birth
// relative to ref. It borrows days from the month preceding ref, so variable
// month lengths come out right (Jan 31 to Mar 1 never yields negative days).
// Returns nil when dob is empty or not a parseable YYYY-MM-DD date.
// A ref earlier than dob is not rejected; the borrow arithmetic runs as-is.
func AgeAt(dob string, ref time.Time) *models.AgeParts {
	born, err := time.ParseInLocation(dobLayout, dob, ref.Location())
	if err != nil {
		return nil
	}

	years := ref.Year() - born.Year()
	months := int(ref.Month()) - int(born.Month())
	days := ref.Day() - born.Day()

	if days < 0 {
		months--
		borrowed := daysInPrecedingMonth(ref)
		if borrowed < born.Day() {
			// The dob day exceeds the borrowed month's length (Jan 31 vs Feb).
			// Clamp so the day count can never go negative.
			borrowed = born.Day()
		}
		days += borrowed
	}
	if months < 0 {
		years--
		months += 12
	}

	return &models.AgeParts{Years: years, Months: months, Days: days}
}

// daysInPrecedingMonth returns the length of the calendar month immediately
// before ref's month.
func daysInPrecedingMonth(ref time.Time) int {
	firstOfMonth := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	return firstOfMonth.AddDate(0, 0, -1).Day()
}

// StageFor buckets an age into a life stage. Only total months of age matter;
// a nil age yields a nil stage, never a default.
func StageFor(age *models.AgeParts) *models.LifeStage {
	if age == nil {
		return nil
	}

	total := age.Years*12 + age.Months
	stage := models.StageAdult
	switch {
	case total <= infantMaxMonths:
		stage = models.StageInfant
	case total <= juvenileMaxMonths:
		stage = models.StageJuvenile
	}
	return &stage
}
