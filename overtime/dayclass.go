package overtime

import (
	"time"

	"mesai/models"
)

const (
	MultiplierWeekday = 1.0
	MultiplierWeekend = 1.5
	MultiplierHoliday = 2.0
)

// Classification is the pay-rate class derived from an entry's calendar
// date. It is stored on the entry when the date is set or changed, never
// recomputed lazily.
type Classification struct {
	Category   models.Category
	Multiplier float64
}

// Classifier maps an ISO date to its classification using a static holiday
// set. Holiday entries come in two granularities: recurring month-day
// values ("04-23") and exact dates ("2024-04-10").
type Classifier struct {
	holidays map[string]bool
	weekend  time.Weekday
}

func NewClassifier(holidays []string, weekend time.Weekday) *Classifier {
	set := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		set[h] = true
	}
	return &Classifier{holidays: set, weekend: weekend}
}

// Classify is a pure function of the date. Rule order, first match wins:
// holiday set, then the designated non-working weekday, then weekday. An
// empty or unparseable date falls through to the weekday default, which is
// only ever used for unsaved form state.
func (c *Classifier) Classify(date string) Classification {
	if date == "" {
		return Classification{Category: models.CategoryWeekday, Multiplier: MultiplierWeekday}
	}
	monthDay := ""
	if len(date) >= 10 {
		monthDay = date[5:10]
	}
	if c.holidays[date] || (monthDay != "" && c.holidays[monthDay]) {
		return Classification{Category: models.CategoryHoliday, Multiplier: MultiplierHoliday}
	}
	if day, err := time.Parse("2006-01-02", date); err == nil && day.Weekday() == c.weekend {
		return Classification{Category: models.CategoryWeekend, Multiplier: MultiplierWeekend}
	}
	return Classification{Category: models.CategoryWeekday, Multiplier: MultiplierWeekday}
}
