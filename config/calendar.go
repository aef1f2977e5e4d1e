package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Calendar carries the deployment-specific data the entry workflows need:
// the enumerated pay-period labels, the holiday date set, the designated
// non-working weekday and the default time window for new entries. It is
// plain configuration, replaced per deployment year without code changes.
type Calendar struct {
	Periods []string `yaml:"periods"`
	// Holidays mixes recurring month-day entries ("04-23") with exact
	// dates ("2024-04-10"); both forms match against an entry's ISO date.
	Holidays           []string `yaml:"holidays"`
	WeekendDay         int      `yaml:"weekend_day"` // time.Weekday numbering, Sunday = 0
	DefaultStart       string   `yaml:"default_start"`
	DefaultEnd         string   `yaml:"default_end"`
	FallbackDepartment string   `yaml:"fallback_department"`
}

// DefaultCalendar returns the built-in 2024 calendar: monthly pay periods,
// the Turkish public-holiday set and Sunday as the non-working day.
func DefaultCalendar() *Calendar {
	periods := make([]string, 0, 12)
	for m := 1; m <= 12; m++ {
		periods = append(periods, fmt.Sprintf("2024-%02d", m))
	}
	return &Calendar{
		Periods: periods,
		Holidays: []string{
			"01-01", "04-23", "05-01", "05-19", "07-15", "08-30", "10-29",
			"2024-04-10", "2024-04-11", "2024-04-12",
			"2024-06-16", "2024-06-17", "2024-06-18", "2024-06-19",
		},
		WeekendDay:         int(time.Sunday),
		DefaultStart:       "18:00",
		DefaultEnd:         "20:00",
		FallbackDepartment: "General",
	}
}

// LoadCalendar reads a calendar document from path, falling back to the
// built-in defaults for any field the file leaves empty. An empty path
// returns the defaults unchanged.
func LoadCalendar(path string) (*Calendar, error) {
	cal := DefaultCalendar()
	if path == "" {
		return cal, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read calendar file: %w", err)
	}

	var loaded Calendar
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse calendar file: %w", err)
	}

	if len(loaded.Periods) > 0 {
		cal.Periods = loaded.Periods
	}
	if len(loaded.Holidays) > 0 {
		cal.Holidays = loaded.Holidays
	}
	if loaded.WeekendDay != 0 {
		cal.WeekendDay = loaded.WeekendDay
	}
	if loaded.DefaultStart != "" {
		cal.DefaultStart = loaded.DefaultStart
	}
	if loaded.DefaultEnd != "" {
		cal.DefaultEnd = loaded.DefaultEnd
	}
	if loaded.FallbackDepartment != "" {
		cal.FallbackDepartment = loaded.FallbackDepartment
	}
	return cal, nil
}

// ValidPeriod reports whether label is one of the enumerated pay periods.
func (c *Calendar) ValidPeriod(label string) bool {
	for _, p := range c.Periods {
		if p == label {
			return true
		}
	}
	return false
}
