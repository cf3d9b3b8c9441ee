// Package schedule turns a recurrence spec into concrete run times and
// reporting periods. All functions are pure: they depend only on their
// arguments, never on the wall clock or the server's local timezone.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"escalation-srv/internal/model"
)

// Spec is the recurrence tuple of a report config.
type Spec struct {
	Frequency  model.Frequency
	DayOfWeek  *int   // 0 (Sunday) - 6, weekly only
	DayOfMonth *int   // 1-31, monthly only
	TimeOfDay  string // "HH:MM"
	Timezone   string // IANA zone name; empty means UTC
}

const (
	// defaultDayOfWeek is Monday, used when a weekly spec omits the day.
	defaultDayOfWeek = 1
	// defaultDayOfMonth is the 1st, used when a monthly spec omits the day.
	defaultDayOfMonth = 1
)

// Validate rejects malformed recurrence fields. Configs failing validation
// never reach the orchestrator.
func Validate(s Spec) error {
	if !model.IsValidFrequency(s.Frequency) {
		return fmt.Errorf("%w: frequency %q", ErrInvalidSpec, s.Frequency)
	}
	if _, _, err := parseTimeOfDay(s.TimeOfDay); err != nil {
		return err
	}
	if s.DayOfWeek != nil && (*s.DayOfWeek < 0 || *s.DayOfWeek > 6) {
		return fmt.Errorf("%w: dayOfWeek %d out of range 0-6", ErrInvalidSpec, *s.DayOfWeek)
	}
	if s.DayOfMonth != nil && (*s.DayOfMonth < 1 || *s.DayOfMonth > 31) {
		return fmt.Errorf("%w: dayOfMonth %d out of range 1-31", ErrInvalidSpec, *s.DayOfMonth)
	}
	if _, err := loadLocation(s.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidSpec, s.Timezone)
	}
	return nil
}

// NextRun returns the next due timestamp strictly after now. The calculation
// happens entirely in the spec's timezone, so a server timezone change never
// shifts the schedule.
func NextRun(s Spec, now time.Time) (time.Time, error) {
	hh, mm, err := parseTimeOfDay(s.TimeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	loc, err := loadLocation(s.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: unknown timezone %q", ErrInvalidSpec, s.Timezone)
	}

	local := now.In(loc)
	cand := time.Date(local.Year(), local.Month(), local.Day(), hh, mm, 0, 0, loc)

	switch s.Frequency {
	case model.FrequencyDaily:
		if !cand.After(now) {
			cand = cand.AddDate(0, 0, 1)
		}
	case model.FrequencyWeekly:
		target := defaultDayOfWeek
		if s.DayOfWeek != nil {
			target = *s.DayOfWeek
		}
		days := (target - int(cand.Weekday()) + 7) % 7
		cand = cand.AddDate(0, 0, days)
		if !cand.After(now) {
			cand = cand.AddDate(0, 0, 7)
		}
	case model.FrequencyMonthly:
		dom := defaultDayOfMonth
		if s.DayOfMonth != nil {
			dom = *s.DayOfMonth
		}
		// Days 29-31 clamp to the last day in shorter months. This is
		// intentional: a "run on the 31st" config still runs every month.
		cand = monthlyCandidate(cand.Year(), cand.Month(), dom, hh, mm, loc)
		if !cand.After(now) {
			y, m := cand.Year(), cand.Month()+1
			cand = monthlyCandidate(y, m, dom, hh, mm, loc)
		}
	default:
		return time.Time{}, fmt.Errorf("%w: frequency %q", ErrInvalidSpec, s.Frequency)
	}

	return cand, nil
}

// PeriodFor returns the trailing reporting window [start, end) ending at now:
// 24h for daily, 7d for weekly, 30d for monthly. Unknown frequencies fall
// back to the weekly window, matching how ad-hoc runs are treated.
func PeriodFor(freq model.Frequency, now time.Time) (start, end time.Time) {
	var span time.Duration
	switch freq {
	case model.FrequencyDaily:
		span = 24 * time.Hour
	case model.FrequencyMonthly:
		span = 30 * 24 * time.Hour
	default:
		span = 7 * 24 * time.Hour
	}
	return now.Add(-span), now
}

func monthlyCandidate(year int, month time.Month, dom, hh, mm int, loc *time.Location) time.Time {
	if last := daysInMonth(year, month); dom > last {
		dom = last
	}
	return time.Date(year, month, dom, hh, mm, 0, 0, loc)
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func parseTimeOfDay(s string) (hh, mm int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: timeOfDay %q is not HH:MM", ErrInvalidSpec, s)
	}
	hh, err = strconv.Atoi(parts[0])
	if err != nil || hh < 0 || hh > 23 {
		return 0, 0, fmt.Errorf("%w: timeOfDay %q has invalid hour", ErrInvalidSpec, s)
	}
	mm, err = strconv.Atoi(parts[1])
	if err != nil || mm < 0 || mm > 59 {
		return 0, 0, fmt.Errorf("%w: timeOfDay %q has invalid minute", ErrInvalidSpec, s)
	}
	return hh, mm, nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(name)
}
