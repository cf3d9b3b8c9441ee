package schedule

import (
	"testing"
	"time"

	"escalation-srv/internal/model"
)

func intPtr(v int) *int { return &v }

func mustParse(t *testing.T, layout, value string, loc *time.Location) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation(layout, value, loc)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return ts
}

func TestNextRunDaily(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Ho_Chi_Minh")
	spec := Spec{Frequency: model.FrequencyDaily, TimeOfDay: "08:00", Timezone: "Asia/Ho_Chi_Minh"}

	tests := []struct {
		name string
		now  string
		want string
	}{
		{"before today's slot", "2026-03-10 07:59", "2026-03-10 08:00"},
		{"exactly at the slot rolls forward", "2026-03-10 08:00", "2026-03-11 08:00"},
		{"after today's slot", "2026-03-10 14:30", "2026-03-11 08:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := mustParse(t, "2006-01-02 15:04", tt.now, loc)
			got, err := NextRun(spec, now)
			if err != nil {
				t.Fatalf("NextRun: %v", err)
			}
			want := mustParse(t, "2006-01-02 15:04", tt.want, loc)
			if !got.Equal(want) {
				t.Errorf("NextRun = %v, want %v", got, want)
			}
			if !got.After(now) {
				t.Errorf("NextRun %v is not strictly after now %v", got, now)
			}
		})
	}
}

func TestNextRunWeeklyAlwaysLandsOnConfiguredDay(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Berlin")
	base := mustParse(t, "2006-01-02 15:04", "2026-02-01 00:00", loc)

	// Sweep every weekday spec against a range of "now" values; the result
	// must always land on the configured weekday at the configured time and
	// be strictly in the future.
	for dow := 0; dow <= 6; dow++ {
		spec := Spec{
			Frequency: model.FrequencyWeekly,
			DayOfWeek: intPtr(dow),
			TimeOfDay: "09:30",
			Timezone:  "Europe/Berlin",
		}
		for hours := 0; hours < 14*24; hours += 7 {
			now := base.Add(time.Duration(hours) * time.Hour)
			got, err := NextRun(spec, now)
			if err != nil {
				t.Fatalf("NextRun(dow=%d): %v", dow, err)
			}
			local := got.In(loc)
			if int(local.Weekday()) != dow {
				t.Fatalf("NextRun(dow=%d, now=%v) landed on %v", dow, now, local.Weekday())
			}
			if local.Hour() != 9 || local.Minute() != 30 {
				t.Fatalf("NextRun(dow=%d) local time = %02d:%02d, want 09:30", dow, local.Hour(), local.Minute())
			}
			if !got.After(now) {
				t.Fatalf("NextRun(dow=%d, now=%v) = %v is not in the future", dow, now, got)
			}
			if got.Sub(now) > 7*24*time.Hour {
				t.Fatalf("NextRun(dow=%d, now=%v) = %v is more than a week out", dow, now, got)
			}
		}
	}
}

func TestNextRunMonthlyClampsShortMonths(t *testing.T) {
	spec := Spec{
		Frequency:  model.FrequencyMonthly,
		DayOfMonth: intPtr(31),
		TimeOfDay:  "06:00",
		Timezone:   "UTC",
	}

	tests := []struct {
		name string
		now  string
		want string
	}{
		{"january has 31 days", "2026-01-15 00:00", "2026-01-31 06:00"},
		{"february clamps to 28", "2026-02-01 00:00", "2026-02-28 06:00"},
		{"leap february clamps to 29", "2028-02-01 00:00", "2028-02-29 06:00"},
		{"april clamps to 30", "2026-04-01 00:00", "2026-04-30 06:00"},
		{"past this month's slot advances to next month's clamp", "2026-02-28 07:00", "2026-03-31 06:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := mustParse(t, "2006-01-02 15:04", tt.now, time.UTC)
			got, err := NextRun(spec, now)
			if err != nil {
				t.Fatalf("NextRun: %v", err)
			}
			want := mustParse(t, "2006-01-02 15:04", tt.want, time.UTC)
			if !got.Equal(want) {
				t.Errorf("NextRun = %v, want %v", got, want)
			}
		})
	}
}

func TestNextRunMonthlyDefaultsToFirst(t *testing.T) {
	spec := Spec{Frequency: model.FrequencyMonthly, TimeOfDay: "00:15", Timezone: "UTC"}
	now := mustParse(t, "2006-01-02 15:04", "2026-05-10 12:00", time.UTC)
	got, err := NextRun(spec, now)
	if err != nil {
		t.Fatalf("NextRun: %v", err)
	}
	if got.Day() != 1 || got.Month() != time.June {
		t.Errorf("NextRun = %v, want June 1st", got)
	}
}

func TestPeriodFor(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		freq model.Frequency
		span time.Duration
	}{
		{model.FrequencyDaily, 24 * time.Hour},
		{model.FrequencyWeekly, 7 * 24 * time.Hour},
		{model.FrequencyMonthly, 30 * 24 * time.Hour},
		{model.Frequency("unknown"), 7 * 24 * time.Hour},
	}

	for _, tt := range tests {
		start, end := PeriodFor(tt.freq, now)
		if !end.Equal(now) {
			t.Errorf("PeriodFor(%s) end = %v, want %v", tt.freq, end, now)
		}
		if got := end.Sub(start); got != tt.span {
			t.Errorf("PeriodFor(%s) span = %v, want %v", tt.freq, got, tt.span)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spec
		wantErr bool
	}{
		{"valid daily", Spec{Frequency: model.FrequencyDaily, TimeOfDay: "08:00", Timezone: "UTC"}, false},
		{"valid weekly", Spec{Frequency: model.FrequencyWeekly, DayOfWeek: intPtr(3), TimeOfDay: "23:59"}, false},
		{"bad frequency", Spec{Frequency: "hourly", TimeOfDay: "08:00"}, true},
		{"bad time format", Spec{Frequency: model.FrequencyDaily, TimeOfDay: "8am"}, true},
		{"hour out of range", Spec{Frequency: model.FrequencyDaily, TimeOfDay: "24:00"}, true},
		{"dayOfWeek out of range", Spec{Frequency: model.FrequencyWeekly, DayOfWeek: intPtr(7), TimeOfDay: "08:00"}, true},
		{"dayOfMonth out of range", Spec{Frequency: model.FrequencyMonthly, DayOfMonth: intPtr(0), TimeOfDay: "08:00"}, true},
		{"unknown zone", Spec{Frequency: model.FrequencyDaily, TimeOfDay: "08:00", Timezone: "Mars/Olympus"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.spec)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
