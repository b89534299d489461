package briefboard

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

const (
	// DateLayout is the layout of Settings.SpecificDates entries.
	DateLayout = "2006-01-02"

	// TimeWindowMinutes is the tolerance around each allowed time of day.
	TimeWindowMinutes = 60
)

// Gate names the check that decided a Decision.
type Gate string

// Gates in evaluation order.
const (
	GateNever           Gate = "never"
	GateSpecificDate    Gate = "specific_date"
	GateAllowedDay      Gate = "allowed_day"
	GateAllowedTime     Gate = "allowed_time"
	GateFirstVisit      Gate = "first_visit"
	GateInterval        Gate = "interval"
	GateIntervalPending Gate = "interval_pending"
)

// Decision is the outcome of a visibility evaluation.
type Decision struct {
	Show bool `json:"show"`
	Gate Gate `json:"gate"`

	// ElapsedMinutes is only set when the interval gate was reached.
	ElapsedMinutes  float64 `json:"elapsedMinutes,omitempty"`
	RequiredMinutes float64 `json:"requiredMinutes,omitempty"`
}

// ShouldShow reports whether the briefboard prompt should be presented at now.
func ShouldShow(s Settings, lastSeen *time.Time, now time.Time) bool {
	return Evaluate(s, lastSeen, now).Show
}

// Evaluate runs the visibility gates in order and stops at the first one that
// decides. Calendar date, weekday and time of day are taken in now's location.
func Evaluate(s Settings, lastSeen *time.Time, now time.Time) Decision {
	if s.Frequency == FrequencyNever {
		return Decision{Gate: GateNever}
	}

	// unknown or missing frequencies get the built-in default
	if !s.Frequency.Valid() {
		s.Frequency = FrequencyDaily
	}

	if len(s.SpecificDates) > 0 && !slices.Contains(s.SpecificDates, now.Format(DateLayout)) {
		return Decision{Gate: GateSpecificDate}
	}

	if len(s.AllowedDays) > 0 && !slices.Contains(s.AllowedDays, weekdays[now.Weekday()]) {
		return Decision{Gate: GateAllowedDay}
	}

	if len(s.AllowedTimes) > 0 && !withinAnyWindow(s.AllowedTimes, now) {
		return Decision{Gate: GateAllowedTime}
	}

	if lastSeen == nil {
		return Decision{Show: true, Gate: GateFirstVisit}
	}

	d := Decision{
		ElapsedMinutes:  now.Sub(*lastSeen).Minutes(),
		RequiredMinutes: s.Frequency.IntervalMinutes(),
	}

	if d.ElapsedMinutes >= d.RequiredMinutes {
		d.Show = true
		d.Gate = GateInterval
	} else {
		d.Gate = GateIntervalPending
	}

	if math.IsInf(d.RequiredMinutes, 1) {
		// +Inf does not survive JSON encoding
		d.RequiredMinutes = 0
	}

	return d
}

// withinAnyWindow reports whether one of times lies within TimeWindowMinutes
// of now's time of day. Windows do not wrap around midnight.
func withinAnyWindow(times []string, now time.Time) bool {
	nowMinutes := now.Hour()*60 + now.Minute()

	for _, t := range times {
		minutes, ok := ParseClock(t)
		if !ok {
			continue
		}

		diff := nowMinutes - minutes
		if diff < 0 {
			diff = -diff
		}

		if diff <= TimeWindowMinutes {
			return true
		}
	}

	return false
}

// ParseClock converts an "HH:MM" string into minutes since midnight.
// Parts after the minutes are ignored.
func ParseClock(s string) (int, bool) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 { //nolint:mnd
		return 0, false
	}

	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}

	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}

	return hour*60 + minute, true
}
