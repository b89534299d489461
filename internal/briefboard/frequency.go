package briefboard

import (
	"math"
)

// Frequency is the recurrence policy controlling the minimum spacing between prompts.
type Frequency string

// Supported frequencies.
const (
	FrequencyNever          Frequency = "never"
	FrequencyHourly         Frequency = "hourly"
	FrequencyFourTimesDaily Frequency = "four_times_daily"
	FrequencyTwiceDaily     Frequency = "twice_daily"
	FrequencyDaily          Frequency = "daily"
	FrequencyEvery3Days     Frequency = "every_3_days"
	FrequencyWeekly         Frequency = "weekly"
	FrequencyMonthly        Frequency = "monthly"
)

// intervals holds the required minutes between two prompts per frequency.
var intervals = map[Frequency]float64{ //nolint:gochecknoglobals
	FrequencyNever:          math.Inf(1),
	FrequencyHourly:         60,
	FrequencyFourTimesDaily: 360,
	FrequencyTwiceDaily:     720,
	FrequencyDaily:          1440,
	FrequencyEvery3Days:     4320,
	FrequencyWeekly:         10080,
	FrequencyMonthly:        43200,
}

// Frequencies returns all supported frequencies, shortest interval first.
func Frequencies() []Frequency {
	return []Frequency{
		FrequencyNever,
		FrequencyHourly,
		FrequencyFourTimesDaily,
		FrequencyTwiceDaily,
		FrequencyDaily,
		FrequencyEvery3Days,
		FrequencyWeekly,
		FrequencyMonthly,
	}
}

// Valid reports whether f is one of the supported frequencies.
func (f Frequency) Valid() bool {
	_, ok := intervals[f]
	return ok
}

// IntervalMinutes returns the minimum number of minutes between two prompts.
// Unknown frequencies and never yield +Inf.
func (f Frequency) IntervalMinutes() float64 {
	if m, ok := intervals[f]; ok {
		return m
	}

	return math.Inf(1)
}

func (f Frequency) String() string {
	return string(f)
}
