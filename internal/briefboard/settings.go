package briefboard

import (
	"encoding/json"
)

// weekdays maps time.Weekday to the abbreviations used in Settings.AllowedDays.
var weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} //nolint:gochecknoglobals

// Settings controls when the briefboard prompt may be shown.
type Settings struct {
	Frequency             Frequency `json:"frequency"             validate:"required,oneof=never hourly four_times_daily twice_daily daily every_3_days weekly monthly"` //nolint:lll
	AllowedDays           []string  `json:"allowedDays"           validate:"omitempty,dive,oneof=Mon Tue Wed Thu Fri Sat Sun"`
	AllowedTimes          []string  `json:"allowedTimes"          validate:"omitempty,dive,datetime=15:04"`
	SpecificDates         []string  `json:"specificDates"         validate:"omitempty,dive,datetime=2006-01-02"`
	BriefingNotifications bool      `json:"briefingNotifications"`
}

// SettingsUpdate mirrors Settings with optional fields, so missing values can be
// told apart from zero values in persisted JSON and request bodies.
type SettingsUpdate struct {
	Frequency             *Frequency `json:"frequency"`
	AllowedDays           []string   `json:"allowedDays"`
	AllowedTimes          []string   `json:"allowedTimes"`
	SpecificDates         []string   `json:"specificDates"`
	BriefingNotifications *bool      `json:"briefingNotifications"`
}

// Merge returns the settings of u, missing fields taken from defaults. Values
// are not validated or normalized.
func (u SettingsUpdate) Merge(defaults Settings) Settings {
	out := Settings{
		Frequency:             defaults.Frequency,
		AllowedDays:           cloneSet(u.AllowedDays),
		AllowedTimes:          cloneSet(u.AllowedTimes),
		SpecificDates:         cloneSet(u.SpecificDates),
		BriefingNotifications: defaults.BriefingNotifications,
	}

	if u.Frequency != nil {
		out.Frequency = *u.Frequency
	}

	if u.BriefingNotifications != nil {
		out.BriefingNotifications = *u.BriefingNotifications
	}

	if out.AllowedDays == nil {
		out.AllowedDays = cloneSet(defaults.AllowedDays)
	}

	if out.AllowedTimes == nil {
		out.AllowedTimes = cloneSet(defaults.AllowedTimes)
	}

	if out.SpecificDates == nil {
		out.SpecificDates = cloneSet(defaults.SpecificDates)
	}

	return out
}

// DefaultSettings returns the built-in defaults used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Frequency:             FrequencyDaily,
		AllowedDays:           []string{},
		AllowedTimes:          []string{},
		SpecificDates:         []string{},
		BriefingNotifications: true,
	}
}

// Clone returns a deep copy of s.
func (s Settings) Clone() Settings {
	out := s
	out.AllowedDays = cloneSet(s.AllowedDays)
	out.AllowedTimes = cloneSet(s.AllowedTimes)
	out.SpecificDates = cloneSet(s.SpecificDates)

	return out
}

// Normalize replaces missing or unknown values with the ones from defaults.
func (s Settings) Normalize(defaults Settings) Settings {
	out := s.Clone()

	if !out.Frequency.Valid() {
		out.Frequency = defaults.Frequency
	}

	// the defaults themselves may come from a broken config
	if !out.Frequency.Valid() {
		out.Frequency = FrequencyDaily
	}

	if out.AllowedDays == nil {
		out.AllowedDays = cloneSet(defaults.AllowedDays)
	}

	if out.AllowedTimes == nil {
		out.AllowedTimes = cloneSet(defaults.AllowedTimes)
	}

	if out.SpecificDates == nil {
		out.SpecificDates = cloneSet(defaults.SpecificDates)
	}

	return out
}

// DecodeSettings parses persisted settings JSON and merges every missing field
// with defaults.
func DecodeSettings(data []byte, defaults Settings) (Settings, error) {
	var stored SettingsUpdate
	if err := json.Unmarshal(data, &stored); err != nil {
		return defaults.Clone(), err
	}

	return stored.Merge(defaults).Normalize(defaults), nil
}

func cloneSet(in []string) []string {
	if in == nil {
		return nil
	}

	out := make([]string, len(in))
	copy(out, in)

	return out
}
