package briefboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSettings(t *testing.T) {
	defaults := Settings{
		Frequency:             FrequencyTwiceDaily,
		AllowedDays:           []string{"Mon"},
		AllowedTimes:          []string{"08:00"},
		SpecificDates:         []string{},
		BriefingNotifications: true,
	}

	tests := []struct {
		name    string
		data    string
		want    Settings
		wantErr bool
	}{
		{
			name: "complete document",
			data: `{"frequency":"weekly","allowedDays":["Fri"],"allowedTimes":["17:00"],` +
				`"specificDates":["2026-02-05"],"briefingNotifications":false}`,
			want: Settings{
				Frequency:             FrequencyWeekly,
				AllowedDays:           []string{"Fri"},
				AllowedTimes:          []string{"17:00"},
				SpecificDates:         []string{"2026-02-05"},
				BriefingNotifications: false,
			},
		},
		{
			name: "missing fields take defaults",
			data: `{"frequency":"hourly"}`,
			want: Settings{
				Frequency:             FrequencyHourly,
				AllowedDays:           []string{"Mon"},
				AllowedTimes:          []string{"08:00"},
				SpecificDates:         []string{},
				BriefingNotifications: true,
			},
		},
		{
			name: "explicit empty sets are kept",
			data: `{"frequency":"daily","allowedDays":[],"allowedTimes":[]}`,
			want: Settings{
				Frequency:             FrequencyDaily,
				AllowedDays:           []string{},
				AllowedTimes:          []string{},
				SpecificDates:         []string{},
				BriefingNotifications: true,
			},
		},
		{
			name: "unknown frequency takes default",
			data: `{"frequency":"fortnightly","briefingNotifications":false}`,
			want: Settings{
				Frequency:             FrequencyTwiceDaily,
				AllowedDays:           []string{"Mon"},
				AllowedTimes:          []string{"08:00"},
				SpecificDates:         []string{},
				BriefingNotifications: false,
			},
		},
		{
			name:    "malformed json",
			data:    `{"frequency":`,
			want:    defaults,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeSettings([]byte(tt.data), defaults)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeBrokenDefaults(t *testing.T) {
	got := Settings{Frequency: "bogus"}.Normalize(Settings{Frequency: "also bogus"})

	assert.Equal(t, FrequencyDaily, got.Frequency)
	assert.Nil(t, got.AllowedDays)
}

func TestCloneDoesNotAlias(t *testing.T) {
	s := DefaultSettings()
	s.AllowedDays = append(s.AllowedDays, "Mon")

	c := s.Clone()
	c.AllowedDays[0] = "Sun"

	assert.Equal(t, "Mon", s.AllowedDays[0])
}

func TestValidateSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantErr  bool
	}{
		{"defaults", DefaultSettings(), false},
		{"full", Settings{
			Frequency:     FrequencyEvery3Days,
			AllowedDays:   []string{"Mon", "Sun"},
			AllowedTimes:  []string{"07:30", "9:00"},
			SpecificDates: []string{"2026-12-31"},
		}, false},
		{"unknown frequency", Settings{Frequency: "yearly"}, true},
		{"bad weekday", Settings{Frequency: FrequencyDaily, AllowedDays: []string{"Monday"}}, true},
		{"bad time", Settings{Frequency: FrequencyDaily, AllowedTimes: []string{"25:00"}}, true},
		{"bad date", Settings{Frequency: FrequencyDaily, SpecificDates: []string{"05/02/2026"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.settings)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
