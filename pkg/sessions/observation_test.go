package sessions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservationValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Observation)
		field  string
	}{
		{"missing spot name", func(o *Observation) { o.SpotName = "" }, "spot_name"},
		{"missing username", func(o *Observation) { o.Username = "" }, "username"},
		{"zero date", func(o *Observation) { o.Date = time.Time{} }, "date"},
		{"missing time in", func(o *Observation) { o.TimeIn = "" }, "time_in"},
		{"malformed time in", func(o *Observation) { o.TimeIn = "1pm" }, "time_in"},
		{"out of range time in", func(o *Observation) { o.TimeIn = "25:00" }, "time_in"},
		{"missing time out", func(o *Observation) { o.TimeOut = "" }, "time_out"},
		{"malformed time out", func(o *Observation) { o.TimeOut = "13:7" }, "time_out"},
		{"missing wave cardinal", func(o *Observation) { o.MeanWaveDirCardinal = "" }, "mean_wave_dir_cardinal"},
		{"oversized wave cardinal", func(o *Observation) { o.MeanWaveDirCardinal = "NORTHWEST" }, "mean_wave_dir_cardinal"},
		{"missing wind cardinal", func(o *Observation) { o.MeanWindDirCardinal = "" }, "mean_wind_dir_cardinal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := validObservation()
			tt.mutate(&obs)

			err := obs.Validate()
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestObservationValidateAccepts(t *testing.T) {
	obs := validObservation()
	require.NoError(t, obs.Validate())

	// Rating is deliberately unconstrained and readings may be absent.
	obs.Rating = -3
	obs.AirTemp = nil
	obs.WaterTemp = nil
	obs.TideIncoming = nil
	require.NoError(t, obs.Validate())

	// Time out before time in is accepted here; upstream fetching is where
	// an inverted window gets rejected.
	obs.TimeIn = "14:00"
	obs.TimeOut = "06:00"
	require.NoError(t, obs.Validate())
}
