package sessions

import (
	"time"
	"unicode/utf8"
)

const timeLayout = "15:04"

// Observation is one submitted surf session with its environmental readings.
// SpotName and Username are resolved against existing rows during ingestion;
// ingestion never creates reference data.
type Observation struct {
	SpotName string    `json:"spot_name"`
	Username string    `json:"username"`
	Date     time.Time `json:"date"`
	TimeIn   string    `json:"time_in"`
	TimeOut  string    `json:"time_out"`
	Rating   int       `json:"rating"`
	Notes    *string   `json:"notes,omitempty"`

	AirTemp   *float64 `json:"air_temp"`
	WaterTemp *float64 `json:"water_temp"`

	MeanWaveDir         int     `json:"mean_wave_dir"`
	MeanWaveDirCardinal string  `json:"mean_wave_dir_cardinal"`
	MeanWaveHeight      float64 `json:"mean_wave_height"`
	DomPeriod           float64 `json:"dom_period"`

	MeanWindDir         int     `json:"mean_wind_dir"`
	MeanWindDirCardinal string  `json:"mean_wind_dir_cardinal"`
	MeanWindSpeed       float64 `json:"mean_wind_speed"`
	GustSpeed           float64 `json:"gust_speed"`

	TideIncoming     *bool    `json:"tide_incoming"`
	TideMaxHeight    *float64 `json:"tide_max_height"`
	TideMinHeight    *float64 `json:"tide_min_height"`
	TideMedianHeight *float64 `json:"tide_median_height"`
}

// Validate checks required fields and declared formats. Rating carries no
// range constraint and TimeIn/TimeOut carry no ordering constraint.
func (o *Observation) Validate() error {
	if o.SpotName == "" {
		return &ValidationError{Field: "spot_name", Reason: "is required"}
	}
	if o.Username == "" {
		return &ValidationError{Field: "username", Reason: "is required"}
	}
	if o.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "is required"}
	}
	if err := validTime("time_in", o.TimeIn); err != nil {
		return err
	}
	if err := validTime("time_out", o.TimeOut); err != nil {
		return err
	}
	if err := validCardinal("mean_wave_dir_cardinal", o.MeanWaveDirCardinal); err != nil {
		return err
	}
	if err := validCardinal("mean_wind_dir_cardinal", o.MeanWindDirCardinal); err != nil {
		return err
	}
	return nil
}

func validTime(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	if _, err := time.Parse(timeLayout, value); err != nil {
		return &ValidationError{Field: field, Reason: "must be in HH:MM format"}
	}
	return nil
}

func validCardinal(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	if utf8.RuneCountInString(value) > 5 {
		return &ValidationError{Field: field, Reason: "must be at most 5 characters"}
	}
	return nil
}
