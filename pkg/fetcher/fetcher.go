// Package fetcher pulls the environmental readings a session is logged with:
// meteorological averages from NDBC buoys and water levels from the NOAA
// CO-OPS API, both reduced over the session's time window.
package fetcher

import (
	"context"
	"time"
)

// BuoyAverages is the set of mean meteorological values over a session
// window, converted to standard units. A nil field means the buoy reported
// no valid samples for that column.
type BuoyAverages struct {
	MeanWindDir         *int
	MeanWindDirCardinal string
	MeanWindSpeed       *float64 // mph
	GustSpeed           *float64 // mph
	MeanWaveHeight      *float64 // ft
	DomPeriod           *float64 // sec
	MeanWaveDir         *int
	MeanWaveDirCardinal string
	AirTemp             *float64 // F
	WaterTemp           *float64 // F
}

// TideStats reduces a session's water level series to the values the session
// is logged with. Incoming is true when the high mark came after the low.
type TideStats struct {
	Incoming     *bool
	MaxHeight    *float64
	MinHeight    *float64
	MedianHeight *float64
}

// BuoyService supplies meteorological averages for a station over a window.
type BuoyService interface {
	SessionAverages(ctx context.Context, station string, date time.Time, timeIn, timeOut string) (BuoyAverages, error)
}

// TideService supplies tide statistics for a station over a window.
type TideService interface {
	SessionTides(ctx context.Context, station string, date time.Time, timeIn, timeOut string) (TideStats, error)
}
