package fetcher

import (
	"bufio"
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shindelr/Session-Logger-API/pkg/observability"
	"github.com/shindelr/Session-Logger-API/pkg/units"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// DefaultNDBCBaseURL serves the realtime2 text reports, one file per station.
const DefaultNDBCBaseURL = "https://www.ndbc.noaa.gov/data/realtime2"

// missing is the NDBC sentinel for a dropped sample.
const missing = "MM"

// NDBCClient fetches and averages NDBC realtime meteorological reports.
type NDBCClient struct {
	baseURL    string
	httpClient *http.Client
	clock      clockwork.Clock
	spotTZ     *time.Location
	metrics    *observability.Metrics
}

// NewNDBCClient creates an NDBC client. spotTZ is the timezone session times
// are submitted in; NDBC reports are stamped in UTC. metrics may be nil.
func NewNDBCClient(baseURL string, spotTZ *time.Location, clock clockwork.Clock, metrics *observability.Metrics) *NDBCClient {
	if baseURL == "" {
		baseURL = DefaultNDBCBaseURL
	}
	return &NDBCClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		clock:      clock,
		spotTZ:     spotTZ,
		metrics:    metrics,
	}
}

// SessionAverages downloads the station's realtime report, keeps the samples
// inside the session window, and returns the per-column means converted to
// standard units. The window is rejected when it is inverted or has not
// happened yet, since no samples can exist for it.
func (c *NDBCClient) SessionAverages(ctx context.Context, station string, date time.Time, timeIn, timeOut string) (BuoyAverages, error) {
	start, end, err := c.sessionWindowUTC(date, timeIn, timeOut)
	if err != nil {
		return BuoyAverages{}, err
	}

	body, err := c.download(ctx, station)
	if err != nil {
		c.count("error")
		return BuoyAverages{}, err
	}
	c.count("success")

	samples := parseReport(body, start, end)
	if len(samples) == 0 {
		return BuoyAverages{}, fmt.Errorf("station %s has no samples between %s and %s",
			station, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	zap.S().Debugf("Averaging %d NDBC samples for station %s", len(samples), station)
	return reduce(samples), nil
}

func (c *NDBCClient) sessionWindowUTC(date time.Time, timeIn, timeOut string) (time.Time, time.Time, error) {
	start, err := combine(date, timeIn, c.spotTZ)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid time_in: %w", err)
	}
	end, err := combine(date, timeOut, c.spotTZ)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid time_out: %w", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid timeframe, %s -> %s", timeIn, timeOut)
	}
	if start.After(c.clock.Now()) {
		return time.Time{}, time.Time{}, fmt.Errorf("timeframe %s -> %s has not happened yet", timeIn, timeOut)
	}
	return start.UTC(), end.UTC(), nil
}

func combine(date time.Time, hhmm string, tz *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, tz), nil
}

func (c *NDBCClient) download(ctx context.Context, station string) (string, error) {
	url := fmt.Sprintf("%s/%s.txt", c.baseURL, station)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch NDBC report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("NDBC returned status code %d for station %s", resp.StatusCode, station)
	}

	var sb strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		sb.WriteString(scanner.Text())
		sb.WriteByte('\n')
	}
	return sb.String(), scanner.Err()
}

// report column indexes after the timestamp fields.
const (
	colWDIR = 5
	colWSPD = 6
	colGST  = 7
	colWVHT = 8
	colDPD  = 9
	colMWD  = 11
	colATMP = 13
	colWTMP = 14
)

type sample struct {
	fields []string
}

// parseReport keeps the data lines whose UTC timestamp falls inside
// [start, end]. Header lines start with '#'.
func parseReport(body string, start, end time.Time) []sample {
	var samples []sample
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < colWTMP+1 {
			continue
		}
		ts, err := sampleTime(fields)
		if err != nil {
			continue
		}
		if ts.Before(start) || ts.After(end) {
			continue
		}
		samples = append(samples, sample{fields: fields})
	}
	return samples
}

func sampleTime(fields []string) (time.Time, error) {
	var parts [5]int
	for i := 0; i < 5; i++ {
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			return time.Time{}, err
		}
		parts[i] = n
	}
	return time.Date(parts[0], time.Month(parts[1]), parts[2], parts[3], parts[4], 0, 0, time.UTC), nil
}

// reduce means each column across the samples, dropping MM sentinels, then
// converts to standard units: m/s to mph, m to ft, degC to degF, and degrees
// to an eight point cardinal.
func reduce(samples []sample) BuoyAverages {
	var avgs BuoyAverages

	if wdir := columnMean(samples, colWDIR); wdir != nil {
		dir := int(math.Round(*wdir))
		avgs.MeanWindDir = &dir
		avgs.MeanWindDirCardinal = units.CardinalDirection(dir)
	}
	if wspd := columnMean(samples, colWSPD); wspd != nil {
		mph := units.MetersPerSecToMPH(*wspd)
		avgs.MeanWindSpeed = &mph
	}
	if gst := columnMean(samples, colGST); gst != nil {
		mph := units.MetersPerSecToMPH(*gst)
		avgs.GustSpeed = &mph
	}
	if wvht := columnMean(samples, colWVHT); wvht != nil {
		ft := units.MetersToFeet(*wvht)
		avgs.MeanWaveHeight = &ft
	}
	if dpd := columnMean(samples, colDPD); dpd != nil {
		avgs.DomPeriod = dpd
	}
	if mwd := columnMean(samples, colMWD); mwd != nil {
		dir := int(math.Round(*mwd))
		avgs.MeanWaveDir = &dir
		avgs.MeanWaveDirCardinal = units.CardinalDirection(dir)
	}
	if atmp := columnMean(samples, colATMP); atmp != nil {
		f := units.CelsiusToFahrenheit(*atmp)
		avgs.AirTemp = &f
	}
	if wtmp := columnMean(samples, colWTMP); wtmp != nil {
		f := units.CelsiusToFahrenheit(*wtmp)
		avgs.WaterTemp = &f
	}

	return avgs
}

func columnMean(samples []sample, col int) *float64 {
	var sum float64
	var n int
	for _, s := range samples {
		raw := s.fields[col]
		if raw == missing {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return nil
	}
	mean := math.Round(sum/float64(n)*100) / 100
	return &mean
}

func (c *NDBCClient) count(outcome string) {
	if c.metrics != nil {
		c.metrics.EnrichmentRequests.WithLabelValues("ndbc", outcome).Inc()
	}
}
