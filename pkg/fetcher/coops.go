package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/shindelr/Session-Logger-API/pkg/observability"

	"go.uber.org/zap"
)

// DefaultCOOPSBaseURL is the NOAA CO-OPS data retrieval endpoint.
const DefaultCOOPSBaseURL = "https://api.tidesandcurrents.noaa.gov/api/prod/datagetter"

// COOPSClient fetches water level series from the NOAA CO-OPS API.
type COOPSClient struct {
	baseURL    string
	httpClient *http.Client
	metrics    *observability.Metrics
}

// NewCOOPSClient creates a CO-OPS client. metrics may be nil.
func NewCOOPSClient(baseURL string, metrics *observability.Metrics) *COOPSClient {
	if baseURL == "" {
		baseURL = DefaultCOOPSBaseURL
	}
	return &COOPSClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		metrics:    metrics,
	}
}

type waterLevelResponse struct {
	Data []struct {
		Time  string `json:"t"`
		Value string `json:"v"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SessionTides fetches the station's water levels over the session window at
// 30 minute intervals and reduces them to max, min, and median height plus
// the incoming flag, true when the high mark came after the low.
func (c *COOPSClient) SessionTides(ctx context.Context, station string, date time.Time, timeIn, timeOut string) (TideStats, error) {
	day := date.Format("20060102")

	params := url.Values{}
	params.Add("station", station)
	params.Add("begin_date", fmt.Sprintf("%s %s", day, timeIn))
	params.Add("end_date", fmt.Sprintf("%s %s", day, timeOut))
	params.Add("product", "water_level")
	params.Add("datum", "MLLW")
	params.Add("units", "english")
	params.Add("time_zone", "lst")
	params.Add("interval", "30")
	params.Add("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return TideStats{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.count("error")
		return TideStats{}, fmt.Errorf("failed to fetch tide data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.count("error")
		return TideStats{}, fmt.Errorf("CO-OPS returned status code %d for station %s", resp.StatusCode, station)
	}

	var parsed waterLevelResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		c.count("error")
		return TideStats{}, fmt.Errorf("failed to parse CO-OPS response: %w", err)
	}
	if parsed.Error != nil {
		c.count("error")
		return TideStats{}, fmt.Errorf("CO-OPS error for station %s: %s", station, parsed.Error.Message)
	}
	c.count("success")

	type level struct {
		at     time.Time
		height float64
	}
	levels := make([]level, 0, len(parsed.Data))
	for _, d := range parsed.Data {
		at, err := time.Parse("2006-01-02 15:04", d.Time)
		if err != nil {
			continue
		}
		height, err := strconv.ParseFloat(d.Value, 64)
		if err != nil {
			continue
		}
		levels = append(levels, level{at: at, height: height})
	}

	if len(levels) == 0 {
		return TideStats{}, fmt.Errorf("station %s returned no water levels for %s", station, day)
	}

	maxIdx, minIdx := 0, 0
	heights := make([]float64, len(levels))
	for i, l := range levels {
		heights[i] = l.height
		if l.height > levels[maxIdx].height {
			maxIdx = i
		}
		if l.height < levels[minIdx].height {
			minIdx = i
		}
	}

	incoming := levels[maxIdx].at.After(levels[minIdx].at)
	maxH := levels[maxIdx].height
	minH := levels[minIdx].height
	median := medianOf(heights)

	zap.S().Debugf("Reduced %d water levels for station %s: max %.2f min %.2f", len(levels), station, maxH, minH)

	return TideStats{
		Incoming:     &incoming,
		MaxHeight:    &maxH,
		MinHeight:    &minH,
		MedianHeight: &median,
	}, nil
}

func medianOf(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func (c *COOPSClient) count(outcome string) {
	if c.metrics != nil {
		c.metrics.EnrichmentRequests.WithLabelValues("coops", outcome).Inc()
	}
}
