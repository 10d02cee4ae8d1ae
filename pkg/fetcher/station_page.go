package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultStationPageURL is the NDBC station detail page.
const DefaultStationPageURL = "https://www.ndbc.noaa.gov/station_page.php"

// StationPageClient scrapes NDBC station pages. The seed tool uses it to
// verify a buoy number exists before writing a Location row.
type StationPageClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewStationPageClient(baseURL string) *StationPageClient {
	if baseURL == "" {
		baseURL = DefaultStationPageURL
	}
	return &StationPageClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// StationTitle fetches the station page and returns its heading, e.g.
// "Station 46050 - STONEWALL BANK". An unknown station yields an error.
func (c *StationPageClient) StationTitle(ctx context.Context, station string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?station=%s", c.baseURL, station), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch station page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("NDBC returned status code %d for station %s", resp.StatusCode, station)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse station page: %w", err)
	}

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" || !strings.Contains(title, station) {
		return "", fmt.Errorf("station %s not found on NDBC", station)
	}

	return title, nil
}
