package adapter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	json "github.com/goccy/go-json"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/time/rate"

	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/model"
)

// DataSource provides the three read-only fetches the dashboard refreshes
// from. Implementations must be safe to call with a canceled context.
type DataSource interface {
	Global(ctx context.Context) (*model.GlobalSnapshot, error)
	Countries(ctx context.Context) ([]model.CountryRecord, error)
	Historical(ctx context.Context, lastDays int) (*model.HistoricalSeries, error)
}

const (
	defaultBaseURL = "https://disease.sh/v3/covid-19"
	maxRetries     = 3
)

// DiseaseClient is the disease.sh API HTTP client. Requests share a rate
// limiter and retry on 429/5xx with linear backoff.
type DiseaseClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

type DiseaseOption func(*DiseaseClient)

func WithBaseURL(baseURL string) DiseaseOption {
	return func(c *DiseaseClient) {
		c.baseURL = baseURL
	}
}

func WithHTTPTimeout(timeout time.Duration) DiseaseOption {
	return func(c *DiseaseClient) {
		c.httpClient.Timeout = timeout
	}
}

func WithRateLimit(perSec float64) DiseaseOption {
	burst := int(perSec)
	if burst < 1 {
		burst = 1
	}
	return func(c *DiseaseClient) {
		c.limiter = rate.NewLimiter(rate.Limit(perSec), burst)
	}
}

func NewDiseaseClient(opts ...DiseaseOption) *DiseaseClient {
	c := &DiseaseClient{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(2), 2),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type globalResponse struct {
	Cases          int64 `json:"cases"`
	Deaths         int64 `json:"deaths"`
	Recovered      int64 `json:"recovered"`
	Active         int64 `json:"active"`
	TodayCases     int64 `json:"todayCases"`
	TodayDeaths    int64 `json:"todayDeaths"`
	TodayRecovered int64 `json:"todayRecovered"`
	Population     int64 `json:"population"`
	Updated        int64 `json:"updated"` // epoch milliseconds
}

func (c *DiseaseClient) Global(ctx context.Context) (*model.GlobalSnapshot, error) {
	var raw globalResponse
	if err := c.getJSON(ctx, "/all", &raw); err != nil {
		return nil, goerr.Wrap(err, "failed to fetch global summary")
	}

	return &model.GlobalSnapshot{
		Cases:          raw.Cases,
		Deaths:         raw.Deaths,
		Recovered:      raw.Recovered,
		Active:         raw.Active,
		TodayCases:     raw.TodayCases,
		TodayDeaths:    raw.TodayDeaths,
		TodayRecovered: raw.TodayRecovered,
		Population:     raw.Population,
		UpdatedAt:      time.UnixMilli(raw.Updated),
	}, nil
}

type countryResponse struct {
	Country     string `json:"country"`
	CountryInfo struct {
		ISO2 string `json:"iso2"`
		ISO3 string `json:"iso3"`
		Flag string `json:"flag"`
	} `json:"countryInfo"`
	Cases      int64  `json:"cases"`
	Deaths     int64  `json:"deaths"`
	Recovered  int64  `json:"recovered"`
	Active     int64  `json:"active"`
	Population int64  `json:"population"`
	Continent  string `json:"continent"`
}

func (c *DiseaseClient) Countries(ctx context.Context) ([]model.CountryRecord, error) {
	var raw []countryResponse
	if err := c.getJSON(ctx, "/countries", &raw); err != nil {
		return nil, goerr.Wrap(err, "failed to fetch country list")
	}

	records := make([]model.CountryRecord, 0, len(raw))
	for _, r := range raw {
		records = append(records, model.CountryRecord{
			Name:       r.Country,
			ISO2:       r.CountryInfo.ISO2,
			ISO3:       r.CountryInfo.ISO3,
			FlagURL:    r.CountryInfo.Flag,
			Cases:      r.Cases,
			Deaths:     r.Deaths,
			Recovered:  r.Recovered,
			Active:     r.Active,
			Population: r.Population,
			Continent:  r.Continent,
		})
	}
	return records, nil
}

type historicalResponse struct {
	Cases     map[string]int64 `json:"cases"`
	Deaths    map[string]int64 `json:"deaths"`
	Recovered map[string]int64 `json:"recovered"`
}

func (c *DiseaseClient) Historical(ctx context.Context, lastDays int) (*model.HistoricalSeries, error) {
	path := fmt.Sprintf("/historical/all?lastdays=%d", lastDays)

	var raw historicalResponse
	if err := c.getJSON(ctx, path, &raw); err != nil {
		return nil, goerr.Wrap(err, "failed to fetch historical series")
	}

	return &model.HistoricalSeries{
		Dates:     sortedDates(raw.Cases),
		Cases:     raw.Cases,
		Deaths:    raw.Deaths,
		Recovered: raw.Recovered,
	}, nil
}

// sortedDates orders the upstream M/D/YY keys chronologically. Unparseable
// keys sort last so a malformed entry cannot scramble the series.
func sortedDates(series map[string]int64) []string {
	dates := make([]string, 0, len(series))
	for d := range series {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool {
		ti, erri := time.Parse("1/2/06", dates[i])
		tj, errj := time.Parse("1/2/06", dates[j])
		if erri != nil || errj != nil {
			return errj != nil && erri == nil
		}
		return ti.Before(tj)
	})
	return dates
}

func (c *DiseaseClient) getJSON(ctx context.Context, path string, out any) error {
	url := c.baseURL + path

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return goerr.Wrap(err, "rate limiter wait canceled")
		}

		body, retryable, err := c.doGet(ctx, url)
		if err == nil {
			if err := json.Unmarshal(body, out); err != nil {
				return goerr.Wrap(err, "failed to decode response", goerr.V("url", url))
			}
			return nil
		}

		lastErr = err
		if !retryable || ctx.Err() != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return goerr.Wrap(ctx.Err(), "request canceled", goerr.V("url", url))
		case <-time.After(time.Duration(attempt+1) * 500 * time.Millisecond):
		}
	}
	return lastErr
}

func (c *DiseaseClient) doGet(ctx context.Context, url string) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to build request", goerr.V("url", url))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, goerr.Wrap(err, "request failed", goerr.V("url", url))
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, goerr.Wrap(err, "failed to read response body", goerr.V("url", url))
	}

	if resp.StatusCode != http.StatusOK {
		retry := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retry, goerr.New("unexpected status",
			goerr.V("url", url), goerr.V("status", resp.StatusCode))
	}

	return body, false, nil
}
