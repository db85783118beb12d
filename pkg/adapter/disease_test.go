package adapter_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/adapter"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/all", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"cases": 700000000, "deaths": 7000000, "recovered": 600000000,
			"active": 93000000, "todayCases": 1200, "todayDeaths": 30,
			"todayRecovered": 900, "population": 7900000000,
			"updated": 1700000000000
		}`))
	})
	mux.HandleFunc("/countries", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"country": "France",
			 "countryInfo": {"iso2": "FR", "iso3": "FRA", "flag": "https://example.com/fr.png"},
			 "cases": 300, "deaths": 30, "recovered": 200, "active": 70,
			 "population": 67000000, "continent": "Europe"},
			{"country": "Germany",
			 "countryInfo": {"iso2": "DE", "iso3": "DEU", "flag": "https://example.com/de.png"},
			 "cases": 200, "deaths": 50, "recovered": 100, "active": 50,
			 "population": 83000000, "continent": "Europe"}
		]`))
	})
	mux.HandleFunc("/historical/all", func(w http.ResponseWriter, r *http.Request) {
		gt.Equal(t, r.URL.Query().Get("lastdays"), "30")
		w.Write([]byte(`{
			"cases":     {"1/31/20": 31, "1/1/20": 1, "1/2/20": 2},
			"deaths":    {"1/31/20": 3, "1/1/20": 0, "1/2/20": 1},
			"recovered": {"1/31/20": 10, "1/1/20": 0, "1/2/20": 5}
		}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T) *adapter.DiseaseClient {
	srv := newTestServer(t)
	return adapter.NewDiseaseClient(
		adapter.WithBaseURL(srv.URL),
		adapter.WithRateLimit(100),
		adapter.WithHTTPTimeout(5*time.Second),
	)
}

func TestGlobal(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	g, err := client.Global(ctx)
	gt.NoError(t, err)
	gt.Equal(t, g.Cases, int64(700000000))
	gt.Equal(t, g.TodayDeaths, int64(30))
	gt.Equal(t, g.Population, int64(7900000000))
	gt.True(t, g.UpdatedAt.Equal(time.UnixMilli(1700000000000)))
}

func TestCountries(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	records, err := client.Countries(ctx)
	gt.NoError(t, err)
	gt.A(t, records).Length(2)
	gt.Equal(t, records[0].Name, "France")
	gt.Equal(t, records[0].ISO2, "FR")
	gt.Equal(t, records[0].FlagURL, "https://example.com/fr.png")
	gt.Equal(t, records[1].Continent, "Europe")
	gt.Equal(t, records[1].Active, int64(50))
}

func TestHistoricalOrdersDates(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	h, err := client.Historical(ctx, 30)
	gt.NoError(t, err)

	// Keys arrive as an unordered map; the client restores chronology.
	gt.Equal(t, h.Dates, []string{"1/1/20", "1/2/20", "1/31/20"})
	gt.Equal(t, h.Cases["1/31/20"], int64(31))

	rows := h.Rows()
	gt.A(t, rows).Length(3)
	gt.Equal(t, rows[2].Date, "1/31/20")
	gt.Equal(t, rows[2].Deaths, int64(3))
}

func TestNonRetryableStatusFailsFast(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	client := adapter.NewDiseaseClient(
		adapter.WithBaseURL(srv.URL),
		adapter.WithRateLimit(100),
	)

	_, err := client.Global(ctx)
	gt.Error(t, err)
}

func TestRetryOnServerError(t *testing.T) {
	ctx := context.Background()
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"cases": 1}`))
	}))
	t.Cleanup(srv.Close)

	client := adapter.NewDiseaseClient(
		adapter.WithBaseURL(srv.URL),
		adapter.WithRateLimit(100),
	)

	g, err := client.Global(ctx)
	gt.NoError(t, err)
	gt.Equal(t, g.Cases, int64(1))
	gt.Equal(t, attempts, 2)
}
