package model

import "time"

// GlobalSnapshot is the worldwide case summary. It is an immutable value:
// a refresh replaces the whole snapshot, individual fields are never patched.
type GlobalSnapshot struct {
	Cases          int64
	Deaths         int64
	Recovered      int64
	Active         int64
	TodayCases     int64
	TodayDeaths    int64
	TodayRecovered int64
	Population     int64
	UpdatedAt      time.Time
}

// CountryRecord is one country's case summary. The upstream collection has no
// guaranteed ordering or uniqueness, so consumers must not assume either.
type CountryRecord struct {
	Name       string
	ISO2       string
	ISO3       string
	FlagURL    string
	Cases      int64
	Deaths     int64
	Recovered  int64
	Active     int64
	Population int64
	Continent  string
}

// HistoricalSeries holds three date-keyed series sharing one chronologically
// ordered key set. Dates keeps the upstream M/D/YY key format.
type HistoricalSeries struct {
	Dates     []string
	Cases     map[string]int64
	Deaths    map[string]int64
	Recovered map[string]int64
}

// ChartRow is one per-day row derived from a HistoricalSeries.
type ChartRow struct {
	Date      string
	Cases     int64
	Deaths    int64
	Recovered int64
}

// Rows flattens the series into per-day chart rows in chronological order.
func (h *HistoricalSeries) Rows() []ChartRow {
	rows := make([]ChartRow, 0, len(h.Dates))
	for _, d := range h.Dates {
		rows = append(rows, ChartRow{
			Date:      d,
			Cases:     h.Cases[d],
			Deaths:    h.Deaths[d],
			Recovered: h.Recovered[d],
		})
	}
	return rows
}
