package dashboard

import (
	"sort"
	"strings"

	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/model"
)

// SortKey selects the numeric field the table is ordered by.
type SortKey string

const (
	SortByCases      SortKey = "cases"
	SortByDeaths     SortKey = "deaths"
	SortByRecovered  SortKey = "recovered"
	SortByActive     SortKey = "active"
	SortByPopulation SortKey = "population"
)

// ParseSortKey maps a user-supplied key to a SortKey, falling back to cases.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(s)) {
	case SortByCases, SortByDeaths, SortByRecovered, SortByActive, SortByPopulation:
		return SortKey(strings.ToLower(s))
	default:
		return SortByCases
	}
}

type SortOrder int

const (
	Descending SortOrder = iota
	Ascending
)

// MaxTableRows caps the projected table regardless of the requested limit.
const MaxTableRows = 100

// TableQuery describes one table projection. It carries no hidden state:
// the same query over the same collection always yields the same rows.
type TableQuery struct {
	Filter string
	Key    SortKey
	Order  SortOrder
	Limit  int
}

// WithSort returns the query after a click on the given sort key: clicking
// the already-active key flips the order, clicking a new key resets to
// descending.
func (q TableQuery) WithSort(key SortKey) TableQuery {
	if q.Key == key {
		if q.Order == Descending {
			q.Order = Ascending
		} else {
			q.Order = Descending
		}
		return q
	}
	q.Key = key
	q.Order = Descending
	return q
}

// BuildTable projects the country collection through filter, sort and cap.
// The filter is a case-insensitive substring match on the name preserving
// relative order; the sort is stable over the filtered rows.
func BuildTable(countries []model.CountryRecord, q TableQuery) []model.CountryRecord {
	rows := make([]model.CountryRecord, 0, len(countries))
	needle := strings.ToLower(q.Filter)
	for _, c := range countries {
		if needle != "" && !strings.Contains(strings.ToLower(c.Name), needle) {
			continue
		}
		rows = append(rows, c)
	}

	key := q.Key
	if key == "" {
		key = SortByCases
	}
	sort.SliceStable(rows, func(i, j int) bool {
		vi, vj := sortValue(rows[i], key), sortValue(rows[j], key)
		if q.Order == Ascending {
			return vi < vj
		}
		return vi > vj
	})

	limit := q.Limit
	if limit <= 0 || limit > MaxTableRows {
		limit = MaxTableRows
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

func sortValue(c model.CountryRecord, key SortKey) int64 {
	switch key {
	case SortByDeaths:
		return c.Deaths
	case SortByRecovered:
		return c.Recovered
	case SortByActive:
		return c.Active
	case SortByPopulation:
		return c.Population
	default:
		return c.Cases
	}
}
