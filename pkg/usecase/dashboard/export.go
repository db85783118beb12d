package dashboard

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/m-mizutani/goerr/v2"

	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/model"
)

// Table is an ordered sequence of uniform records ready for export: one
// header row followed by one row per record.
type Table struct {
	Header []string
	Rows   [][]string
}

// CountryTable builds the export view of a country collection.
func CountryTable(records []model.CountryRecord) Table {
	t := Table{
		Header: []string{"name", "iso2", "continent", "cases", "deaths", "recovered", "active", "population"},
	}
	for _, c := range records {
		t.Rows = append(t.Rows, []string{
			c.Name,
			c.ISO2,
			c.Continent,
			strconv.FormatInt(c.Cases, 10),
			strconv.FormatInt(c.Deaths, 10),
			strconv.FormatInt(c.Recovered, 10),
			strconv.FormatInt(c.Active, 10),
			strconv.FormatInt(c.Population, 10),
		})
	}
	return t
}

// HistoryTable builds the export view of the per-day chart rows.
func HistoryTable(h *model.HistoricalSeries) Table {
	t := Table{
		Header: []string{"date", "cases", "deaths", "recovered"},
	}
	for _, row := range h.Rows() {
		t.Rows = append(t.Rows, []string{
			row.Date,
			strconv.FormatInt(row.Cases, 10),
			strconv.FormatInt(row.Deaths, 10),
			strconv.FormatInt(row.Recovered, 10),
		})
	}
	return t
}

// WriteCSV serializes the table as comma-delimited text. Values containing
// the delimiter, a quote or a newline come out quoted with embedded quotes
// doubled, per RFC 4180.
func (t Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return goerr.Wrap(err, "failed to write header")
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return goerr.Wrap(err, "failed to write row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return goerr.Wrap(err, "failed to flush csv")
	}
	return nil
}

// ExportFile writes the table as CSV to the caller-supplied filename.
func ExportFile(path string, t Table) error {
	f, err := os.Create(path)
	if err != nil {
		return goerr.Wrap(err, "failed to create export file", goerr.V("path", path))
	}
	defer f.Close()

	if err := t.WriteCSV(f); err != nil {
		return err
	}
	return nil
}
