package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/model"
)

func renderCountryTable(w io.Writer, rows []model.CountryRecord) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"COUNTRY", "CONTINENT", "CASES", "DEATHS", "RECOVERED", "ACTIVE"})
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})
	tw.SetAutoWrapText(false)

	for _, c := range rows {
		tw.Append([]string{
			c.Name,
			c.Continent,
			strconv.FormatInt(c.Cases, 10),
			strconv.FormatInt(c.Deaths, 10),
			strconv.FormatInt(c.Recovered, 10),
			strconv.FormatInt(c.Active, 10),
		})
	}
	tw.Render()
}

func renderGlobalSummary(w io.Writer, g *model.GlobalSnapshot) {
	if g == nil {
		fmt.Fprintln(w, "No data loaded yet")
		return
	}
	fmt.Fprintf(w, "Global: %d cases (+%d today), %d deaths (+%d today), %d recovered, %d active\n",
		g.Cases, g.TodayCases, g.Deaths, g.TodayDeaths, g.Recovered, g.Active)
}
