package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/usecase/dashboard"
)

func exportCommand() *cli.Command {
	var (
		cfg     config
		output  string
		view    string
		filter  string
		sortKey string
		order   string
		limit   int64
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output CSV filename",
			Required:    true,
			Destination: &output,
		},
		&cli.StringFlag{
			Name:        "view",
			Usage:       "View to export (countries, history)",
			Value:       "countries",
			Destination: &view,
		},
	}
	flags = append(flags, tableFlags(&filter, &sortKey, &order, &limit)...)
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "export",
		Usage: "Refresh once and write the selected view as CSV",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := cfg.setup(); err != nil {
				return err
			}

			repo, err := cfg.newRepository()
			if err != nil {
				return err
			}
			defer repo.Close()

			if _, err := requireProfile(ctx, repo); err != nil {
				return err
			}

			store := dashboard.NewStore(cfg.newDataSource(),
				dashboard.WithTimeout(cfg.file.requestTimeout()),
				dashboard.WithHistoryWindow(cfg.file.HistoryDays),
			)
			defer store.Close()

			if err := store.Refresh(ctx); err != nil {
				return err
			}

			var table dashboard.Table
			switch view {
			case "countries":
				rows := dashboard.BuildTable(store.Countries(), tableQuery(filter, sortKey, order, limit))
				table = dashboard.CountryTable(rows)
			case "history":
				table = dashboard.HistoryTable(store.History())
			default:
				return goerr.New("unknown view", goerr.V("view", view))
			}

			if err := dashboard.ExportFile(output, table); err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "Exported %d rows to %s\n", len(table.Rows), output)
			return nil
		},
	}
}
