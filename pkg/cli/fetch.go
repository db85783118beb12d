package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/usecase/dashboard"
)

// tableFlags are the projection controls shared by fetch and export.
func tableFlags(filter, sortKey, order *string, limit *int64) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "filter",
			Aliases:     []string{"f"},
			Usage:       "Case-insensitive substring filter on country name",
			Destination: filter,
		},
		&cli.StringFlag{
			Name:        "sort",
			Aliases:     []string{"s"},
			Usage:       "Sort key (cases, deaths, recovered, active, population)",
			Value:       "cases",
			Destination: sortKey,
		},
		&cli.StringFlag{
			Name:        "order",
			Usage:       "Sort order (asc, desc)",
			Value:       "desc",
			Destination: order,
		},
		&cli.IntFlag{
			Name:        "limit",
			Aliases:     []string{"l"},
			Usage:       "Maximum rows to show",
			Value:       20,
			Destination: limit,
		},
	}
}

func tableQuery(filter, sortKey, order string, limit int64) dashboard.TableQuery {
	q := dashboard.TableQuery{
		Filter: filter,
		Key:    dashboard.ParseSortKey(sortKey),
		Order:  dashboard.Descending,
		Limit:  int(limit),
	}
	if order == "asc" {
		q.Order = dashboard.Ascending
	}
	return q
}

func fetchCommand() *cli.Command {
	var (
		cfg     config
		filter  string
		sortKey string
		order   string
		limit   int64
	)

	flags := tableFlags(&filter, &sortKey, &order, &limit)
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "fetch",
		Usage: "Refresh once and print the country table",
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

			renderGlobalSummary(c.Root().Writer, store.Global())
			rows := dashboard.BuildTable(store.Countries(), tableQuery(filter, sortKey, order, limit))
			renderCountryTable(c.Root().Writer, rows)
			return nil
		},
	}
}
