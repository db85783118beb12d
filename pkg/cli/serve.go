package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/model"
	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/usecase/dashboard"
	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/utils/logging"
)

// loggingNotifier mirrors queue notifications into the log so the serve loop
// is observable without a UI.
type loggingNotifier struct {
	queue *dashboard.Queue
}

func (n *loggingNotifier) Push(text string) model.NotificationID {
	logging.Default().Info("notification", "text", text)
	return n.queue.Push(text)
}

func serveCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "serve",
		Usage: "Run the live dashboard loop with periodic refresh",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := cfg.setup(); err != nil {
				return err
			}
			logger := logging.Default()

			repo, err := cfg.newRepository()
			if err != nil {
				return err
			}
			defer repo.Close()

			profile, err := requireProfile(ctx, repo)
			if err != nil {
				return err
			}
			logger.Info("starting dashboard", "user", profile.Name,
				"interval", cfg.file.refreshInterval())

			queue := dashboard.NewQueue(
				dashboard.WithTTL(cfg.file.notificationTTL()),
				dashboard.WithCapacity(cfg.file.NotificationCap),
			)
			store := dashboard.NewStore(cfg.newDataSource(),
				dashboard.WithNotifier(&loggingNotifier{queue: queue}),
				dashboard.WithTimeout(cfg.file.requestTimeout()),
				dashboard.WithHistoryWindow(cfg.file.HistoryDays),
			)

			refresh := func() {
				if err := store.Refresh(ctx); err != nil {
					switch {
					case errors.Is(err, model.ErrBusy):
						logger.Debug("refresh tick skipped, previous refresh still running")
					case errors.Is(err, model.ErrClosed):
						// Shutting down.
					default:
						logger.Warn("refresh failed", "error", err)
					}
					return
				}
				g := store.Global()
				logger.Info("snapshot updated",
					"cases", g.Cases, "deaths", g.Deaths,
					"countries", len(store.Countries()))
			}

			// First snapshot before the periodic cadence starts.
			refresh()

			sched := dashboard.NewScheduler(refresh)
			sched.Start(cfg.file.refreshInterval())

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()

			logger.Info("shutting down")
			sched.Stop()
			store.Close()
			queue.Close()
			return nil
		},
	}
}
