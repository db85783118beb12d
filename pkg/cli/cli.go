package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/utils/logging"
)

type Error struct {
	Code    int
	Message string
}

func Run(ctx context.Context, argv []string) *Error {
	cmd := &cli.Command{
		Name:  "covidash",
		Usage: "Live COVID-19 analytics dashboard with a streaming assistant",
		Commands: []*cli.Command{
			serveCommand(),
			fetchCommand(),
			exportCommand(),
			chatCommand(),
			loginCommand(),
			logoutCommand(),
			whoamiCommand(),
		},
	}

	if err := cmd.Run(ctx, argv); err != nil {
		logging.Default().Error("command failed", "error", err)
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}

	return nil
}
