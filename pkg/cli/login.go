package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/model"
	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/repository"
)

// requireProfile is the identity gate: dashboard commands refuse to run
// until a profile has been stored with login.
func requireProfile(ctx context.Context, repo repository.Repository) (*model.Profile, error) {
	profile, err := repo.GetProfile(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read profile")
	}
	if profile == nil {
		return nil, goerr.New("not logged in; run 'covidash login' first")
	}
	return profile, nil
}

func loginCommand() *cli.Command {
	var (
		cfg   config
		name  string
		email string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "name",
			Aliases:     []string{"n"},
			Usage:       "Display name",
			Required:    true,
			Destination: &name,
		},
		&cli.StringFlag{
			Name:        "email",
			Aliases:     []string{"e"},
			Usage:       "Email address",
			Required:    true,
			Destination: &email,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "login",
		Usage: "Store the identity record that unlocks the dashboard",
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

			profile := &model.Profile{
				Name:      name,
				Email:     email,
				UpdatedAt: time.Now(),
			}
			if err := repo.PutProfile(ctx, profile); err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "Logged in as %s <%s>\n", profile.Name, profile.Email)
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "logout",
		Usage: "Clear the stored identity record",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := cfg.setup(); err != nil {
				return err
			}

			repo, err := cfg.newRepository()
			if err != nil {
				return err
			}
			defer repo.Close()

			if err := repo.DeleteProfile(ctx); err != nil {
				return err
			}

			fmt.Fprintln(c.Root().Writer, "Logged out")
			return nil
		},
	}
}

func whoamiCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the stored identity record",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := cfg.setup(); err != nil {
				return err
			}

			repo, err := cfg.newRepository()
			if err != nil {
				return err
			}
			defer repo.Close()

			profile, err := repo.GetProfile(ctx)
			if err != nil {
				return err
			}
			if profile == nil {
				fmt.Fprintln(c.Root().Writer, "Not logged in")
				return nil
			}

			fmt.Fprintf(c.Root().Writer, "%s <%s>\n", profile.Name, profile.Email)
			return nil
		},
	}
}
