package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/chzyer/readline"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/model"
	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/usecase/chat"
	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/usecase/dashboard"
)

func chatCommand() *cli.Command {
	var cfg config

	flags := globalFlags(&cfg)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "chat",
		Usage: "Ask the assistant about the current snapshot",
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

			gemini, err := cfg.newGemini(ctx)
			if err != nil {
				return err
			}

			// The system prompt is built from a snapshot, so load one first.
			store := dashboard.NewStore(cfg.newDataSource(),
				dashboard.WithTimeout(cfg.file.requestTimeout()),
				dashboard.WithHistoryWindow(cfg.file.HistoryDays),
			)
			defer store.Close()
			if err := store.Refresh(ctx); err != nil {
				return err
			}

			sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			session := chat.New(gemini, store,
				chat.WithSendTimeout(cfg.file.requestTimeout()),
				chat.WithChunkHook(func(chunk string) {
					if sp.Active() {
						sp.Stop()
					}
					fmt.Fprint(c.Root().Writer, chunk)
				}),
			)
			defer session.Close()

			rl, err := readline.New("> ")
			if err != nil {
				return goerr.Wrap(err, "failed to open terminal")
			}
			defer rl.Close()

			fmt.Fprintln(c.Root().Writer, "Chat session started. Type 'exit' to quit.")

			for {
				line, err := rl.Readline()
				if err != nil { // io.EOF or readline.ErrInterrupt
					if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
						break
					}
					return goerr.Wrap(err, "failed to read input")
				}

				message := strings.TrimSpace(line)
				if message == "exit" {
					break
				}
				if message == "" {
					continue
				}

				sp.Start()
				err = session.Send(ctx, message)
				if sp.Active() {
					sp.Stop()
				}
				if err != nil {
					if errors.Is(err, model.ErrBusy) {
						fmt.Fprintln(c.Root().Writer, "Still answering, try again in a moment")
						continue
					}
					// The reply was finalized with the fallback text; show it
					// and keep the session usable.
					msgs := session.Messages()
					if len(msgs) > 0 {
						fmt.Fprintln(c.Root().Writer, msgs[len(msgs)-1].Text)
					}
					continue
				}
				fmt.Fprintln(c.Root().Writer)
			}

			fmt.Fprintln(c.Root().Writer, "\nChat session completed")
			return nil
		},
	}
}
