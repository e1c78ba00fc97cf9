package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/ucanfire/internal/presentation/tui"
	"github.com/aretw0/ucanfire/pkg/domain"
	"github.com/aretw0/ucanfire/pkg/runner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Take the questionnaire in the terminal",
	Long: `Asks the six questions one at a time. Answer "yes" or "no".
Type "restart" to start over or "exit" to leave. With --session and a
persistent store (file or redis) progress is kept between runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonMode, _ := cmd.Flags().GetBool("json")
		sessionID, _ := cmd.Flags().GetString("session")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		ctx := cmd.Context()
		a, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		interactive := !jsonMode && term.IsTerminal(int(os.Stdin.Fd()))

		var hooks domain.LifecycleHooks
		if interactive {
			hooks.OnStageResolved = func(e *domain.StageEvent) {
				tui.PrintStage(os.Stdout, e.Stage)
			}
		}

		var handler runner.IOHandler
		if jsonMode {
			h := runner.NewJSONHandler(os.Stdin, os.Stdout)
			h.MaxInputSize = cfg.MaxInputSize
			handler = h
		} else {
			opts := []runner.TextHandlerOption{runner.WithTextHandlerMaxInputSize(cfg.MaxInputSize)}
			if interactive {
				tui.PrintBanner(os.Stdout)
				if render, err := tui.NewRenderer(); err == nil {
					opts = append(opts, runner.WithTextHandlerRenderer(render))
				} else {
					logger.Warn("markdown renderer unavailable, using plain text", "err", err)
				}
			}
			handler = runner.NewTextHandler(os.Stdin, os.Stdout, opts...)
		}

		r := runner.NewRunner(
			runner.WithInputHandler(handler),
			runner.WithSessionManager(a.manager(hooks)),
			runner.WithSessionID(sessionID),
			runner.WithInputTimeout(timeout),
			runner.WithSignals(true),
			runner.WithLogger(logger),
		)

		err = r.Run(ctx)
		if errors.Is(err, runner.ErrInterrupted) {
			fmt.Fprintln(os.Stderr, "\nInterrupted.")
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	runCmd.Flags().String("session", "", "Session ID to resume or create (random if empty)")
	runCmd.Flags().Duration("timeout", 0, "Give up when no answer arrives within this duration (0 waits forever)")

	// 'run' is the default if no command is provided.
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
