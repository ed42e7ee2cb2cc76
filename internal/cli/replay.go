package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dshills/lockkeys/internal/app"
)

func newReplayCommand(v *viper.Viper) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "replay SCRIPT...",
		Short: "run replay scripts against the configured behaviors",
		Long: `
Run each script on a fresh keyboard and host and stop at the first failed
expectation. Script lines:

  press KEY|BEHAVIOR     release KEY|BEHAVIOR     tap KEY
  type TEXT              wait DURATION            drain
  host on|off [LOCK]
  expect lock on|off [LOCK]
  expect active BEHAVIOR true|false
  expect text "TEXT"
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			s, err := loadSettings(v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			for _, path := range args {
				if err := replayFile(ctx, cmd, s, path, verbose); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print the state after every step")
	return cmd
}

func replayFile(ctx context.Context, cmd *cobra.Command, s *settings, path string, verbose bool) error {
	script, err := app.LoadScript(path)
	if err != nil {
		return err
	}

	a, err := app.New(app.Options{Config: s.Config, Logger: s.Logger.WithName("app")})
	if err != nil {
		return err
	}
	if err := a.Start(ctx); err != nil {
		return err
	}
	defer a.Stop()

	out := cmd.OutOrStdout()
	var report func(app.Step, app.Snapshot)
	if verbose {
		report = func(step app.Step, snap app.Snapshot) {
			active := 0
			for _, l := range snap.Locks {
				if l.Active {
					active++
				}
			}
			fmt.Fprintf(out, "%s:%d: %-32s host=%s active=%d pending=%d\n",
				script.Name, step.Line, step.String(), snap.Indicators, active, snap.Pending)
		}
	}

	if err := a.Replay(ctx, script, report); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: ok (%d steps)\n", script.Name, len(script.Steps))
	return nil
}
