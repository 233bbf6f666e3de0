package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"wearlog/internal/bootstrap"
	trackingdto "wearlog/internal/modules/tracking/dto"
	weardto "wearlog/internal/modules/wear/dto"
	"wearlog/internal/platform/config"
	apperrors "wearlog/internal/platform/errors"
	historyview "wearlog/internal/ui/views/history"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootFlags struct {
	dataDir    string
	configPath string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "wearlog",
		Short:         "Track daily wearing time against a goal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", config.DefaultDataDir(), "directory holding the database and config.yaml")
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "explicit config file (yaml or json)")

	root.AddCommand(newSessionCmd(flags))
	root.AddCommand(newTodayCmd(flags))
	root.AddCommand(newHistoryCmd(flags))
	root.AddCommand(newScoreCmd(flags))
	root.AddCommand(newPrefsCmd(flags))
	root.AddCommand(newExportCmd(flags))
	root.AddCommand(newServeCmd(flags))
	root.AddCommand(newTUICmd(flags))
	return root
}

func loadApp(ctx context.Context, flags *rootFlags) (*bootstrap.App, error) {
	cfg, err := config.Load(flags.dataDir, flags.configPath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg)
}

// withApp runs fn against a freshly wired app and closes it afterwards.
func withApp(ctx context.Context, flags *rootFlags, fn func(*bootstrap.App) error) error {
	app, err := loadApp(ctx, flags)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(app)
}

func newTUICmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the wearlog terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, bootstrap.RunTUI)
		},
	}
}

func newSessionCmd(flags *rootFlags) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Wearing session lifecycle"}

	start := &cobra.Command{
		Use:   "start",
		Short: "Start wearing now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				out, err := app.WearCLI.Start(cmd.Context())
				if err != nil {
					return err
				}
				printSession(cmd.OutOrStdout(), "started", out, out.StartedAt)
				return nil
			})
		},
	}

	stop := &cobra.Command{
		Use:   "stop",
		Short: "Stop wearing now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				out, err := app.WearCLI.Stop(cmd.Context())
				if err != nil {
					return err
				}
				printSession(cmd.OutOrStdout(), "stopped", out, *out.EndedAt)
				return nil
			})
		},
	}

	startAt := &cobra.Command{
		Use:   "start-at HH:MM",
		Short: "Record a session that started earlier today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				out, err := app.WearCLI.StartAt(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printSession(cmd.OutOrStdout(), "started", out, out.StartedAt)
				return nil
			})
		},
	}

	stopAt := &cobra.Command{
		Use:   "stop-at HH:MM",
		Short: "Close the open session at an earlier time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				out, err := app.WearCLI.StopAt(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printSession(cmd.OutOrStdout(), "stopped", out, *out.EndedAt)
				return nil
			})
		},
	}

	var watch bool
	status := &cobra.Command{
		Use:   "status",
		Short: "Show whether a session is open and today's total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stopSignals := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stopSignals()
			return withApp(ctx, flags, func(app *bootstrap.App) error {
				report, err := app.TrackingCLI.Report(ctx, 0)
				if err != nil {
					return err
				}
				printStatus(cmd.OutOrStdout(), report)
				if !watch || !report.IsWearing {
					return nil
				}
				ticks := app.WearCLI.Ticks()
				for {
					select {
					case <-ctx.Done():
						return nil
					case <-ticks:
						report, err := app.TrackingCLI.Report(ctx, 0)
						if err != nil {
							return err
						}
						printStatus(cmd.OutOrStdout(), report)
					}
				}
			})
		},
	}
	status.Flags().BoolVar(&watch, "watch", false, "refresh on every live tick until interrupted")

	list := &cobra.Command{
		Use:   "list",
		Short: "List recorded sessions, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				sessions, err := app.WearCLI.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(sessions) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
					return nil
				}
				now := time.Now()
				for _, s := range sessions {
					end := "open"
					if s.EndedAt != nil {
						end = s.EndedAt.Format(time.DateTime)
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", s.ID, s.StartedAt.Format(time.DateTime), end, s.Duration(now).Truncate(time.Second))
				}
				return nil
			})
		},
	}

	session.AddCommand(start, stop, startAt, stopAt, status, list)
	return session
}

func newTodayCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's worn time, progress and estimated end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				report, err := app.TrackingCLI.Report(cmd.Context(), 0)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "%s\n", report.Today)
				_, _ = fmt.Fprintf(w, "worn: %s / %sh\n", report.TotalTime, strconv.FormatFloat(report.GoalHours, 'f', -1, 64))
				_, _ = fmt.Fprintf(w, "progress: %s\n", app.Locale.Percent(report.Progress))
				_, _ = fmt.Fprintf(w, "%s\n", report.EstEndTime)
				_, _ = fmt.Fprintf(w, "score: %.0f\n", report.CurrentScore)
				if report.IsWearing && report.OpenSince != nil {
					_, _ = fmt.Fprintf(w, "wearing since %s\n", report.OpenSince.Format("15:04"))
				}
				printWarnings(w, report.Warnings)
				return nil
			})
		},
	}
}

func newHistoryCmd(flags *rootFlags) *cobra.Command {
	var days int
	history := &cobra.Command{
		Use:   "history",
		Short: "List tracking days with their segments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				report, err := app.TrackingCLI.Report(cmd.Context(), days)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if len(report.GroupedSessions) == 0 {
					_, _ = fmt.Fprintln(w, "no history")
					return nil
				}
				shown := report.GroupedSessions
				if days > 0 && len(shown) > days {
					shown = shown[:days]
				}
				for _, b := range shown {
					printBucket(w, b)
				}
				_, _ = fmt.Fprintf(w, "progress %s\n", historyview.Sparkline(report.HistoricalProgress, 100))
				printWarnings(w, report.Warnings)
				return nil
			})
		},
	}
	history.Flags().IntVar(&days, "days", 0, "number of most recent days (0 = all)")
	return history
}

func newScoreCmd(flags *rootFlags) *cobra.Command {
	var days int
	score := &cobra.Command{
		Use:   "score",
		Short: "Show the compliance score and its recent history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				report, err := app.TrackingCLI.Report(cmd.Context(), days)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "score: %.0f\n", report.CurrentScore)
				_, _ = fmt.Fprintf(w, "history: %s\n", historyview.Sparkline(report.HistoricalScores, 100))
				st := report.Stats
				_, _ = fmt.Fprintf(w, "days: %d (goal met %d)\n", st.Days, st.DaysGoalMet)
				if st.Days > 0 {
					_, _ = fmt.Fprintf(w, "progress mean %.1f%% median %.1f%% stddev %.1f\n", st.MeanProgress, st.MedianProgress, st.StdDevProgress)
					_, _ = fmt.Fprintf(w, "best: %s (%.1f%%)\n", st.BestDay, st.BestTotal)
				}
				return nil
			})
		},
	}
	score.Flags().IntVar(&days, "days", 7, "length of the score history (max 90)")
	return score
}

func newPrefsCmd(flags *rootFlags) *cobra.Command {
	prefs := &cobra.Command{Use: "prefs", Short: "Goal and day start preferences"}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show current preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				out, err := app.PrefsCLI.Show(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "goal_hours: %s%s\nday_start_at: %s%s\n",
					strconv.FormatFloat(out.GoalHours, 'f', -1, 64), defaultMark(out.GoalIsDefault),
					out.DayStartAt, defaultMark(out.DayStartIsDefault))
				return nil
			})
		},
	}

	setGoal := &cobra.Command{
		Use:   "set-goal <hours>",
		Short: "Set the daily goal in hours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("%w: goal %q is not a number", apperrors.ErrInvalidInput, args[0])
			}
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				out, err := app.PrefsCLI.SetGoal(cmd.Context(), hours)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "goal set to %sh\n", strconv.FormatFloat(out.GoalHours, 'f', -1, 64))
				return nil
			})
		},
	}

	setDayStart := &cobra.Command{
		Use:   "set-day-start HH:MM",
		Short: "Set the time at which a tracking day begins",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				out, err := app.PrefsCLI.SetDayStart(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "day starts at %s\n", out.DayStartAt)
				return nil
			})
		},
	}

	var yes bool
	reset := &cobra.Command{
		Use:   "reset --yes",
		Short: "Delete every session and restore default preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("reset deletes all sessions, pass --yes to confirm")
			}
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				if err := app.PrefsCLI.Reset(cmd.Context()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "history cleared, preferences restored")
				return nil
			})
		},
	}
	reset.Flags().BoolVar(&yes, "yes", false, "confirm the reset")

	prefs.AddCommand(show, setGoal, setDayStart, reset)
	return prefs
}

func newExportCmd(flags *rootFlags) *cobra.Command {
	var dir string
	var days int
	export := &cobra.Command{
		Use:   "export",
		Short: "Write one markdown note per tracking day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				target := dir
				if target == "" {
					target = filepath.Join(app.Config.DataDir, "notes")
				}
				out, err := app.TrackingCLI.Export(cmd.Context(), target, days)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d notes to %s\n", len(out.Paths), out.Dir)
				return nil
			})
		},
	}
	export.Flags().StringVar(&dir, "dir", "", "target directory (default <data-dir>/notes)")
	export.Flags().IntVar(&days, "days", 0, "number of most recent days (0 = all)")
	return export
}

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Expose the tracking gauges for Prometheus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return withApp(ctx, flags, func(app *bootstrap.App) error {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "serving metrics on %s\n", app.Config.Metrics.Addr)
				return app.Serve(ctx)
			})
		},
	}
}

func printSession(w io.Writer, verb string, s weardto.SessionOutput, at time.Time) {
	_, _ = fmt.Fprintf(w, "session %s: %s at=%s duration=%s\n", verb, s.ID, at.Format(time.DateTime), s.Duration(at).Truncate(time.Second))
}

func printStatus(w io.Writer, r trackingdto.ReportOutput) {
	state := "not wearing"
	if r.IsWearing && r.OpenSince != nil {
		state = "wearing since " + r.OpenSince.Format("15:04")
	}
	_, _ = fmt.Fprintf(w, "%s  %s  %.1f%%  %s\n", state, r.TotalTime, r.Progress, r.EstEndTime)
}

func printBucket(w io.Writer, b trackingdto.BucketOutput) {
	partial := ""
	if b.IsPartialDay {
		partial = " (partial)"
	}
	var worn time.Duration
	for _, seg := range b.Segments {
		worn += seg.Duration
	}
	_, _ = fmt.Fprintf(w, "%s\t%s\t%.1f%%%s\n", b.Date, worn.Truncate(time.Second), b.Total, partial)
	for _, seg := range b.Segments {
		end := "…"
		if seg.End != nil {
			end = seg.End.Format("15:04")
		}
		_, _ = fmt.Fprintf(w, "  %s-%s\t%s\n", seg.Start.Format("15:04"), end, seg.Duration.Truncate(time.Second))
	}
}

func printWarnings(w io.Writer, warnings []string) {
	for _, msg := range warnings {
		_, _ = fmt.Fprintf(w, "warning: %s\n", msg)
	}
}

func defaultMark(isDefault bool) string {
	if isDefault {
		return " (default)"
	}
	return ""
}
