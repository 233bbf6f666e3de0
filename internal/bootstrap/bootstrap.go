package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	prefsinadapter "wearlog/internal/modules/prefs/adapter/in"
	prefsoutadapter "wearlog/internal/modules/prefs/adapter/out"
	prefsdomain "wearlog/internal/modules/prefs/domain"
	prefsservice "wearlog/internal/modules/prefs/service"
	prefsusecase "wearlog/internal/modules/prefs/usecase"
	trackinginadapter "wearlog/internal/modules/tracking/adapter/in"
	trackingoutadapter "wearlog/internal/modules/tracking/adapter/out"
	trackingservice "wearlog/internal/modules/tracking/service"
	trackingusecase "wearlog/internal/modules/tracking/usecase"
	wearinadapter "wearlog/internal/modules/wear/adapter/in"
	wearoutadapter "wearlog/internal/modules/wear/adapter/out"
	wearservice "wearlog/internal/modules/wear/service"
	wearusecase "wearlog/internal/modules/wear/usecase"
	"wearlog/internal/platform/clock"
	"wearlog/internal/platform/config"
	"wearlog/internal/platform/id"
	"wearlog/internal/platform/locale"
	"wearlog/internal/platform/logger"
	"wearlog/internal/platform/metrics"
	"wearlog/internal/platform/sqlitedb"
	"wearlog/internal/platform/tx"
	uiapp "wearlog/internal/ui/app"
)

type App struct {
	Config      config.Config
	Locale      locale.Locale
	WearCLI     wearinadapter.CLIHandler
	PrefsCLI    prefsinadapter.CLIHandler
	TrackingCLI trackinginadapter.CLIHandler
	Metrics     *trackinginadapter.PromCollector

	logs logger.Factory
	db   *sql.DB
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	logs := logger.NewFactory(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	log := logs.For("bootstrap")

	loc, err := locale.New(cfg.Locale)
	if err != nil {
		log.Warnf("%v, using %s", err, loc.Tag())
	}

	db, err := sqlitedb.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	txm := tx.NewSQLManager(db)
	clk := clock.SystemClock{}

	sessionStore := wearoutadapter.NewSQLiteSessionStore(db, time.Local)
	wearUC := wearusecase.NewInteractor(
		wearservice.NewWearService(clk, id.UUID{}, sessionStore, clock.NewTicker(clk, cfg.TickInterval), logs.For("wear")),
		sessionStore,
		txm,
	)

	prefsUC := prefsusecase.NewInteractor(
		prefsservice.NewPrefsService(clk, prefsoutadapter.NewSQLitePreferenceStore(db), prefsdomain.Preferences{
			GoalHours:  cfg.Defaults.GoalHours,
			DayStartAt: cfg.Defaults.DayStartAt,
		}, logs.For("prefs")),
		wearUC,
		txm,
	)

	trackingSvc, err := trackingservice.NewTrackingService(clk, loc, cfg.CacheSize, logs.For("tracking"))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	trackingUC := trackingusecase.NewInteractor(trackingSvc, wearUC, prefsUC, trackingoutadapter.NewVaultDayNoteStore())

	if resumed, err := wearUC.Resume(ctx); err != nil {
		log.Warnf("resume open session: %v", err)
	} else if resumed {
		log.Debugf("open session found, live ticker armed")
	}

	return &App{
		Config:      cfg,
		Locale:      loc,
		WearCLI:     wearinadapter.NewCLIHandler(wearUC),
		PrefsCLI:    prefsinadapter.NewCLIHandler(prefsUC),
		TrackingCLI: trackinginadapter.NewCLIHandler(trackingUC),
		Metrics:     trackinginadapter.NewPromCollector(trackingUC, logs.For("metrics")),
		logs:        logs,
		db:          db,
	}, nil
}

// Close stops the live ticker and releases the database.
func (a *App) Close() error {
	a.WearCLI.Close()
	return a.db.Close()
}

// Serve exposes the tracking gauges on cfg.Metrics.Addr until ctx ends.
func (a *App) Serve(ctx context.Context) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if err := a.Metrics.Register(reg); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	return metrics.NewServer(a.Config.Metrics.Addr, reg, a.logs.For("metrics")).ListenAndServe(ctx)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.WearCLI, app.PrefsCLI, app.TrackingCLI, app.Locale)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
