package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"visawatch/pkg/booking"
	"visawatch/pkg/captcha"
	"visawatch/pkg/config"
	"visawatch/pkg/history"
	"visawatch/pkg/journal"
	"visawatch/pkg/logger"
	"visawatch/pkg/monitor"
	"visawatch/pkg/notifier"
	"visawatch/pkg/scheduler"
	"visawatch/pkg/server"
	"visawatch/pkg/slots"
	"visawatch/pkg/tasks"
	"visawatch/pkg/webhook"

	"go.uber.org/zap"
)

// @title VisaWatch API
// @version 1.0
// @description Visa appointment slot monitor with task orchestration, booking attempts and notification channels
// @BasePath /api/v1
func main() {
	var (
		configPath   = flag.String("config", "", "config file path (empty uses default search locations)")
		address      = flag.String("address", "", "listen address override")
		port         = flag.Int("port", 0, "listen port override")
		startMonitor = flag.Bool("monitor", false, "start the poll loop at boot")
		duration     = flag.Int("duration", 0, "poll loop duration in minutes (0 runs until stopped)")
	)
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	serverCfg := cfg.GetServerConfig()
	if *address != "" {
		serverCfg.Address = *address
	}
	if *port != 0 {
		serverCfg.Port = *port
	}

	appCfg := cfg.App
	logLevel := "info"
	logFile := ""
	isDevelopment := true
	if appCfg != nil {
		if appCfg.LogLevel != "" {
			logLevel = appCfg.LogLevel
		}
		logFile = appCfg.LogFile
		isDevelopment = appCfg.Environment != "production"
	}

	if err := logger.InitLogger(isDevelopment, logFile, logLevel); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	if err := cfg.ValidateConfig(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, cleanup, err := buildApplication(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to build application", zap.Error(err))
	}
	defer cleanup()

	if app.scheduler != nil {
		go func() {
			if err := app.scheduler.Start(); err != nil {
				logger.Error("Scheduler stopped with error", zap.Error(err))
			}
		}()
	}

	if *startMonitor {
		if err := app.taskMgr.StartMonitor(*duration); err != nil {
			logger.Error("Failed to start poll loop at boot", zap.Error(err))
		}
	}

	// Run the HTTP server in the background so the main goroutine can
	// wait on shutdown signals.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- app.srv.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil {
			logger.Error("HTTP server failed", zap.Error(err))
		}
	}

	shutdownTimeout := 30 * time.Second
	if cfg.Runtime != nil && cfg.Runtime.GracefulShutdownTimeout > 0 {
		shutdownTimeout = time.Duration(cfg.Runtime.GracefulShutdownTimeout) * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := app.srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	if app.scheduler != nil {
		if err := app.scheduler.Shutdown(shutdownCtx); err != nil {
			logger.Error("Scheduler shutdown failed", zap.Error(err))
		}
	}

	cancel()
	logger.Info("Server stopped")
}

// application bundles what main drives after wiring.
type application struct {
	srv       *server.HTTPServer
	taskMgr   *tasks.Manager
	scheduler *scheduler.TaskScheduler
}

// buildApplication wires every configured component together. Optional
// components that are disabled stay nil; the API reports them as
// unavailable instead of failing at boot.
func buildApplication(ctx context.Context, cfg *config.Config) (*application, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	monitorCfg := cfg.GetMonitorConfig()
	telegramCfg := cfg.GetTelegramConfig()

	checker := slots.NewChecker(cfg.GetSlotsConfig(), monitorCfg.Cities)

	cooldownWindow := time.Duration(telegramCfg.Cooldown) * time.Second
	mon := monitor.New(monitorCfg, checker, cooldownWindow)

	taskMgr := tasks.NewManager(ctx, cfg)
	taskMgr.SetChecker(checker)
	taskMgr.SetMonitor(mon)

	// Local journal for booking attempts and notification deliveries.
	var jnl *journal.Journal
	if jc := cfg.GetJournalConfig(); jc.Enabled {
		j, err := journal.Open(jc)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to open journal: %w", err)
		}
		jnl = j
		closers = append(closers, func() {
			if err := jnl.Close(); err != nil {
				logger.Error("Failed to close journal", zap.Error(err))
			}
		})
		logger.Info("Journal opened", zap.String("path", jc.Path))
	}

	// Outbound notification channels, journaled when the journal is up.
	var channels []notifier.Notifier
	if telegramCfg.Enabled {
		channels = append(channels, notifier.NewTelegramNotifier(telegramCfg))
	}
	if wc := cfg.GetWebhookConfig(); wc.Enabled {
		channels = append(channels, webhook.NewClient(wc))
	}
	for i, ch := range channels {
		if jnl != nil {
			channels[i] = jnl.WrapNotifier(ch)
		}
	}
	for _, ch := range channels {
		taskMgr.AddNotifier(ch)
		mon.AddNotifier(ch)
	}
	logger.Info("Notification channels wired", zap.Int("count", len(channels)))

	// Check-history store.
	var store *history.Store
	if chc := cfg.GetClickHouseConfig(); chc.Enabled {
		s, err := history.Open(chc)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to open check-history store: %w", err)
		}
		store = s
		closers = append(closers, func() {
			if err := store.Close(); err != nil {
				logger.Error("Failed to close check-history store", zap.Error(err))
			}
		})

		schemaCtx, schemaCancel := context.WithTimeout(ctx, 10*time.Second)
		err = store.EnsureSchema(schemaCtx)
		schemaCancel()
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to ensure check-history schema: %w", err)
		}

		taskMgr.SetHistory(store)
		mon.SetRecorder(store)
		logger.Info("Check-history store connected", zap.Strings("hosts", chc.Hosts))
	}

	// Booking bot.
	if bc := cfg.GetBookingConfig(); bc.Enabled {
		solver, err := captcha.NewSolver(bc.Captcha)
		if err != nil {
			logger.Warn("CAPTCHA solver unavailable, attempts abort on CAPTCHA", zap.Error(err))
			solver = nil
		}

		bot := booking.NewBot(bc, solver)
		if bc.Captcha.Provider == "witai" {
			bot.SetTranscriber(captcha.NewWitClient(bc.Captcha))
		}
		if jnl != nil {
			bot.SetSink(jnl)
		}
		taskMgr.SetBooker(bot)

		retryDelay := time.Duration(bc.RetryTimeout) * time.Second
		mon.SetBooker(bot, retryDelay)
		logger.Info("Booking bot wired",
			zap.Bool("headless", bc.Headless),
			zap.Bool("book_on_slot", monitorCfg.BookOnSlot))
	}

	srv, err := server.NewHTTPServer(ctx, &server.Config{
		Address: cfg.GetServerConfig().Address,
		Port:    cfg.GetServerConfig().Port,
		Config:  cfg,
	}, taskMgr)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create HTTP server: %w", err)
	}

	hs := srv.HandlerService()
	hs.SetMonitor(taskMgr, mon)
	if store != nil {
		hs.SetHistory(store)
	}
	if jnl != nil {
		hs.SetJournal(jnl)
	}
	for _, ch := range channels {
		hs.AddNotifier(ch)
	}

	var sched *scheduler.TaskScheduler
	if sc := cfg.GetSchedulerConfig(); sc.Enabled {
		sched, err = scheduler.NewTaskScheduler(ctx, &scheduler.Config{Config: cfg}, taskMgr)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to create scheduler: %w", err)
		}
		srv.SetScheduler(sched)
	}

	return &application{srv: srv, taskMgr: taskMgr, scheduler: sched}, cleanup, nil
}
