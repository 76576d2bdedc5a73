package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"visawatch/pkg/config"
	"visawatch/pkg/logger"
	"visawatch/pkg/notifier"
	"visawatch/pkg/slots"
	"visawatch/pkg/webhook"

	"go.uber.org/zap"
)

func main() {
	var (
		configPath = flag.String("config", "", "config file path (empty uses default search locations)")
		notify     = flag.Bool("notify", false, "send an alert when monitored consulates have open slots")
	)
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	if err := logger.InitLogger(true, "", "info"); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	logger.Info("🔍 Checking visa slot availability")

	monitorCfg := cfg.GetMonitorConfig()
	checker := slots.NewChecker(cfg.GetSlotsConfig(), monitorCfg.Cities)

	// Create context
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	report, err := checker.Check(ctx)
	if err != nil {
		logger.Error("❌ Slot check failed: " + err.Error())
		return
	}

	// Print result
	logger.Info("📊 Check Result:")
	logger.Info(fmt.Sprintf("  Locations with slots: %d", len(report.All)))
	logger.Info(fmt.Sprintf("  Monitored consulates: %d", len(report.Main)))
	logger.Info(fmt.Sprintf("  Open slots at consulates: %d", report.TotalMainSlots()))

	for _, rec := range report.All {
		marker := " "
		if rec.IsMain {
			marker = "▶"
		}
		logger.Info(fmt.Sprintf("  %s %s: %d slot(s), reported %s", marker, rec.DisplayName(), rec.Slots, rec.ReportedAt))
	}

	if *notify && report.HasMainSlots() {
		sendAlert(ctx, cfg, report)
	}

	logger.Info("✅ Check completed")
}

// sendAlert pushes the report through every enabled channel, ignoring
// the cooldown since a manual check is always deliberate.
func sendAlert(ctx context.Context, cfg *config.Config, report slots.Report) {
	message := notifier.FormatSlotAlert(report)

	if tc := cfg.GetTelegramConfig(); tc.Enabled {
		n := notifier.NewTelegramNotifier(tc)
		if err := n.SendMessage(ctx, message); err != nil {
			logger.Error("Telegram alert failed", zap.Error(err))
		} else {
			logger.Info("Telegram alert sent")
		}
	}

	if wc := cfg.GetWebhookConfig(); wc.Enabled {
		c := webhook.NewClient(wc)
		if err := c.SendMessage(ctx, message); err != nil {
			logger.Error("Webhook alert failed", zap.Error(err))
		} else {
			logger.Info("Webhook alert sent")
		}
	}
}
