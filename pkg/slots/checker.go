package slots

import (
	"context"
	"time"

	"visawatch/pkg/config"
	"visawatch/pkg/logger"

	"go.uber.org/zap"
)

// Checker runs the fetch-and-classify pipeline for one cycle.
type Checker struct {
	client *Client
	parser *Parser
}

// NewChecker wires a feed client and a parser for the given monitored
// cities.
func NewChecker(cfg *config.SlotsConfig, cities []string) *Checker {
	parser := NewParser(cities)
	if cfg.MaxSlotAge > 0 {
		parser.MaxAge = time.Duration(cfg.MaxSlotAge) * time.Minute
	}

	return &Checker{
		client: NewClient(cfg),
		parser: parser,
	}
}

// Parser exposes the checker's classification rules, mainly so callers
// can report the monitored set.
func (ch *Checker) Parser() *Parser {
	return ch.parser
}

// Check performs one cycle. A transport or decode failure degrades to
// an empty report and the error is returned for logging; the report is
// always usable.
func (ch *Checker) Check(ctx context.Context) (Report, error) {
	checkedAt := time.Now()

	details, err := ch.client.Fetch(ctx)
	if err != nil {
		return Report{CheckedAt: checkedAt}, err
	}

	report := ch.parser.Classify(details, checkedAt)

	logger.Debug("Classified slot feed",
		zap.Int("locations", len(report.All)),
		zap.Int("main", len(report.Main)),
		zap.Int("main_slots", report.TotalMainSlots()))

	return report, nil
}
