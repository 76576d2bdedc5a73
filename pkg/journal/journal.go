package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"visawatch/internal/models"
	"visawatch/pkg/booking"
	"visawatch/pkg/config"
	"visawatch/pkg/logger"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"go.uber.org/zap"
)

// Journal is the local SQLite record of booking attempts and delivered
// notifications. It backs the API's attempt listing and survives
// restarts; the monitor loop itself never depends on it.
type Journal struct {
	db *gorm.DB
}

// Open creates or opens the journal database and migrates its tables.
func Open(cfg *config.JournalConfig) (*Journal, error) {
	dir := filepath.Dir(cfg.Path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}

	// gorm's own logger stays silent; zap covers the journal's logging.
	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open journal database: %w", err)
	}

	if err := db.AutoMigrate(&models.BookingAttempt{}, &models.NotificationRecord{}); err != nil {
		return nil, fmt.Errorf("migrate journal tables: %w", err)
	}

	logger.Info("Journal opened", zap.String("path", cfg.Path))
	return &Journal{db: db}, nil
}

// Close releases the underlying connection.
func (j *Journal) Close() error {
	sqlDB, err := j.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// RecordAttempt persists a finished booking attempt with its step trail.
func (j *Journal) RecordAttempt(ctx context.Context, attempt *booking.Attempt) error {
	steps, err := json.Marshal(attempt.Steps)
	if err != nil {
		return fmt.Errorf("marshal step trail: %w", err)
	}

	record := &models.BookingAttempt{
		AttemptID:  attempt.ID,
		Consulate:  attempt.Consulate,
		FacilityID: attempt.FacilityID,
		Status:     models.AttemptStatusFailed,
		Steps:      datatypes.JSON(steps),
		FailedStep: attempt.FailedStep,
		ErrorMsg:   attempt.Error,
		StartedAt:  attempt.StartedAt,
		Duration:   attempt.Duration().Milliseconds(),
	}
	if attempt.Booked {
		record.Status = models.AttemptStatusBooked
	}
	if !attempt.FinishedAt.IsZero() {
		finished := attempt.FinishedAt
		record.FinishedAt = &finished
	}

	if err := j.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("persist booking attempt: %w", err)
	}
	return nil
}

// RecentAttempts returns the newest attempts, newest first.
func (j *Journal) RecentAttempts(ctx context.Context, limit int) ([]models.BookingAttempt, error) {
	if limit <= 0 {
		limit = 20
	}

	var attempts []models.BookingAttempt
	err := j.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&attempts).Error
	if err != nil {
		return nil, fmt.Errorf("query booking attempts: %w", err)
	}
	return attempts, nil
}

// AttemptByID returns one attempt by its UUID.
func (j *Journal) AttemptByID(ctx context.Context, attemptID string) (*models.BookingAttempt, error) {
	var attempt models.BookingAttempt
	err := j.db.WithContext(ctx).
		Where("attempt_id = ?", attemptID).
		First(&attempt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrAttemptNotFound, attemptID)
	}
	if err != nil {
		return nil, fmt.Errorf("query attempt %s: %w", attemptID, err)
	}
	return &attempt, nil
}

// RecordNotification persists one delivery outcome.
func (j *Journal) RecordNotification(ctx context.Context, channel, message string, sendErr error) error {
	record := &models.NotificationRecord{
		Channel: channel,
		Status:  models.NotificationStatusSent,
		Message: message,
		SentAt:  time.Now(),
	}
	if sendErr != nil {
		record.Status = models.NotificationStatusFailed
		record.ErrorMsg = sendErr.Error()
	}

	if err := j.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("persist notification record: %w", err)
	}
	return nil
}

// RecentNotifications returns the newest delivery records, newest first.
func (j *Journal) RecentNotifications(ctx context.Context, limit int) ([]models.NotificationRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	var records []models.NotificationRecord
	err := j.db.WithContext(ctx).
		Order("sent_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("query notification records: %w", err)
	}
	return records, nil
}
