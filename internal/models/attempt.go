package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AttemptStatus represents the outcome of a booking attempt
type AttemptStatus string

const (
	AttemptStatusBooked AttemptStatus = "booked"
	AttemptStatusFailed AttemptStatus = "failed"
)

// BookingAttempt represents one end-to-end booking run against the portal
type BookingAttempt struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	AttemptID  string         `gorm:"uniqueIndex;not null" json:"attempt_id"` // UUID
	Consulate  string         `gorm:"not null" json:"consulate"`
	FacilityID string         `json:"facility_id"`
	Status     AttemptStatus  `gorm:"default:failed" json:"status"`
	Steps      datatypes.JSON `json:"steps"` // Ordered step trail
	FailedStep string         `json:"failed_step"`
	ErrorMsg   string         `json:"error_msg"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt *time.Time     `json:"finished_at"`
	Duration   int64          `json:"duration"` // Duration in milliseconds
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the table name for BookingAttempt model
func (BookingAttempt) TableName() string {
	return "booking_attempts"
}
