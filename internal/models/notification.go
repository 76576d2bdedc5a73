package models

import (
	"time"
)

// NotificationStatus represents the delivery outcome of a notification
type NotificationStatus string

const (
	NotificationStatusSent   NotificationStatus = "sent"
	NotificationStatusFailed NotificationStatus = "failed"
)

// NotificationRecord represents one outbound notification delivery
type NotificationRecord struct {
	ID        uint               `gorm:"primaryKey" json:"id"`
	Channel   string             `gorm:"not null;index" json:"channel"` // telegram, webhook
	Status    NotificationStatus `gorm:"default:sent" json:"status"`
	Message   string             `json:"message"`
	ErrorMsg  string             `json:"error_msg"`
	SentAt    time.Time          `gorm:"index" json:"sent_at"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// TableName returns the table name for NotificationRecord model
func (NotificationRecord) TableName() string {
	return "notification_records"
}
