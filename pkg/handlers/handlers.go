package handlers

import (
	_ "visawatch/pkg/models" // imported for swagger documentation
)

// This file is the entry point of the handlers package. The handlers
// are split by functional domain across the following files:
// - base.go: HandlerService structure and dependency wiring
// - errors.go: error definitions and handling
// - middleware.go: shared helpers (masking, response building)
// - health_handlers.go: health check, status and config APIs
// - slot_handlers.go: availability report APIs
// - monitor_handlers.go: poll loop control APIs
// - task_handlers.go: task submission and inspection APIs
// - history_handlers.go: recorded check and summary APIs
// - booking_handlers.go: booking attempt APIs
// - schedule_handlers.go: scheduler APIs
// - notification_handlers.go: notification channel APIs

// All handler methods hang off handlers.HandlerService, so route
// registration only ever needs the one service value.
