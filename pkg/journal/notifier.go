package journal

import (
	"context"
	"time"

	"visawatch/pkg/logger"

	"go.uber.org/zap"
)

// Notifier matches the notification channel surface the monitor drives.
type Notifier interface {
	Name() string
	SendMessage(ctx context.Context, message string) error
}

// WrapNotifier decorates a channel so every delivery outcome lands in
// the journal. The wrapped channel's behavior is unchanged.
func (j *Journal) WrapNotifier(n Notifier) Notifier {
	return &journaledNotifier{inner: n, journal: j}
}

type journaledNotifier struct {
	inner   Notifier
	journal *Journal
}

func (jn *journaledNotifier) Name() string {
	return jn.inner.Name()
}

func (jn *journaledNotifier) SendMessage(ctx context.Context, message string) error {
	err := jn.inner.SendMessage(ctx, message)

	// The send context may already be dead when the send failed, so the
	// journal write gets its own deadline.
	recCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if recErr := jn.journal.RecordNotification(recCtx, jn.inner.Name(), message, err); recErr != nil {
		logger.Warn("Failed to journal notification",
			zap.String("channel", jn.inner.Name()),
			zap.Error(recErr))
	}

	return err
}
