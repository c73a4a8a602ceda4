package notify

import (
	"context"

	"salonbook/pkg/logger"
)

// LogNotifier writes notifications to the service log. It is the channel used
// when neither email nor SMS is configured.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, subject, body string) error {
	n.log.Info("Booking notification", "subject", subject, "body", body)
	return nil
}
