package notify

import (
	"context"

	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/quantumauth-io/quantum-oracle-client/internal/metrics"
)

type Severity string

const (
	SeverityInfo        Severity = "info"
	SeverityWarning     Severity = "warning"
	SeverityDestructive Severity = "destructive"
)

// Notification is a user-visible message about a connection or fetch failure.
type Notification struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// Sink receives notifications. Delivery is fire-and-forget: Notify never
// reports failure to the caller.
type Sink interface {
	Notify(ctx context.Context, n Notification)
}

// LogSink writes notifications to the structured log.
type LogSink struct{}

func (LogSink) Notify(_ context.Context, n Notification) {
	switch n.Severity {
	case SeverityDestructive:
		log.Error(n.Title, "description", n.Description, "severity", string(n.Severity))
	case SeverityWarning:
		log.Warn(n.Title, "description", n.Description, "severity", string(n.Severity))
	default:
		log.Info(n.Title, "description", n.Description, "severity", string(n.Severity))
	}
	metrics.NotificationsTotal.WithLabelValues("log", "sent").Inc()
}

// Multi fans a notification out to every sink in order.
type Multi []Sink

func (m Multi) Notify(ctx context.Context, n Notification) {
	for _, s := range m {
		if s != nil {
			s.Notify(ctx, n)
		}
	}
}
