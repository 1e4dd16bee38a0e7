package results

import (
	"context"
	"time"

	"career-workers/internal/common/logger"
)

// EventQuizResultSaveFailed is published when a computed quiz result could
// not be persisted.
const EventQuizResultSaveFailed = "quiz_result_save_failed"

// SaveFailure describes a result that was shown to the student but not stored.
type SaveFailure struct {
	StudentID  string    `json:"studentId"`
	CareerID   string    `json:"careerId"`
	Readiness  int       `json:"readinessPercentage"`
	Error      string    `json:"error"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Notifier interface {
	NotifySaveFailure(ctx context.Context, f SaveFailure) error
}

// EventPublisher is satisfied by the SNS client.
type EventPublisher interface {
	PublishEvent(ctx context.Context, eventType string, payload interface{}) (string, error)
}

// PublishingNotifier sends save failures to an event topic.
type PublishingNotifier struct {
	publisher EventPublisher
	logger    logger.Logger
}

func NewPublishingNotifier(p EventPublisher, log logger.Logger) *PublishingNotifier {
	return &PublishingNotifier{publisher: p, logger: log}
}

func (n *PublishingNotifier) NotifySaveFailure(ctx context.Context, f SaveFailure) error {
	id, err := n.publisher.PublishEvent(ctx, EventQuizResultSaveFailed, f)
	if err != nil {
		return err
	}
	n.logger.Debug("save failure published", map[string]interface{}{
		"messageId": id,
		"studentId": f.StudentID,
	})
	return nil
}

// LogNotifier only logs. It is used when no topic is configured.
type LogNotifier struct {
	logger logger.Logger
}

func NewLogNotifier(log logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log}
}

func (n *LogNotifier) NotifySaveFailure(_ context.Context, f SaveFailure) error {
	n.logger.Warn("quiz result was not saved", map[string]interface{}{
		"studentId": f.StudentID,
		"careerId":  f.CareerID,
		"error":     f.Error,
	})
	return nil
}
