package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kutanig/explore-with-me/internal/entity"
	"github.com/kutanig/explore-with-me/pkg/rabbitmq"
)

const (
	notificationEventPublished      = "event.published"
	notificationRequestStatusChange = "request.status_changed"
)

// Notification — сообщение очереди уведомлений
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	EventID   int64     `json:"event_id"`
	UserID    int64     `json:"user_id,omitempty"`
	RequestID int64     `json:"request_id,omitempty"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type queueNotifier struct {
	queue rabbitmq.Queue
}

// NewQueueNotifier creates a notifier backed by a message queue
func NewQueueNotifier(queue rabbitmq.Queue) Notifier {
	return &queueNotifier{queue: queue}
}

// Уведомления не влияют на результат операции: ошибка публикации
// логируется и проглатывается
func (n *queueNotifier) publish(ctx context.Context, notification *Notification) {
	notification.ID = uuid.NewString()
	notification.CreatedAt = time.Now()

	if err := n.queue.Publish(ctx, notification); err != nil {
		logrus.WithError(err).WithField("type", notification.Type).Warn("failed to publish notification")
	}
}

func (n *queueNotifier) NotifyEventPublished(ctx context.Context, event *entity.Event) {
	n.publish(ctx, &Notification{
		Type:    notificationEventPublished,
		EventID: event.ID,
		UserID:  event.InitiatorID,
	})
}

func (n *queueNotifier) NotifyRequestStatusChanged(ctx context.Context, request *entity.ParticipationRequest) {
	n.publish(ctx, &Notification{
		Type:      notificationRequestStatusChange,
		EventID:   request.EventID,
		UserID:    request.RequesterID,
		RequestID: request.ID,
		Status:    string(request.Status),
	})
}
