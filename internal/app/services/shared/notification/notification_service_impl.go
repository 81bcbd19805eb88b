package notification

import (
	"context"
	"medilab-service/internal/app/contracts"
	"medilab-service/internal/pkg/constvars"
	"medilab-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type notificationMessage struct {
	UserID            string    `json:"user_id"`
	NotificationType  string    `json:"notification_type"`
	Title             string    `json:"title"`
	Message           string    `json:"message"`
	RelatedEntityID   string    `json:"related_entity_id"`
	RelatedEntityType string    `json:"related_entity_type"`
	Priority          string    `json:"priority"`
	CreatedAt         time.Time `json:"created_at"`
}

type notificationService struct {
	Channel *amqp091.Channel
	Queue   string
	Log     *zap.Logger
}

func NewNotificationService(rabbitMQConnection *amqp091.Connection, queue string, logger *zap.Logger) (contracts.NotificationService, error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, err
	}

	_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	return &notificationService{
		Channel: channel,
		Queue:   queue,
		Log:     logger,
	}, nil
}

func (s *notificationService) Notify(ctx context.Context, userID, notificationType, title, message, relatedEntityID, relatedEntityType, priority string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("notificationService.Notify called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
		zap.String(constvars.LoggingNotificationTypeKey, notificationType),
	)

	body, err := json.Marshal(&notificationMessage{
		UserID:            userID,
		NotificationType:  notificationType,
		Title:             title,
		Message:           message,
		RelatedEntityID:   relatedEntityID,
		RelatedEntityType: relatedEntityType,
		Priority:          priority,
		CreatedAt:         time.Now().UTC(),
	})
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	headers := amqp091.Table{
		"message_type":     "JSON",
		"requeue_strategy": "DROP",
	}

	publishing := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Priority:     0,
		Headers:      headers,
	}

	err = s.Channel.PublishWithContext(ctx, "", s.Queue, false, false, publishing)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, s.Queue)
	}

	return nil
}
