package contracts

import "context"

// NotificationService delivers user-facing notifications. Calls are
// fire-and-forget from the order and payment cores: a failed publish is
// logged by the caller and never rolls back the committed transition.
type NotificationService interface {
	Notify(ctx context.Context, userID, notificationType, title, message, relatedEntityID, relatedEntityType, priority string) error
}
