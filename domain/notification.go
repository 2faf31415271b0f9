package domain

import "time"

// NotificationKind identifies which mutation produced a notification.
type NotificationKind string

const (
	NotificationCreated   NotificationKind = "created"
	NotificationCompleted NotificationKind = "completed"
	NotificationDeleted   NotificationKind = "deleted"
)

// NotificationVariant hints how the presentation layer should style the message.
type NotificationVariant string

const (
	VariantDefault     NotificationVariant = "default"
	VariantSuccess     NotificationVariant = "success"
	VariantDestructive NotificationVariant = "destructive"
)

// Notification is user-facing content emitted by a store mutation.
// The store supplies the text only; rendering belongs to the consumer.
type Notification struct {
	ID        string              `json:"id"`
	Kind      NotificationKind    `json:"kind"`
	Title     string              `json:"title"`
	Message   string              `json:"message"`
	Variant   NotificationVariant `json:"variant"`
	TaskID    string              `json:"taskId"`
	CreatedAt time.Time           `json:"createdAt"`
}
