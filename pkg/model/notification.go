package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationID string

// NewNotificationID generates a new unique NotificationID
func NewNotificationID() NotificationID {
	return NotificationID(uuid.New().String())
}

// Notification is a short-lived status message. It is removed automatically
// after TTL or earlier by an explicit dismissal; removal is idempotent.
type Notification struct {
	ID        NotificationID
	Text      string
	CreatedAt time.Time
	TTL       time.Duration
}
