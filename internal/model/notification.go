package model

import "time"

type NotificationStatus string

const (
	NotificationQueued NotificationStatus = "queued"
	NotificationSent   NotificationStatus = "sent"
	NotificationFailed NotificationStatus = "failed"
)

func (s NotificationStatus) String() string { return string(s) }

func (s NotificationStatus) Valid() bool {
	return s == NotificationQueued || s == NotificationSent || s == NotificationFailed
}

// NotificationLog is one attempted customer notification. Rows carry the
// recipient's contact fields denormalized from the reservation (no FK), so
// the audit trail survives reservation deletion. Rows are append-only; only
// the delivery status flips once, queued -> sent|failed, after the send
// attempt.
type NotificationLog struct {
	ID             string             `db:"id"` // ULID
	RecipientName  string             `db:"recipient_name"`
	RecipientEmail string             `db:"recipient_email"`
	RecipientPhone string             `db:"recipient_phone"`
	Message        string             `db:"message"`
	Type           string             `db:"type"` // e.g. "reservation_confirmed"
	Status         NotificationStatus `db:"status"`
	SentAt         time.Time          `db:"sent_at"`
}
