package repository

import (
	"context"

	"github.com/hostdesk/hostdesk/internal/model"
	"github.com/jmoiron/sqlx"
)

// NotificationsRepository defines persistence for the notification_logs
// audit table. Rows are inserted as queued and flipped exactly once to
// sent or failed; nothing ever deletes them.
type NotificationsRepository interface {
	Insert(ctx context.Context, tx *sqlx.Tx, n model.NotificationLog) error
	SetDeliveryStatus(ctx context.Context, id string, status model.NotificationStatus) error
	List(ctx context.Context) ([]model.NotificationLog, error)
}

type NotificationsRepositoryImpl struct {
	db *sqlx.DB
}

func NewNotificationsRepository(db *sqlx.DB) *NotificationsRepositoryImpl {
	return &NotificationsRepositoryImpl{db: db}
}

var _ NotificationsRepository = (*NotificationsRepositoryImpl)(nil)

func (r *NotificationsRepositoryImpl) withTx(ctx context.Context, tx *sqlx.Tx, fn func(*sqlx.Tx) error) error {
	if tx != nil {
		return fn(tx)
	}
	t, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = t.Rollback() }()
	if err := fn(t); err != nil {
		return err
	}
	return t.Commit()
}

func (r *NotificationsRepositoryImpl) Insert(ctx context.Context, tx *sqlx.Tx, n model.NotificationLog) error {
	const q = `
		INSERT INTO notification_logs
		    (id, recipient_name, recipient_email, recipient_phone, message, type, status, sent_at)
		VALUES
		    (?,  ?,              ?,               ?,               ?,       ?,    ?,      NOW())
	`
	return r.withTx(ctx, tx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, q,
			n.ID, n.RecipientName, n.RecipientEmail, n.RecipientPhone, n.Message, n.Type, n.Status.String(),
		)
		return err
	})
}

func (r *NotificationsRepositoryImpl) SetDeliveryStatus(ctx context.Context, id string, status model.NotificationStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE notification_logs SET status = ? WHERE id = ?`, status.String(), id)
	return err
}

func (r *NotificationsRepositoryImpl) List(ctx context.Context) ([]model.NotificationLog, error) {
	const q = `
		SELECT id, recipient_name, recipient_email, recipient_phone, message, type, status, sent_at
		  FROM notification_logs
		 ORDER BY sent_at
	`
	rows := []model.NotificationLog{}
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}
