package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hostdesk/hostdesk/internal/logger"
	"github.com/hostdesk/hostdesk/internal/metrics"
	"github.com/hostdesk/hostdesk/internal/model"
	"github.com/hostdesk/hostdesk/internal/notifier"
	"github.com/hostdesk/hostdesk/internal/repository"
	"github.com/hostdesk/hostdesk/internal/util"
	"go.uber.org/zap"
)

var (
	ErrNotFound          = errors.New("reservation not found")
	ErrValidation        = errors.New("invalid reservation input")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Reservations owns the reservation lifecycle: create, list, delete, and the
// status-transition workflow with its audit log and SMS side effect.
type Reservations struct {
	reservations  repository.ReservationsRepository
	notifications repository.NotificationsRepository
	sender        notifier.Notifier
}

func NewReservations(
	reservationsRepo repository.ReservationsRepository,
	notificationsRepo repository.NotificationsRepository,
	sender notifier.Notifier,
) *Reservations {
	return &Reservations{
		reservations:  reservationsRepo,
		notifications: notificationsRepo,
		sender:        sender,
	}
}

type CreateParams struct {
	Name      string
	Email     string
	Phone     string
	TableSize int
	DateTime  time.Time
}

// Create persists a new reservation with status=pending. No uniqueness or
// overlap checks: double bookings are the host's problem, not ours.
func (s *Reservations) Create(ctx context.Context, p CreateParams) (*model.Reservation, error) {
	if p.Name == "" || p.Phone == "" {
		return nil, fmt.Errorf("%w: name and phone are required", ErrValidation)
	}
	if p.TableSize <= 0 {
		return nil, fmt.Errorf("%w: table_size must be positive", ErrValidation)
	}
	if p.DateTime.IsZero() {
		return nil, fmt.Errorf("%w: date_time is required", ErrValidation)
	}

	r := &model.Reservation{
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		TableSize: p.TableSize,
		DateTime:  p.DateTime,
		Status:    model.StatusPending,
	}
	if err := s.reservations.Insert(ctx, nil, r); err != nil {
		return nil, fmt.Errorf("insert reservation: %w", err)
	}

	metrics.ReservationsTotal.WithLabelValues("created").Inc()

	return r, nil
}

// List returns all reservations in store-natural order.
func (s *Reservations) List(ctx context.Context) ([]model.Reservation, error) {
	return s.reservations.List(ctx)
}

// Delete hard-deletes a reservation. Notification logs referencing it are
// untouched; they carry denormalized contact fields for exactly this reason.
func (s *Reservations) Delete(ctx context.Context, id int64) error {
	ok, err := s.reservations.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	if !ok {
		return ErrNotFound
	}

	metrics.ReservationsTotal.WithLabelValues("deleted").Inc()

	return nil
}

// Notifications returns the audit trail of attempted customer notifications.
func (s *Reservations) Notifications(ctx context.Context) ([]model.NotificationLog, error) {
	return s.notifications.List(ctx)
}

// UpdateStatus moves a reservation through the status graph. The status
// change and a queued notification-log row are persisted first; the SMS send
// happens last and its outcome only flips the log row's delivery status.
// Delivery failure never fails the call.
func (s *Reservations) UpdateStatus(ctx context.Context, id int64, newStatus model.ReservationStatus) (string, error) {
	if !newStatus.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrValidation, newStatus)
	}

	current, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("get reservation: %w", err)
	}
	if current == nil {
		return "", ErrNotFound
	}
	if !current.Status.CanTransitionTo(newStatus) {
		return "", fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, newStatus)
	}

	if err := s.reservations.UpdateStatus(ctx, nil, id, newStatus); err != nil {
		return "", fmt.Errorf("update status: %w", err)
	}

	message := "Reservation has been " + newStatus.String()
	logRow := model.NotificationLog{
		ID:             util.NewULID(),
		RecipientName:  current.Name,
		RecipientEmail: current.Email,
		RecipientPhone: current.Phone,
		Message:        message,
		Type:           "reservation_" + newStatus.String(),
		Status:         model.NotificationQueued,
	}
	if err := s.notifications.Insert(ctx, nil, logRow); err != nil {
		return "", fmt.Errorf("insert notification log: %w", err)
	}

	metrics.ReservationsTotal.WithLabelValues(newStatus.String()).Inc()

	s.notify(ctx, logRow.ID, message)

	return message, nil
}

// deliveryStatusTimeout bounds the post-send log-row flip. The flip runs on
// a detached context: the request context may already be cancelled (client
// gone, send timed out) and the row must not be stranded at queued.
const deliveryStatusTimeout = 5 * time.Second

// notify attempts the SMS send and records the outcome on the log row.
// Errors stop here: the state transition is already committed.
func (s *Reservations) notify(ctx context.Context, logID, message string) {
	outcome := model.NotificationSent
	sid, err := s.sender.Send(ctx, message)
	if err != nil {
		outcome = model.NotificationFailed
		logger.Log.Warn("notification send failed",
			zap.String("log_id", logID),
			zap.Error(err),
		)
	} else {
		logger.Log.Info("notification sent",
			zap.String("log_id", logID),
			zap.String("sid", sid),
		)
	}

	metrics.NotificationsTotal.WithLabelValues(outcome.String()).Inc()

	flipCtx, cancel := context.WithTimeout(context.Background(), deliveryStatusTimeout)
	defer cancel()
	if err := s.notifications.SetDeliveryStatus(flipCtx, logID, outcome); err != nil {
		logger.Log.Warn("notification log status update failed",
			zap.String("log_id", logID),
			zap.Error(err),
		)
	}
}
