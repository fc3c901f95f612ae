package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hostdesk/hostdesk/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockReservationsRepo mocks the reservations repository.
type MockReservationsRepo struct {
	mock.Mock
}

func (m *MockReservationsRepo) Insert(ctx context.Context, tx *sqlx.Tx, r *model.Reservation) error {
	args := m.Called(ctx, tx, r)
	return args.Error(0)
}

func (m *MockReservationsRepo) List(ctx context.Context) ([]model.Reservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Reservation), args.Error(1)
}

func (m *MockReservationsRepo) GetByID(ctx context.Context, id int64) (*model.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *MockReservationsRepo) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockReservationsRepo) UpdateStatus(ctx context.Context, tx *sqlx.Tx, id int64, status model.ReservationStatus) error {
	args := m.Called(ctx, tx, id, status)
	return args.Error(0)
}

// MockNotificationsRepo mocks the notification-log repository.
type MockNotificationsRepo struct {
	mock.Mock
}

func (m *MockNotificationsRepo) Insert(ctx context.Context, tx *sqlx.Tx, n model.NotificationLog) error {
	args := m.Called(ctx, tx, n)
	return args.Error(0)
}

func (m *MockNotificationsRepo) SetDeliveryStatus(ctx context.Context, id string, status model.NotificationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockNotificationsRepo) List(ctx context.Context) ([]model.NotificationLog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.NotificationLog), args.Error(1)
}

// MockNotifier mocks the outbound SMS sender.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, message string) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}

func newTestService() (*Reservations, *MockReservationsRepo, *MockNotificationsRepo, *MockNotifier) {
	resRepo := new(MockReservationsRepo)
	notifRepo := new(MockNotificationsRepo)
	sender := new(MockNotifier)
	return NewReservations(resRepo, notifRepo, sender), resRepo, notifRepo, sender
}

func TestCreateDefaultsToPending(t *testing.T) {
	svc, resRepo, _, _ := newTestService()

	resRepo.On("Insert", mock.Anything, (*sqlx.Tx)(nil), mock.AnythingOfType("*model.Reservation")).
		Run(func(args mock.Arguments) {
			args.Get(2).(*model.Reservation).ID = 7
		}).
		Return(nil)

	r, err := svc.Create(context.Background(), CreateParams{
		Name:      "kambala",
		Email:     "kambala@example.com",
		Phone:     "507-2424",
		TableSize: 10,
		DateTime:  time.Date(2025, 4, 2, 19, 51, 11, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), r.ID)
	assert.Equal(t, model.StatusPending, r.Status)
	resRepo.AssertExpectations(t)
}

func TestCreateValidation(t *testing.T) {
	svc, _, _, _ := newTestService()
	dt := time.Date(2025, 4, 2, 19, 51, 11, 0, time.UTC)

	cases := []CreateParams{
		{Name: "", Phone: "507-2424", TableSize: 2, DateTime: dt},
		{Name: "kambala", Phone: "", TableSize: 2, DateTime: dt},
		{Name: "kambala", Phone: "507-2424", TableSize: 0, DateTime: dt},
		{Name: "kambala", Phone: "507-2424", TableSize: -3, DateTime: dt},
		{Name: "kambala", Phone: "507-2424", TableSize: 2},
	}
	for _, p := range cases {
		_, err := svc.Create(context.Background(), p)
		assert.ErrorIs(t, err, ErrValidation, "params %+v", p)
	}
}

func TestDeleteNotFound(t *testing.T) {
	svc, resRepo, _, _ := newTestService()

	resRepo.On("Delete", mock.Anything, int64(99)).Return(false, nil)

	err := svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, resRepo, _, _ := newTestService()

	resRepo.On("Delete", mock.Anything, int64(3)).Return(true, nil)

	require.NoError(t, svc.Delete(context.Background(), 3))
	resRepo.AssertExpectations(t)
}

func seededReservation() *model.Reservation {
	return &model.Reservation{
		ID:        3,
		Name:      "Luca Changretti",
		Email:     "luca@example.com",
		Phone:     "333-3690",
		TableSize: 10,
		DateTime:  time.Date(2025, 4, 3, 23, 5, 32, 0, time.UTC),
		Status:    model.StatusPending,
	}
}

func TestUpdateStatusConfirmed(t *testing.T) {
	svc, resRepo, notifRepo, sender := newTestService()

	resRepo.On("GetByID", mock.Anything, int64(3)).Return(seededReservation(), nil)
	resRepo.On("UpdateStatus", mock.Anything, (*sqlx.Tx)(nil), int64(3), model.StatusConfirmed).Return(nil)

	var logged model.NotificationLog
	notifRepo.On("Insert", mock.Anything, (*sqlx.Tx)(nil), mock.AnythingOfType("model.NotificationLog")).
		Run(func(args mock.Arguments) {
			logged = args.Get(2).(model.NotificationLog)
		}).
		Return(nil).Once()
	notifRepo.On("SetDeliveryStatus", mock.Anything, mock.AnythingOfType("string"), model.NotificationSent).Return(nil).Once()

	sender.On("Send", mock.Anything, "Reservation has been confirmed").Return("SM1", nil).Once()

	message, err := svc.UpdateStatus(context.Background(), 3, model.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, "Reservation has been confirmed", message)

	// exactly one audit row, queued at insert time, denormalized contacts
	assert.Equal(t, "reservation_confirmed", logged.Type)
	assert.Equal(t, model.NotificationQueued, logged.Status)
	assert.Equal(t, "Luca Changretti", logged.RecipientName)
	assert.Equal(t, "333-3690", logged.RecipientPhone)
	assert.Equal(t, "luca@example.com", logged.RecipientEmail)
	assert.NotEmpty(t, logged.ID)

	resRepo.AssertExpectations(t)
	notifRepo.AssertExpectations(t)
	sender.AssertNumberOfCalls(t, "Send", 1)
}

func TestUpdateStatusSendFailureStillSucceeds(t *testing.T) {
	svc, resRepo, notifRepo, sender := newTestService()

	resRepo.On("GetByID", mock.Anything, int64(3)).Return(seededReservation(), nil)
	resRepo.On("UpdateStatus", mock.Anything, (*sqlx.Tx)(nil), int64(3), model.StatusCancelled).Return(nil)
	notifRepo.On("Insert", mock.Anything, (*sqlx.Tx)(nil), mock.AnythingOfType("model.NotificationLog")).Return(nil)
	notifRepo.On("SetDeliveryStatus", mock.Anything, mock.AnythingOfType("string"), model.NotificationFailed).Return(nil).Once()

	sender.On("Send", mock.Anything, "Reservation has been cancelled").Return("", errors.New("twilio: status=500")).Once()

	message, err := svc.UpdateStatus(context.Background(), 3, model.StatusCancelled)
	require.NoError(t, err, "delivery failure must not fail the status update")
	assert.Equal(t, "Reservation has been cancelled", message)
	notifRepo.AssertExpectations(t)
}

// Even when the request context is already cancelled (client gone, send
// timed out), the delivery-status flip must still land so the log row does
// not stay queued forever.
func TestUpdateStatusDeliveryFlipSurvivesCancelledContext(t *testing.T) {
	svc, resRepo, notifRepo, sender := newTestService()

	resRepo.On("GetByID", mock.Anything, int64(3)).Return(seededReservation(), nil)
	resRepo.On("UpdateStatus", mock.Anything, (*sqlx.Tx)(nil), int64(3), model.StatusConfirmed).Return(nil)
	notifRepo.On("Insert", mock.Anything, (*sqlx.Tx)(nil), mock.AnythingOfType("model.NotificationLog")).Return(nil)

	sender.On("Send", mock.Anything, "Reservation has been confirmed").
		Return("", context.Canceled).Once()

	notifRepo.On("SetDeliveryStatus",
		mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil }),
		mock.AnythingOfType("string"),
		model.NotificationFailed,
	).Return(nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.UpdateStatus(ctx, 3, model.StatusConfirmed)
	require.NoError(t, err)
	notifRepo.AssertExpectations(t)
}

func TestUpdateStatusNotFound(t *testing.T) {
	svc, resRepo, _, sender := newTestService()

	resRepo.On("GetByID", mock.Anything, int64(42)).Return(nil, nil)

	_, err := svc.UpdateStatus(context.Background(), 42, model.StatusConfirmed)
	assert.ErrorIs(t, err, ErrNotFound)
	sender.AssertNotCalled(t, "Send")
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	svc, resRepo, notifRepo, sender := newTestService()

	cancelled := seededReservation()
	cancelled.Status = model.StatusCancelled
	resRepo.On("GetByID", mock.Anything, int64(3)).Return(cancelled, nil)

	_, err := svc.UpdateStatus(context.Background(), 3, model.StatusConfirmed)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	resRepo.AssertNotCalled(t, "UpdateStatus")
	notifRepo.AssertNotCalled(t, "Insert")
	sender.AssertNotCalled(t, "Send")
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, resRepo, _, _ := newTestService()

	_, err := svc.UpdateStatus(context.Background(), 3, model.ReservationStatus("archived"))
	assert.ErrorIs(t, err, ErrValidation)
	resRepo.AssertNotCalled(t, "GetByID")
}
