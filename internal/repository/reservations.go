package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/hostdesk/hostdesk/internal/model"
	"github.com/jmoiron/sqlx"
)

// ReservationsRepository defines persistence for the reservations table.
type ReservationsRepository interface {
	// Insert writes a new row and fills in the generated id.
	Insert(ctx context.Context, tx *sqlx.Tx, r *model.Reservation) error
	List(ctx context.Context) ([]model.Reservation, error)
	// GetByID returns (nil, nil) when the id does not exist.
	GetByID(ctx context.Context, id int64) (*model.Reservation, error)
	// Delete reports whether a row was actually removed.
	Delete(ctx context.Context, id int64) (bool, error)
	UpdateStatus(ctx context.Context, tx *sqlx.Tx, id int64, status model.ReservationStatus) error
}

type ReservationsRepositoryImpl struct {
	db *sqlx.DB
}

func NewReservationsRepository(db *sqlx.DB) *ReservationsRepositoryImpl {
	return &ReservationsRepositoryImpl{db: db}
}

var _ ReservationsRepository = (*ReservationsRepositoryImpl)(nil)

func (r *ReservationsRepositoryImpl) withTx(ctx context.Context, tx *sqlx.Tx, fn func(*sqlx.Tx) error) error {
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

func (r *ReservationsRepositoryImpl) Insert(ctx context.Context, tx *sqlx.Tx, m *model.Reservation) error {
	const q = `
		INSERT INTO reservations
		    (name, email, phone, table_size, table_number, date_time, status, created_at, updated_at)
		VALUES
		    (?,    ?,     ?,     ?,          ?,            ?,         ?,      ?,          ?)
	`
	// one timestamp for both the row and the returned entity
	now := time.Now()
	return r.withTx(ctx, tx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, q,
			m.Name, m.Email, m.Phone, m.TableSize, m.TableNumber, m.DateTime, m.Status.String(), now, now,
		)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		m.ID = id
		m.CreatedAt = now
		m.UpdatedAt = now
		return nil
	})
}

func (r *ReservationsRepositoryImpl) List(ctx context.Context) ([]model.Reservation, error) {
	const q = `
		SELECT id, name, email, phone, table_size, table_number, date_time, status, created_at, updated_at
		  FROM reservations
	`
	rows := []model.Reservation{}
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReservationsRepositoryImpl) GetByID(ctx context.Context, id int64) (*model.Reservation, error) {
	var m model.Reservation
	err := r.db.GetContext(ctx, &m, `
		SELECT id, name, email, phone, table_size, table_number, date_time, status, created_at, updated_at
		  FROM reservations
		 WHERE id = ? LIMIT 1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ReservationsRepositoryImpl) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ReservationsRepositoryImpl) UpdateStatus(ctx context.Context, tx *sqlx.Tx, id int64, status model.ReservationStatus) error {
	const q = `UPDATE reservations SET status = ?, updated_at = NOW() WHERE id = ?`
	return r.withTx(ctx, tx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, q, status.String(), id)
		return err
	})
}
