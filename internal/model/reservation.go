package model

import (
	"database/sql"
	"strings"
	"time"
)

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

func (s ReservationStatus) String() string { return string(s) }

func (s ReservationStatus) Valid() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCancelled
}

// ParseReservationStatus normalizes input. Returns (value, true) if valid;
// otherwise (pending, false). Empty input is not a valid status.
func ParseReservationStatus(s string) (ReservationStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, true
	case "confirmed":
		return StatusConfirmed, true
	case "cancelled":
		return StatusCancelled, true
	default:
		return StatusPending, false
	}
}

// CanTransitionTo encodes the allowed status graph:
// pending -> confirmed|cancelled, confirmed -> cancelled, cancelled -> (none).
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCancelled
	default:
		return false
	}
}

// Reservation is the DB entity persisted in the reservations table.
type Reservation struct {
	ID          int64             `db:"id"`
	Name        string            `db:"name"`
	Email       string            `db:"email"`
	Phone       string            `db:"phone"`
	TableSize   int               `db:"table_size"`
	TableNumber sql.NullInt64     `db:"table_number"`
	DateTime    time.Time         `db:"date_time"`
	Status      ReservationStatus `db:"status"`
	CreatedAt   time.Time         `db:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at"`
}
