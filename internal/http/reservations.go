package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/hostdesk/hostdesk/internal/model"
	"github.com/hostdesk/hostdesk/internal/service"
	"github.com/hostdesk/hostdesk/internal/util"
	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// ReservationService is what the handlers need from the service layer.
type ReservationService interface {
	Create(ctx context.Context, p service.CreateParams) (*model.Reservation, error)
	List(ctx context.Context) ([]model.Reservation, error)
	Delete(ctx context.Context, id int64) error
	UpdateStatus(ctx context.Context, id int64, newStatus model.ReservationStatus) (string, error)
	Notifications(ctx context.Context) ([]model.NotificationLog, error)
}

// reservationView is the public projection. Email is accepted on input but
// never echoed back.
type reservationView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	TableSize   int    `json:"table_size"`
	TableNumber *int64 `json:"table_number,omitempty"`
	DateTime    string `json:"date_time"`
	Status      string `json:"status"`
}

func toReservationView(r model.Reservation) reservationView {
	v := reservationView{
		ID:        r.ID,
		Name:      r.Name,
		Phone:     r.Phone,
		TableSize: r.TableSize,
		DateTime:  util.FormatDateTime(r.DateTime),
		Status:    r.Status.String(),
	}
	if r.TableNumber.Valid {
		n := r.TableNumber.Int64
		v.TableNumber = &n
	}
	return v
}

type createReservationReq struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	TableSize int    `json:"table_size"`
	DateTime  string `json:"date_time"`
}

func createReservationHandler(svc ReservationService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req createReservationReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "bad request body"})
		}

		req.Name = strings.TrimSpace(req.Name)
		req.Phone = strings.TrimSpace(req.Phone)

		dt, err := util.ParseDateTime(req.DateTime)
		if err != nil {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "invalid date_time"})
		}

		r, err := svc.Create(c.Request().Context(), service.CreateParams{
			Name:      req.Name,
			Email:     req.Email,
			Phone:     req.Phone,
			TableSize: req.TableSize,
			DateTime:  dt,
		})
		if err != nil {
			if errors.Is(err, service.ErrValidation) {
				return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			}

			log.Errorf("create reservation failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}

		return c.JSON(http.StatusOK, toReservationView(*r))
	}
}

func listReservationsHandler(svc ReservationService) echo.HandlerFunc {
	return func(c echo.Context) error {
		reservations, err := svc.List(c.Request().Context())
		if err != nil {
			log.Errorf("list reservations failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}

		views := make([]reservationView, 0, len(reservations))
		for _, r := range reservations {
			views = append(views, toReservationView(r))
		}

		return c.JSON(http.StatusOK, views)
	}
}

func deleteReservationHandler(svc ReservationService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "reservation not found"})
		}

		if err := svc.Delete(c.Request().Context(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "reservation not found"})
			}

			log.Errorf("delete reservation failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}

		return c.JSON(http.StatusOK, map[string]string{"message": "Reservation deleted."})
	}
}

type updateStatusReq struct {
	Status string `json:"status"`
}

func updateStatusHandler(svc ReservationService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "reservation not found"})
		}

		var req updateStatusReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "bad request body"})
		}

		status, ok := model.ParseReservationStatus(req.Status)
		if !ok {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "invalid status"})
		}

		message, err := svc.UpdateStatus(c.Request().Context(), id, status)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				return c.JSON(http.StatusNotFound, map[string]string{"error": "reservation not found"})
			case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, service.ErrValidation):
				return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			}

			log.Errorf("update status failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}

		return c.JSON(http.StatusOK, map[string]string{"message": message})
	}
}
