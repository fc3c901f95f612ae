package http

import (
	"net/http"
	"time"

	"github.com/hostdesk/hostdesk/internal/model"
	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// notificationView is the admin-facing audit projection. Unlike the public
// reservation view it keeps the recipient email: the whole point of the log
// is knowing who was contacted.
type notificationView struct {
	ID             string    `json:"id"`
	RecipientName  string    `json:"recipient_name"`
	RecipientEmail string    `json:"recipient_email"`
	RecipientPhone string    `json:"recipient_phone"`
	Message        string    `json:"message"`
	Type           string    `json:"type"`
	Status         string    `json:"status"`
	SentAt         time.Time `json:"sent_at"`
}

func toNotificationView(n model.NotificationLog) notificationView {
	return notificationView{
		ID:             n.ID,
		RecipientName:  n.RecipientName,
		RecipientEmail: n.RecipientEmail,
		RecipientPhone: n.RecipientPhone,
		Message:        n.Message,
		Type:           n.Type,
		Status:         n.Status.String(),
		SentAt:         n.SentAt,
	}
}

func listNotificationsHandler(svc ReservationService) echo.HandlerFunc {
	return func(c echo.Context) error {
		logs, err := svc.Notifications(c.Request().Context())
		if err != nil {
			log.Errorf("list notifications failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}

		views := make([]notificationView, 0, len(logs))
		for _, n := range logs {
			views = append(views, toNotificationView(n))
		}

		return c.JSON(http.StatusOK, views)
	}
}
