package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ReservationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostdesk_reservations_total",
			Help: "Reservation operations by action",
		},
		[]string{"action"}, // created|deleted|confirmed|cancelled
	)

	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostdesk_notifications_total",
			Help: "Notification attempts by delivery outcome",
		},
		[]string{"status"}, // sent|failed
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		ReservationsTotal,
		NotificationsTotal,
	)
}
