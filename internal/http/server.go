package http

import (
	"context"
	"net/http"
	"time"

	"github.com/hostdesk/hostdesk/internal/config"
	"github.com/hostdesk/hostdesk/internal/http/middleware"
	"github.com/hostdesk/hostdesk/internal/logger"
	"github.com/hostdesk/hostdesk/internal/metrics"
	"github.com/hostdesk/hostdesk/internal/notifier"
	"github.com/hostdesk/hostdesk/internal/repository"
	"github.com/hostdesk/hostdesk/internal/service"
	"github.com/jmoiron/sqlx"
	echo "github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct{ e *echo.Echo }

func NewServer(cfg config.Config, mysqlDB *sqlx.DB, rds *redis.Client) *Server {
	// repos
	reservationsRepo := repository.NewReservationsRepository(mysqlDB)
	notificationsRepo := repository.NewNotificationsRepository(mysqlDB)

	// outbound SMS
	sender := notifier.NewTwilioProvider(
		cfg.Twilio.AccountSID,
		cfg.Twilio.AuthToken,
		cfg.Twilio.From,
		cfg.Twilio.To,
		cfg.Twilio.BaseURL,
		cfg.Twilio.TimeoutMs,
		cfg.Twilio.Breaker.FailThreshold,
		cfg.Twilio.Breaker.OpenForMs,
	)

	// service
	svc := service.NewReservations(reservationsRepo, notificationsRepo, sender)

	// echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMid.Recover(), echoMid.Logger())

	metrics.MustRegister(prometheus.DefaultRegisterer)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// health
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	// middlewares
	adminMW := middleware.AdminAuth(cfg.Admin.Username, cfg.Admin.Password)
	rlMW := middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Redis:     rds,
		RPS:       cfg.RateLimit.RPS,
		KeyPrefix: "rl:ip:",
		Window:    time.Second,
	})

	// public routes
	e.POST("/reservations", createReservationHandler(svc), rlMW)

	// admin routes
	admin := e.Group("", adminMW)
	admin.GET("/reservations", listReservationsHandler(svc))
	admin.DELETE("/reservations/:id", deleteReservationHandler(svc))
	admin.PUT("/reservations/:id/status", updateStatusHandler(svc))
	admin.GET("/notifications", listNotificationsHandler(svc))

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	logger.Log.Info("http: listening", zap.String("addr", addr))
	return s.e.Start(addr)
}
func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }
