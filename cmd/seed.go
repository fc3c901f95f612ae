package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hostdesk/hostdesk/internal/config"
	"github.com/hostdesk/hostdesk/internal/db"
	"github.com/hostdesk/hostdesk/internal/model"
	"github.com/hostdesk/hostdesk/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with demo reservations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		sqlDB, err := db.Connect(cfg.MySQL.DSN, db.Opts{
			MaxOpenConns:    cfg.MySQL.MaxOpenConns,
			MaxIdleConns:    cfg.MySQL.MaxIdleConns,
			ConnMaxLifetime: cfg.MySQL.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.MySQL.ConnMaxIdleTime,
			PingTimeout:     cfg.MySQL.PingTimeout,
		})
		if err != nil {
			return fmt.Errorf("mysql connect: %w", err)
		}
		defer sqlDB.Close()

		log.Println(">> Seeding demo reservations...")

		if err := seedReservations(sqlDB); err != nil {
			return err
		}

		log.Println(">> Seed completed")
		return nil
	},
}

func mustParse(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05.999999", s)
	if err != nil {
		panic(err)
	}
	return t
}

// seedReservations inserts 3 deterministic demo reservations. Skips entirely
// if the table already has rows, so it is safe to re-run.
func seedReservations(dbx *sqlx.DB) error {
	ctx := context.Background()

	var count int
	if err := dbx.GetContext(ctx, &count, `SELECT COUNT(*) FROM reservations`); err != nil {
		return fmt.Errorf("count reservations: %w", err)
	}
	if count > 0 {
		log.Printf(">> reservations table not empty (%d rows), skipping", count)
		return nil
	}

	reservations := []model.Reservation{
		{
			Name:      "kambala",
			Phone:     "507-2424",
			TableSize: 10,
			DateTime:  mustParse("2025-04-02T19:51:11.161000"),
			Status:    model.StatusPending,
		},
		{
			Name:      "Thomas Shelby",
			Phone:     "432-4653",
			TableSize: 3,
			DateTime:  mustParse("2025-04-03T02:18:15.356000"),
			Status:    model.StatusPending,
		},
		{
			Name:      "Luca Changretti",
			Phone:     "333-3690",
			TableSize: 10,
			DateTime:  mustParse("2025-04-03T23:05:32.826000"),
			Status:    model.StatusPending,
		},
	}

	repo := repository.NewReservationsRepository(dbx)
	for i := range reservations {
		if err := repo.Insert(ctx, nil, &reservations[i]); err != nil {
			return fmt.Errorf("insert reservation %q: %w", reservations[i].Name, err)
		}
	}
	return nil
}
