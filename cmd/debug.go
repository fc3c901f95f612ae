package cmd

import (
	"context"
	"fmt"

	"github.com/hostdesk/hostdesk/internal/config"
	"github.com/hostdesk/hostdesk/internal/db"
	"github.com/hostdesk/hostdesk/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

// debug subcommands dump raw table contents for quick inspection against a
// dev database.
func newDebugCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debug",
		Short: "Inspect database contents",
	}
	cmd.AddCommand(debugReservationsCmd, debugNotificationsCmd)

	return cmd
}

func debugDB() (*sqlx.DB, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return db.Connect(cfg.MySQL.DSN, db.Opts{PingTimeout: cfg.MySQL.PingTimeout})
}

var debugReservationsCmd = &cobra.Command{
	Use:   "reservations",
	Short: "Print all reservation rows",
	RunE: func(cmd *cobra.Command, args []string) error {
		sqlDB, err := debugDB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		repo := repository.NewReservationsRepository(sqlDB)
		rows, err := repo.List(context.Background())
		if err != nil {
			return err
		}
		for _, r := range rows {
			tableNo := "-"
			if r.TableNumber.Valid {
				tableNo = fmt.Sprintf("%d", r.TableNumber.Int64)
			}
			fmt.Printf("%d | %s | %s | %s | %s | %d | %s | %s\n",
				r.ID, r.Name, r.DateTime.Format("2006-01-02 15:04:05"), r.Email, r.Phone, r.TableSize, tableNo, r.Status)
		}
		return nil
	},
}

var debugNotificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Print all notification log rows",
	RunE: func(cmd *cobra.Command, args []string) error {
		sqlDB, err := debugDB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		repo := repository.NewNotificationsRepository(sqlDB)
		rows, err := repo.List(context.Background())
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Println("no notifications found")
			return nil
		}
		for _, n := range rows {
			fmt.Printf("%s | %s | %s | %s | %s | %s\n",
				n.ID, n.RecipientPhone, n.RecipientEmail, n.Message, n.Type, n.Status)
		}
		return nil
	},
}
