package root

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/config"
	"github.com/Popilynx/SistemaLevelUp-sub000/internal/game"
	"github.com/Popilynx/SistemaLevelUp-sub000/internal/sched"
	"github.com/Popilynx/SistemaLevelUp-sub000/internal/storage"
)

func newDaemonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the midnight scheduler in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := storage.Open(ctx, cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := game.NewService(db)
			return sched.New(svc, cfg.DaemonSpec).Run(ctx)
		},
	}
	return cmd
}
