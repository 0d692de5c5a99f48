package root

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/config"
	"github.com/Popilynx/SistemaLevelUp-sub000/internal/game"
	"github.com/Popilynx/SistemaLevelUp-sub000/internal/storage"
	"github.com/Popilynx/SistemaLevelUp-sub000/internal/ui"
)

func openDB(ctx context.Context) (*sql.DB, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

// openService opens the store and catches the game up with the calendar:
// the once-per-day punishment pass runs lazily on the first command of a
// new day, so the daemon is optional.
func openService(ctx context.Context, out io.Writer) (*game.Service, func(), error) {
	db, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	svc := game.NewService(db)

	res, err := svc.RunDailyReset(ctx)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if res.Processed && len(res.MissedHabits) > 0 {
		fmt.Fprintf(out, "%s Missed %d daily habits yesterday: -%d health, -%d exp\n",
			ui.Warn.Render(ui.IconWarn), len(res.MissedHabits), res.HealthLost, res.ExpLost)
	}
	if res.Died {
		fmt.Fprintln(out, ui.Bad.Render(ui.IconSkull+" You died. The game has restarted at difficulty "+fmt.Sprint(res.NewDifficulty)+"."))
	}

	return svc, cleanup, nil
}
