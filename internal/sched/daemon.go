package sched

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/game"
)

// Daemon keeps the daily cycle moving while the process runs: shortly after
// midnight it applies the punishment pass, rerolls the shop, rotates the
// boss, and deals fresh daily quests, so the next CLI call sees a new day
// already in place.
type Daemon struct {
	svc  *game.Service
	cron *cron.Cron
	spec string
}

func New(svc *game.Service, spec string) *Daemon {
	return &Daemon{
		svc:  svc,
		cron: cron.New(),
		spec: spec,
	}
}

// Run performs one catch-up pass immediately, then blocks until ctx is
// cancelled, firing on the configured schedule.
func (d *Daemon) Run(ctx context.Context) error {
	d.tick(ctx)

	if _, err := d.cron.AddFunc(d.spec, func() { d.tick(ctx) }); err != nil {
		return fmt.Errorf("add cron job: %w", err)
	}

	d.cron.Start()
	log.Printf("daemon running (schedule %q)", d.spec)
	<-ctx.Done()

	stopCtx := d.cron.Stop()
	<-stopCtx.Done()
	return nil
}

func (d *Daemon) tick(ctx context.Context) {
	res, err := d.svc.RunDailyReset(ctx)
	if err != nil {
		log.Printf("daily reset: %v", err)
		return
	}
	if res.Processed {
		log.Printf("daily reset: %d missed habits, -%d health, -%d exp", len(res.MissedHabits), res.HealthLost, res.ExpLost)
		if res.Died {
			log.Printf("character died; difficulty is now %d", res.NewDifficulty)
		}
	}

	if _, err := d.svc.DailyShop(ctx); err != nil {
		log.Printf("shop rotation: %v", err)
	}
	if _, err := d.svc.DailyBoss(ctx); err != nil {
		log.Printf("boss rotation: %v", err)
	}
	if _, err := d.svc.GenerateDailyQuests(ctx); err != nil {
		log.Printf("daily quests: %v", err)
	}
}
