package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/game"
	"github.com/Popilynx/SistemaLevelUp-sub000/internal/ui"
)

func newBossCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boss",
		Short: "Fight the daily boss",
	}
	cmd.AddCommand(newBossShowCmd(), newBossAttackCmd(), newBossClaimCmd())
	return cmd
}

func newBossShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show today's boss",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			b, err := svc.DailyBoss(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, ui.Heading(ui.IconSword, b.Name))
			fmt.Fprintln(out, ui.LabelValue("Health", ui.HealthBar(b.Health, b.MaxHealth, 20)))
			fmt.Fprintln(out, ui.LabelValue("Attack", b.Attack))
			fmt.Fprintln(out, ui.LabelValue("Defense", b.Defense))
			fmt.Fprintln(out, ui.LabelValue("Status", ui.StatusText(b.Status)))
			fmt.Fprintf(out, "%s %d %s, %d exp\n", ui.Key.Render("Reward:"), b.RewardGold, ui.IconGold, b.RewardExp)
			if b.Status == game.BossDefeated && !b.RewardClaimed {
				fmt.Fprintln(out, ui.Gold.Render("Reward available: lvlup boss claim"))
			}
			return nil
		},
	}
	return cmd
}

func newBossAttackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attack",
		Short: "Strike the boss once",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.AttackBoss(ctx)
			if err != nil {
				return err
			}

			crit := ""
			if res.Critical {
				crit = ui.Gold.Render(" CRIT!")
			}
			fmt.Fprintf(out, "%s You hit for %d%s\n", ui.IconSword, res.DamageDealt, crit)

			if res.BossDefeated {
				fmt.Fprintf(out, "%s Boss defeated! Claim your reward: lvlup boss claim\n", ui.Good.Render(ui.IconTrophy))
				return nil
			}

			fmt.Fprintf(out, "%s Boss strikes back for %d\n", ui.Bad.Render(ui.IconSkull), res.CounterDamage)
			b, err := svc.DailyBoss(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.LabelValue("Boss", ui.HealthBar(b.Health, b.MaxHealth, 20)))
			fmt.Fprintln(out, ui.LabelValue("You", fmt.Sprintf("%d health", res.PlayerHealth)))
			return nil
		},
	}
	return cmd
}

func newBossClaimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim",
		Short: "Claim the defeated boss's reward",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.ClaimBossReward(ctx)
			if err != nil {
				if errors.Is(err, game.ErrBossAlive) {
					fmt.Fprintln(out, ui.Warn.Render("The boss still stands."))
					return nil
				}
				return err
			}
			if res == nil {
				fmt.Fprintln(out, ui.Muted.Render("Reward already claimed."))
				return nil
			}

			fmt.Fprintf(out, "%s +%d %s, +%d exp\n", ui.Good.Render(ui.IconTrophy), res.Gold, ui.IconGold, res.Exp)
			if res.LevelsGained > 0 {
				fmt.Fprintf(out, "%s %s → level %d\n", ui.IconTrophy, ui.BadgeLevelUp, res.NewLevel)
			}
			return nil
		},
	}
	return cmd
}
