package root

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/game"
	"github.com/Popilynx/SistemaLevelUp-sub000/internal/storage"
	"github.com/Popilynx/SistemaLevelUp-sub000/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show character stats, equipment, and today's countdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			c, err := svc.CharacterRepo().GetOrCreateMain(ctx)
			if err != nil {
				return err
			}
			need := game.ExpRequiredForLevel(c.Level)

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Character"))
			fmt.Fprintf(out, "%s  %s\n", ui.LabelValue("Level", c.Level), ui.RankBadge(c.Rank))
			fmt.Fprintln(out, ui.LabelValue("Exp", fmt.Sprintf("%d / %d (total %d)", c.CurrentExp, need, c.TotalExp)))
			fmt.Fprintln(out, ui.LabelValue("Gold", fmt.Sprintf("%s %d", ui.IconGold, c.Gold)))
			fmt.Fprintf(out, "%s %s\n", ui.Key.Render("Health:"), ui.HealthBar(c.Health, c.MaxHealth, 20))
			if c.Difficulty > 1 {
				fmt.Fprintln(out, ui.LabelValue("Difficulty", ui.Bad.Render(fmt.Sprint(c.Difficulty))))
			}
			fmt.Fprintln(out, "")

			st, err := svc.Stats(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.H2.Render(ui.IconSword+" Combat stats"))
			fmt.Fprintf(out, "- damage +%d, crit %.0f%%\n", st.Damage, st.CritChance*100)
			fmt.Fprintf(out, "- exp bonus +%.0f%%, gold bonus +%.0f%%\n", st.ExpBonus*100, st.GoldBonus*100)
			fmt.Fprintln(out, "")

			xp, err := svc.CharacterRepo().CategoryXP(ctx, storage.MainCharacterKey)
			if err != nil {
				return err
			}
			if len(xp) > 0 {
				fmt.Fprintln(out, ui.H2.Render("📊 Category experience"))
				cats := make([]string, 0, len(xp))
				for cat := range xp {
					cats = append(cats, cat)
				}
				sort.Strings(cats)
				for _, cat := range cats {
					fmt.Fprintf(out, "- %s: %d\n", cat, xp[cat])
				}
				fmt.Fprintln(out, "")
			}

			if pet, err := svc.ActivePet(ctx); err != nil {
				return err
			} else if pet != nil {
				fmt.Fprintln(out, ui.H2.Render(ui.IconPet+" Pet"))
				fmt.Fprintf(out, "- %s %s lvl %d (stage %d), hunger %d\n", pet.Icon, pet.Name, pet.Level, pet.EvolutionStage, pet.Hunger)
				fmt.Fprintln(out, "")
			}

			left := svc.TimeUntilReset()
			h := int(left.Hours())
			m := int(left.Minutes()) % 60
			s := int(left.Seconds()) % 60
			fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("Next daily reset in %02d:%02d:%02d", h, m, s)))
			return nil
		},
	}

	return cmd
}
