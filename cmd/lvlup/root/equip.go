package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/game"
	"github.com/Popilynx/SistemaLevelUp-sub000/internal/ui"
)

func newEquipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equip <item-id>",
		Short: "Equip or unequip an inventory item",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("item id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			it, err := svc.ToggleEquip(ctx, args[0])
			if err != nil {
				var ne game.ErrNotEquippable
				if errors.As(err, &ne) {
					fmt.Fprintln(out, ui.Warn.Render(ne.Error()))
					return nil
				}
				return err
			}

			if it.IsEquipped {
				fmt.Fprintf(out, "%s Equipped %s %s\n", ui.Good.Render(ui.IconShield), it.Icon, it.Name)
			} else {
				fmt.Fprintf(out, "Unequipped %s %s\n", it.Icon, it.Name)
			}

			stats, err := svc.Stats(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s damage %d, +%.0f%% exp, +%.0f%% gold, +%d health, %.0f%% crit\n",
				ui.Muted.Render("Stats:"), game.BasePlayerDamage+stats.Damage,
				stats.ExpBonus*100, stats.GoldBonus*100, stats.HealthBonus, stats.CritChance*100)
			return nil
		},
	}
	return cmd
}
