package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/storage"
	"github.com/Popilynx/SistemaLevelUp-sub000/internal/ui"
)

// describeItem renders an item's bonuses in one line.
func describeItem(it storage.Item) string {
	var parts []string
	if it.Damage > 0 {
		parts = append(parts, fmt.Sprintf("+%d dmg", it.Damage))
	}
	if it.ExpBonus > 0 {
		parts = append(parts, fmt.Sprintf("+%.0f%% exp", it.ExpBonus*100))
	}
	if it.GoldBonus > 0 {
		parts = append(parts, fmt.Sprintf("+%.0f%% gold", it.GoldBonus*100))
	}
	if it.HealthBonus > 0 {
		parts = append(parts, fmt.Sprintf("+%d health", it.HealthBonus))
	}
	if it.CritChance > 0 {
		parts = append(parts, fmt.Sprintf("+%.0f%% crit", it.CritChance*100))
	}
	if it.IsConsumable || it.CurrentUses > 0 {
		parts = append(parts, fmt.Sprintf("%d uses", it.CurrentUses))
	}
	if len(parts) == 0 {
		return "no effect"
	}
	return strings.Join(parts, ", ")
}

func newInventoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"inv"},
		Short:   "Show owned items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			items, err := svc.ItemRepo().ListByOwner(ctx, storage.OwnerInventory)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("Inventory is empty. Visit the shop: lvlup shop list"))
				return nil
			}

			fmt.Fprintln(out, ui.Heading(ui.IconShield, "Inventory"))
			for _, it := range items {
				equipped := ""
				if it.IsEquipped {
					equipped = ui.Good.Render(" [equipped]")
				}
				slot := ""
				if it.Slot != nil {
					slot = ui.Muted.Render(" (" + *it.Slot + ")")
				}
				fmt.Fprintf(out, "%s %s%s%s — %s\n", it.Icon, ui.Key.Render(it.Name), slot, equipped, describeItem(it))
				fmt.Fprintf(out, "   %s\n", ui.Dim.Render("id: "+it.ID))
			}
			return nil
		},
	}
	return cmd
}
