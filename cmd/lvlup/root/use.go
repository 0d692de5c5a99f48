package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/game"
	"github.com/Popilynx/SistemaLevelUp-sub000/internal/ui"
)

func newUseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <item-id>",
		Short: "Use a consumable item",
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

			res, err := svc.UseConsumable(ctx, args[0])
			if err != nil {
				switch {
				case errors.Is(err, game.ErrItemNotFound):
					fmt.Fprintln(out, ui.Warn.Render("No such item in your inventory."))
					return nil
				case errors.Is(err, game.ErrNotConsumable):
					fmt.Fprintln(out, ui.Warn.Render("That item cannot be consumed."))
					return nil
				case errors.Is(err, game.ErrNoActivePet):
					fmt.Fprintln(out, ui.Warn.Render("Pet food needs an active pet. Adopt one: lvlup pet adopt"))
					return nil
				}
				return err
			}

			switch {
			case res.HealthRestored > 0:
				fmt.Fprintf(out, "%s Restored %d health\n", ui.Good.Render(ui.IconHeart), res.HealthRestored)
			case res.PetFed:
				fmt.Fprintf(out, "%s Your pet is fed and happy\n", ui.Good.Render(ui.IconPet))
			}
			if res.UsesLeft > 0 {
				fmt.Fprintf(out, "%s\n", ui.Muted.Render(fmt.Sprintf("%d uses left", res.UsesLeft)))
			} else {
				fmt.Fprintln(out, ui.Muted.Render("Item used up."))
			}
			return nil
		},
	}
	return cmd
}
