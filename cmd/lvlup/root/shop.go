package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/game"
	"github.com/Popilynx/SistemaLevelUp-sub000/internal/ui"
)

func newShopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Browse and buy from the daily market",
	}
	cmd.AddCommand(newShopListCmd(), newShopBuyCmd())
	return cmd
}

func newShopListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show today's offers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			items, err := svc.DailyShop(ctx)
			if err != nil {
				return err
			}
			c, err := svc.CharacterRepo().GetOrCreateMain(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, ui.Heading(ui.IconShop, "Daily market"))
			fmt.Fprintf(out, "%s  %s\n",
				ui.LabelValue("Gold", fmt.Sprintf("%d %s", c.Gold, ui.IconGold)),
				ui.Muted.Render(fmt.Sprintf("rotates in %s", svc.TimeUntilReset().Round(time.Second))))
			fmt.Fprintln(out)

			for _, it := range items {
				price := ui.Gold.Render(fmt.Sprintf("%d %s", it.Price, ui.IconGold))
				if it.Price > c.Gold {
					price = ui.Muted.Render(fmt.Sprintf("%d %s", it.Price, ui.IconGold))
				}
				fmt.Fprintf(out, "%s %s %s — %s\n   %s\n",
					it.Icon, ui.Key.Render(it.Name), ui.Muted.Render("["+it.Category+"]"), price, describeItem(it))
				fmt.Fprintf(out, "   %s\n", ui.Dim.Render("id: "+it.ID))
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, ui.H2.Render("Themes"))
			active, err := svc.ActiveTheme(ctx)
			if err != nil {
				return err
			}
			owned, err := svc.OwnedThemes(ctx)
			if err != nil {
				return err
			}
			for _, t := range game.ThemeCatalog() {
				tag := ui.Gold.Render(fmt.Sprintf("%d %s", t.Price, ui.IconGold))
				if contains(owned, t.Code) {
					tag = ui.Muted.Render("owned")
				}
				if t.Code == active {
					tag = ui.Good.Render("active")
				}
				fmt.Fprintf(out, "  %s (%s) — %s\n", t.Name, t.Code, tag)
			}
			return nil
		},
	}
	return cmd
}

func newShopBuyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy <item-id>",
		Short: "Buy a shop item",
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

			res, err := svc.Purchase(ctx, args[0])
			if err != nil {
				var short game.NotEnoughGoldError
				if errors.As(err, &short) {
					fmt.Fprintln(out, ui.Bad.Render(short.Error()))
					return nil
				}
				return err
			}
			fmt.Fprintf(out, "%s Bought %s %s — %d %s left\n",
				ui.Good.Render(ui.IconDone), res.Item.Icon, res.Item.Name, res.GoldLeft, ui.IconGold)
			return nil
		},
	}
	return cmd
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
