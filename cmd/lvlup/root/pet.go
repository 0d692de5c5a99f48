package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/game"
	"github.com/Popilynx/SistemaLevelUp-sub000/internal/ui"
)

func newPetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pet",
		Short: "Manage your companions",
	}
	cmd.AddCommand(newPetAdoptCmd(), newPetListCmd(), newPetActivateCmd(), newPetFeedCmd())
	return cmd
}

func newPetAdoptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adopt [type]",
		Short: "Adopt a new companion",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				fmt.Fprintln(out, ui.Heading(ui.IconPet, "Available companions"))
				for _, t := range game.PetTemplates() {
					fmt.Fprintf(out, "%s %s (%s) — %s element, %s\n",
						t.Icon, ui.Key.Render(t.Name), t.Type, t.Element, game.FormatPetBonus(t.BonusType, t.BonusValue))
				}
				fmt.Fprintln(out, ui.Muted.Render("Adopt with: lvlup pet adopt <type>"))
				return nil
			}

			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := svc.AdoptPet(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s Adopted %s %s! It is now your active companion.\n",
				ui.Good.Render(ui.IconPet), p.Icon, p.Name)
			return nil
		},
	}
	return cmd
}

func newPetListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your companions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			pets, err := svc.PetRepo().List(ctx)
			if err != nil {
				return err
			}
			if len(pets) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No companions yet. See: lvlup pet adopt"))
				return nil
			}
			active, err := svc.ActivePet(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, ui.Heading(ui.IconPet, "Companions"))
			for _, p := range pets {
				tag := ""
				if active != nil && active.ID == p.ID {
					tag = ui.Good.Render(" [active]")
				}
				hunger := fmt.Sprintf("hunger %d", p.Hunger)
				if p.Hunger < 20 {
					hunger = ui.Warn.Render("hungry! bonus halved")
				}
				fmt.Fprintf(out, "#%d %s %s%s — level %d (stage %d), %d/%d exp, %s, %s\n",
					p.ID, p.Icon, p.Name, tag, p.Level, p.EvolutionStage,
					p.CurrentExp, p.MaxExp, game.FormatPetBonus(p.BonusType, p.BonusValue), hunger)
			}
			return nil
		},
	}
	return cmd
}

func newPetActivateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activate <id>",
		Short: "Switch the active companion",
		Args:  idArg("id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			id, _ := strconv.ParseInt(args[0], 10, 64)
			if err := svc.SetActivePet(ctx, id); err != nil {
				if errors.Is(err, game.ErrNoActivePet) {
					fmt.Fprintln(out, ui.Warn.Render("No such companion."))
					return nil
				}
				return err
			}
			fmt.Fprintf(out, "%s Companion switched.\n", ui.Good.Render(ui.IconPet))
			return nil
		},
	}
	return cmd
}

func newPetFeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Feed the active companion",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.FeedActivePet(ctx); err != nil {
				if errors.Is(err, game.ErrNoActivePet) {
					fmt.Fprintln(out, ui.Warn.Render("No active companion to feed."))
					return nil
				}
				var broke game.NotEnoughGoldError
				if errors.As(err, &broke) {
					fmt.Fprintf(out, "%s A meal costs %d %s, you have %d.\n",
						ui.Warn.Render(ui.IconWarn), broke.Price, ui.IconGold, broke.Gold)
					return nil
				}
				return err
			}
			fmt.Fprintf(out, "%s Fed to full for %d %s.\n", ui.Good.Render(ui.IconPet), game.PetFeedCost, ui.IconGold)
			return nil
		},
	}
	return cmd
}
