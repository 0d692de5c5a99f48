package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/game"
	"github.com/Popilynx/SistemaLevelUp-sub000/internal/ui"
)

func newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Cosmetic themes",
	}
	cmd.AddCommand(newThemeBuyCmd(), newThemeUseCmd())
	return cmd
}

func newThemeBuyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy <code>",
		Short: "Buy a theme",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("theme code is required")
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

			if err := svc.BuyTheme(ctx, args[0]); err != nil {
				var short game.NotEnoughGoldError
				switch {
				case errors.As(err, &short):
					fmt.Fprintln(out, ui.Bad.Render(short.Error()))
					return nil
				case errors.Is(err, game.ErrItemNotFound):
					fmt.Fprintln(out, ui.Warn.Render("Unknown theme. See: lvlup shop list"))
					return nil
				}
				return err
			}
			fmt.Fprintf(out, "%s Theme unlocked. Activate it: lvlup theme use %s\n", ui.Good.Render(ui.IconSparkle), args[0])
			return nil
		},
	}
	return cmd
}

func newThemeUseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <code>",
		Short: "Activate an owned theme",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("theme code is required")
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

			if err := svc.UseTheme(ctx, args[0]); err != nil {
				if errors.Is(err, game.ErrItemNotFound) {
					fmt.Fprintln(out, ui.Warn.Render("You do not own that theme."))
					return nil
				}
				return err
			}
			fmt.Fprintf(out, "%s Theme active.\n", ui.Good.Render(ui.IconSparkle))
			return nil
		},
	}
	return cmd
}
