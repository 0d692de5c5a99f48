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

func idArg(name string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New(name + " is required")
		}
		if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
			return errors.New(name + " must be an integer")
		}
		return nil
	}
}

func newHabitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Manage good habits",
	}
	cmd.AddCommand(newHabitAddCmd(), newHabitDoneCmd(), newHabitMissCmd(), newHabitListCmd())
	return cmd
}

func newHabitAddCmd() *cobra.Command {
	var category string
	var exp, gold int
	var daily bool

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a good habit",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
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

			id, err := svc.CreateGoodHabit(ctx, game.CreateGoodHabitInput{
				Title:      args[0],
				Category:   game.ParseCategory(category),
				ExpReward:  exp,
				GoldReward: gold,
				IsDaily:    daily,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s Created habit #%d\n", ui.Good.Render(ui.IconDone), id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "mind", "Category (fitness|mind|work|creative|social)")
	cmd.Flags().IntVar(&exp, "exp", 0, "Exp reward (default 20)")
	cmd.Flags().IntVar(&gold, "gold", 0, "Gold reward (default 10)")
	cmd.Flags().BoolVarP(&daily, "daily", "d", true, "Daily habit (punished when missed)")

	return cmd
}

func newHabitDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a habit for today",
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
			res, err := svc.CompleteGoodHabit(ctx, id)
			if err != nil {
				if errors.Is(err, game.ErrAlreadyDone) {
					fmt.Fprintln(out, ui.Muted.Render("Already completed today."))
					return nil
				}
				return err
			}

			fmt.Fprintf(out, "%s %s %s\n",
				ui.Good.Render(ui.IconDone+" "+res.Title),
				ui.Gold.Render(fmt.Sprintf("+%d %s", res.GoldGranted, ui.IconGold)),
				ui.H2.Render(fmt.Sprintf("+%d exp", res.ExpGranted)))
			fmt.Fprintf(out, "%s streak %d (best %d)\n", ui.IconFire, res.Streak, res.BestStreak)
			if res.LevelsGained > 0 {
				fmt.Fprintf(out, "%s %s → level %d\n", ui.IconTrophy, ui.BadgeLevelUp, res.NewLevel)
			}
			return nil
		},
	}
	return cmd
}

func newHabitMissCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "miss <id>",
		Short: "Break a habit streak explicitly",
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
			if err := svc.FailGoodHabit(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Warn.Render("Streak reset."))
			return nil
		},
	}
	return cmd
}

func newHabitListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List good habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			habits, err := svc.HabitRepo().ListGood(ctx)
			if err != nil {
				return err
			}
			if len(habits) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No habits yet. Try: lvlup habit add \"Morning run\" -c fitness"))
				return nil
			}

			fmt.Fprintln(out, ui.Heading(ui.IconLoop, "Good habits"))
			for _, h := range habits {
				daily := ""
				if h.IsDaily {
					daily = ui.Muted.Render(" [daily]")
				}
				fmt.Fprintf(out, "#%d %s%s — %s, +%d exp, +%d %s, %s %d\n",
					h.ID, h.Title, daily, h.Category, h.ExpReward, h.GoldReward, ui.IconGold, ui.IconFire, h.Streak)
			}
			return nil
		},
	}
	return cmd
}
