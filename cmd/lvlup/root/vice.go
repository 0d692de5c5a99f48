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

func newViceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vice",
		Short: "Manage bad habits",
	}
	cmd.AddCommand(newViceAddCmd(), newViceFallCmd(), newViceListCmd())
	return cmd
}

func newViceAddCmd() *cobra.Command {
	var health, exp int

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Track a bad habit",
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

			id, err := svc.CreateBadHabit(ctx, game.CreateBadHabitInput{
				Title:         args[0],
				HealthPenalty: health,
				ExpPenalty:    exp,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s Tracking vice #%d\n", ui.Good.Render(ui.IconDone), id)
			return nil
		},
	}

	cmd.Flags().IntVar(&health, "health", 0, "Health penalty per fall (default 50)")
	cmd.Flags().IntVar(&exp, "exp", 0, "Exp penalty per fall (default 20)")

	return cmd
}

func newViceFallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fall <id>",
		Short: "Record a relapse",
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
			res, err := svc.RecordFall(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s: -%d health, -%d exp (fall #%d)\n",
				ui.Bad.Render(ui.IconWarn+" Fell"), res.Title, res.HealthLost, res.ExpLost, res.TotalFalls)
			return nil
		},
	}
	return cmd
}

func newViceListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bad habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			vices, err := svc.HabitRepo().ListBad(ctx)
			if err != nil {
				return err
			}
			if len(vices) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No vices tracked."))
				return nil
			}

			fmt.Fprintln(out, ui.Heading(ui.IconWarn, "Bad habits"))
			for _, v := range vices {
				fmt.Fprintf(out, "#%d %s — %d days clean, %d falls (%d this month)\n",
					v.ID, v.Title, v.DaysClean, v.TotalFalls, v.MonthlyFalls)
			}
			return nil
		},
	}
	return cmd
}
