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

func newObjectiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "objective",
		Aliases: []string{"obj"},
		Short:   "Manage long-term objectives",
	}
	cmd.AddCommand(newObjectiveAddCmd(), newObjectiveProgressCmd(), newObjectiveCancelCmd(), newObjectiveListCmd())
	return cmd
}

func newObjectiveAddCmd() *cobra.Command {
	var description string
	var main bool

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an objective",
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

			id, err := svc.CreateObjective(ctx, game.CreateObjectiveInput{
				Title:       args[0],
				Description: description,
				IsMain:      main,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s Created objective #%d\n", ui.Good.Render(ui.IconTarget), id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "desc", "d", "", "Description")
	cmd.Flags().BoolVar(&main, "main", false, "Main objective (double completion reward)")

	return cmd
}

func newObjectiveProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress <id> <percent>",
		Short: "Set objective progress (0-100)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("id and percent are required")
			}
			for _, a := range args {
				if _, err := strconv.Atoi(a); err != nil {
					return errors.New("id and percent must be integers")
				}
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

			id, _ := strconv.ParseInt(args[0], 10, 64)
			progress, _ := strconv.Atoi(args[1])
			res, err := svc.UpdateObjectiveProgress(ctx, id, progress)
			if err != nil {
				return err
			}

			if res.Status == game.ObjectiveCompleted {
				fmt.Fprintf(out, "%s Objective complete! +%d exp, +%d %s\n",
					ui.Good.Render(ui.IconTrophy), res.ExpGranted, res.GoldGranted, ui.IconGold)
				if res.LevelsGained > 0 {
					fmt.Fprintf(out, "%s %s\n", ui.IconTrophy, ui.BadgeLevelUp)
				}
				return nil
			}
			fmt.Fprintf(out, "Progress: %d%%\n", res.Progress)
			return nil
		},
	}
	return cmd
}

func newObjectiveCancelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel an objective",
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
			if err := svc.CancelObjective(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Muted.Render("Objective cancelled."))
			return nil
		},
	}
	return cmd
}

func newObjectiveListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List objectives",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			objectives, err := svc.ObjectiveRepo().List(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, ui.Heading(ui.IconTarget, "Objectives"))
			shown := 0
			for _, o := range objectives {
				if !all && o.Status != game.ObjectiveActive {
					continue
				}
				shown++
				marker := ""
				if o.IsMain {
					marker = ui.Gold.Render(" ★")
				}
				fmt.Fprintf(out, "#%d %s%s — %d%% [%s]\n", o.ID, o.Title, marker, o.Progress, ui.StatusText(o.Status))
				if o.Description != nil {
					fmt.Fprintf(out, "   %s\n", ui.Muted.Render(*o.Description))
				}
			}
			if shown == 0 {
				fmt.Fprintln(out, ui.Muted.Render("Nothing here."))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed and cancelled")

	return cmd
}
