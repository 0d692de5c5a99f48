package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/game"
	"github.com/Popilynx/SistemaLevelUp-sub000/internal/ui"
)

func newSkillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skill",
		Short: "Manage trainable skills",
	}
	cmd.AddCommand(newSkillAddCmd(), newSkillTrainCmd(), newSkillListCmd())
	return cmd
}

func newSkillAddCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a skill",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
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

			id, err := svc.CreateSkill(ctx, args[0], game.ParseCategory(category))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s Created skill #%d\n", ui.Good.Render(ui.IconBook), id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "mind", "Category (fitness|mind|work|creative|social)")

	return cmd
}

func newSkillTrainCmd() *cobra.Command {
	var exp int

	cmd := &cobra.Command{
		Use:   "train <id>",
		Short: "Log a training session",
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
			res, err := svc.TrainSkill(ctx, id, exp)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s Trained %s: level %d (%d exp)\n", ui.IconBook, res.Name, res.Level, res.CurrentExp)
			if res.LevelsGained > 0 {
				fmt.Fprintf(out, "%s Skill level up!\n", ui.Good.Render(ui.IconSparkle))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&exp, "exp", 25, "Training exp to add")

	return cmd
}

func newSkillListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List skills",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			skills, err := svc.SkillRepo().List(ctx)
			if err != nil {
				return err
			}
			if len(skills) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No skills yet."))
				return nil
			}

			fmt.Fprintln(out, ui.Heading(ui.IconBook, "Skills"))
			for _, sk := range skills {
				next := "max"
				if sk.Level < game.SkillMaxLevel {
					next = strconv.Itoa(game.SkillLevelThresholds[sk.Level])
				}
				stars := strings.Repeat("★", sk.Level) + strings.Repeat("☆", game.SkillMaxLevel-sk.Level)
				fmt.Fprintf(out, "#%d %s [%s] %s — %d/%s exp\n",
					sk.ID, sk.Name, sk.Category, ui.Gold.Render(stars), sk.CurrentExp, next)
			}
			return nil
		},
	}
	return cmd
}
