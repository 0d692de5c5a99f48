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

func newQuestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quest",
		Short: "Daily quests",
	}
	cmd.AddCommand(newQuestListCmd(), newQuestClaimCmd())
	return cmd
}

func newQuestListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show today's quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			quests, err := svc.GenerateDailyQuests(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Daily quests"))
			for _, q := range quests {
				fmt.Fprintf(out, "#%d %s — %d/%d [%s]\n", q.ID, q.Title, q.CurrentValue, q.TargetValue, ui.StatusText(q.Status))
				reward := fmt.Sprintf("reward: %d %s, %d exp", q.RewardGold, ui.IconGold, q.RewardExp)
				if q.RewardItem != nil {
					reward += ", item"
				}
				fmt.Fprintf(out, "   %s\n", ui.Muted.Render(reward))
				if q.Status == game.QuestCompleted {
					fmt.Fprintf(out, "   %s\n", ui.Gold.Render("claim with: lvlup quest claim "+strconv.FormatInt(q.ID, 10)))
				}
			}
			return nil
		},
	}
	return cmd
}

func newQuestClaimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim <id>",
		Short: "Claim a completed quest's reward",
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
			res, err := svc.ClaimQuestReward(ctx, id)
			if err != nil {
				var ce game.ClaimError
				if errors.As(err, &ce) {
					fmt.Fprintln(out, ui.Warn.Render(ce.Error()))
					return nil
				}
				return err
			}
			if res == nil {
				fmt.Fprintln(out, ui.Muted.Render("Already claimed."))
				return nil
			}

			fmt.Fprintf(out, "%s +%d %s, +%d exp\n", ui.Good.Render(ui.IconScroll), res.Gold, ui.IconGold, res.Exp)
			if res.ItemGranted != nil {
				fmt.Fprintf(out, "%s Received %s %s\n", ui.Gold.Render(ui.IconSparkle), res.ItemGranted.Icon, res.ItemGranted.Name)
			}
			if res.LevelsGained > 0 {
				fmt.Fprintf(out, "%s %s → level %d\n", ui.IconTrophy, ui.BadgeLevelUp, res.NewLevel)
			}
			return nil
		},
	}
	return cmd
}
