package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/ui"
)

func newLogCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			entries, err := svc.LogRepo().List(ctx, limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("Nothing logged yet."))
				return nil
			}

			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Activity"))
			for _, e := range entries {
				deltas := ""
				if e.ExpChange != 0 {
					deltas += fmt.Sprintf(" %+d exp", e.ExpChange)
				}
				if e.GoldChange != 0 {
					deltas += fmt.Sprintf(" %+d %s", e.GoldChange, ui.IconGold)
				}
				if e.HealthChange != 0 {
					deltas += fmt.Sprintf(" %+d %s", e.HealthChange, ui.IconHeart)
				}
				fmt.Fprintf(out, "%s %s%s\n",
					ui.Muted.Render(e.CreatedAt.Format("Jan 02 15:04")), e.Activity, ui.Dim.Render(deltas))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Max entries to show")

	return cmd
}
