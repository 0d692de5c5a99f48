package root

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/ui"
)

func newResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restart the game (keeps habit and skill definitions)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()

			if !force {
				fmt.Fprint(out, ui.Warn.Render("This wipes your level, gold, inventory and streaks.")+" Type 'reset' to confirm: ")
				reader := bufio.NewReader(cmd.InOrStdin())
				line, _ := reader.ReadString('\n')
				if strings.TrimSpace(line) != "reset" {
					fmt.Fprintln(out, ui.Muted.Render("Aborted."))
					return nil
				}
			}

			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			c, err := svc.CharacterRepo().GetOrCreateMain(ctx)
			if err != nil {
				return err
			}
			if err := svc.FullReset(ctx, c.Difficulty); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s Fresh start at difficulty %d.\n", ui.Good.Render(ui.IconSparkle), c.Difficulty)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")

	return cmd
}
