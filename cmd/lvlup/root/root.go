package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/ui"
)

const Version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:           "lvlup",
	Short:         "SistemaLevelUp, a local-first habit RPG",
	Long:          "SistemaLevelUp turns daily habits into an RPG: habits grant experience and gold, missed days cost health, and a fresh boss, shop, and quest board roll in every midnight.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newStatusCmd(),
		newHabitCmd(),
		newViceCmd(),
		newObjectiveCmd(),
		newSkillCmd(),
		newShopCmd(),
		newInventoryCmd(),
		newEquipCmd(),
		newUseCmd(),
		newBossCmd(),
		newQuestCmd(),
		newPetCmd(),
		newThemeCmd(),
		newLogCmd(),
		newBoardCmd(),
		newResetCmd(),
		newDaemonCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
