package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rivals-mod-manager/logger"
	"rivals-mod-manager/ui"
)

var statsByCharacter bool

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show mod library statistics",
	Long:  `Print library-wide totals plus a per-category breakdown. Use --characters for a per-character breakdown instead.`,
	Run: func(_ *cobra.Command, _ []string) {
		runStats()
	},
}

func init() {
	statsCmd.Flags().BoolVarP(&statsByCharacter, "characters", "c", false, "break counts down by character instead of category")
	rootCmd.AddCommand(statsCmd)
}

func runStats() {
	_, svc := bootstrap(".")

	stats, err := svc.Stats()
	if err != nil {
		logger.Log.Fatalw("Failed to gather stats", zap.Error(err))
	}

	fmt.Println(ui.Header("Mod library"))
	fmt.Printf("  %d mod(s), %s on disk\n", stats.TotalMods, formatSize(stats.TotalSize))
	fmt.Printf("  %s %d   %s %d\n",
		ui.Enabled("enabled"), stats.EnabledMods,
		ui.Disabled("disabled"), stats.DisabledMods)
	fmt.Println()

	if statsByCharacter {
		byCharacter, err := svc.StatsByCharacter()
		if err != nil {
			logger.Log.Fatalw("Failed to gather character stats", zap.Error(err))
		}
		if len(byCharacter) == 0 {
			fmt.Println("No mods are assigned to a character")
			return
		}
		fmt.Println(ui.Header("By character"))
		for _, row := range byCharacter {
			fmt.Printf("  %-20s %3d  (%d enabled, %d disabled)\n",
				row.Character, row.Count, row.Enabled, row.Disabled)
		}
		return
	}

	byCategory, err := svc.StatsByCategory()
	if err != nil {
		logger.Log.Fatalw("Failed to gather category stats", zap.Error(err))
	}
	fmt.Println(ui.Header("By category"))
	for _, row := range byCategory {
		fmt.Printf("  %-10s %3d  (%d enabled, %d disabled)\n",
			row.Category, row.Count, row.Enabled, row.Disabled)
	}
}
