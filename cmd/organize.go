package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rivals-mod-manager/logger"
	"rivals-mod-manager/mods"
	"rivals-mod-manager/ui"
)

// organizeCmd represents the organize command
var organizeCmd = &cobra.Command{
	Use:   "organize",
	Short: "Reconcile the mods directory into its folder convention",
	Long: `Run the full reconciliation pass over the mods directory: migrate legacy
metadata identifiers, merge duplicate character folders, move loose mods into
Category/Character/Name folders, and delete empty leftovers.`,
	Run: func(_ *cobra.Command, _ []string) {
		_, svc := bootstrap(".")
		runReconcile(svc)
	},
}

func init() {
	rootCmd.AddCommand(organizeCmd)
}

// runReconcile executes the four reconciliation steps in dependency order:
// identifiers first so sidecars are found, merges before organizing so loose
// mods land in the surviving folders, cleanup last.
func runReconcile(svc *mods.Service) {
	fmt.Println(ui.Header("Reconciling mods directory"))

	migrated, err := svc.MigratePathIDs()
	if err != nil {
		logger.Log.Fatalw("Identifier migration failed", zap.Error(err))
	}
	fmt.Printf("  migrated %d legacy identifier(s)\n", migrated)

	merged, err := svc.MergeDuplicateFolders()
	if err != nil {
		logger.Log.Fatalw("Duplicate folder merge failed", zap.Error(err))
	}
	fmt.Printf("  merged %d duplicate folder(s)\n", merged)

	moved, err := svc.OrganizeLoose()
	if err != nil {
		logger.Log.Fatalw("Organizing loose mods failed", zap.Error(err))
	}
	fmt.Printf("  organized %d loose mod(s)\n", moved)

	cleaned, err := svc.CleanupEmptyFolders()
	if err != nil {
		logger.Log.Fatalw("Empty folder cleanup failed", zap.Error(err))
	}
	fmt.Printf("  removed %d empty folder(s)\n", cleaned)
}
