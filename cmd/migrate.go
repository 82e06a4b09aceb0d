package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rivals-mod-manager/logger"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate metadata saved under legacy filename identifiers",
	Long: `Older versions keyed metadata sidecars by file name only. This moves every
such sidecar to the current path-based identifier. Safe to run repeatedly;
already-migrated mods are skipped.`,
	Run: func(_ *cobra.Command, _ []string) {
		_, svc := bootstrap(".")

		migrated, err := svc.MigratePathIDs()
		if err != nil {
			logger.Log.Fatalw("Identifier migration failed", zap.Error(err))
		}
		fmt.Printf("Migrated %d mod(s) to path-based identifiers\n", migrated)
	},
}

// recoverCmd represents the recover command
var recoverCmd = &cobra.Command{
	Use:   "recover <mod> <old-identifier>",
	Short: "Recover metadata stored under an old identifier",
	Long: `Manual recovery for a mod that lost its metadata after being moved outside
this tool. Copies the metadata and thumbnail stored under the old identifier
onto the mod's current identifier.`,
	Args: cobra.ExactArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		_, svc := bootstrap(".")

		record, err := resolveMod(svc, args[0])
		if err != nil {
			logger.Log.Fatalw("Could not resolve mod", zap.String("mod", args[0]), zap.Error(err))
		}

		if err := svc.CopyMetadataFrom(record.ID, args[1]); err != nil {
			logger.Log.Fatalw("Metadata recovery failed", zap.Error(err))
		}
		fmt.Printf("Recovered metadata for %s\n", record.Name)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(recoverCmd)
}
