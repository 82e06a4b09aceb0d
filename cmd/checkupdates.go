package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rivals-mod-manager/logger"
	"rivals-mod-manager/nexus"
	"rivals-mod-manager/ui"
)

// checkUpdatesCmd represents the check-updates command
var checkUpdatesCmd = &cobra.Command{
	Use:   "check-updates",
	Short: "Check NexusMods for newer versions of installed mods",
	Long: `Compare each mod carrying a NexusMods id against the version currently
published on NexusMods. Requires NEXUS_API_KEY. Mods without a NexusMods id
in their metadata are skipped.`,
	Run: func(_ *cobra.Command, _ []string) {
		runCheckUpdates()
	},
}

func init() {
	rootCmd.AddCommand(checkUpdatesCmd)
}

func runCheckUpdates() {
	cfg, svc := bootstrap(".")

	client, err := nexus.NewClient(cfg.NexusAPIKey)
	if err != nil {
		logger.Log.Fatalw("Cannot check for updates", zap.Error(err))
	}

	records, err := svc.ScanAll()
	if err != nil {
		logger.Log.Fatalw("Failed to scan mods", zap.Error(err))
	}

	checked, outdated := 0, 0
	for _, record := range records {
		if record.Metadata.NexusModID == nil {
			continue
		}
		checked++

		published, err := client.GetMod(*record.Metadata.NexusModID)
		if err != nil {
			logger.Log.Warnw("Update check failed",
				"mod", record.Name, "nexusModId", *record.Metadata.NexusModID, "error", err)
			continue
		}
		if !published.Available {
			fmt.Printf("%s %s is no longer available on NexusMods\n", ui.Error("!"), record.Name)
			continue
		}

		installed := ""
		if record.Metadata.NexusVersion != nil {
			installed = *record.Metadata.NexusVersion
		}
		if installed == published.Version {
			continue
		}
		outdated++
		fmt.Printf("%s %s: %s -> %s\n", ui.Favorite("*"), record.Name, orUnknown(installed), published.Version)
	}

	if checked == 0 {
		fmt.Println("No mods carry a NexusMods id; nothing to check")
		return
	}
	if outdated == 0 {
		fmt.Printf("%s All %d linked mod(s) are up to date\n", ui.Enabled("ok"), checked)
	}
}

func orUnknown(version string) string {
	if version == "" {
		return "unknown"
	}
	return version
}
