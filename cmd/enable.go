package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rivals-mod-manager/logger"
	"rivals-mod-manager/ui"
)

// enableCmd represents the enable command
var enableCmd = &cobra.Command{
	Use:   "enable <mod>",
	Short: "Enable a disabled mod",
	Long:  `Move a mod from the disabled store back into the game's mods directory. The mod can be given by identifier or by a unique name prefix.`,
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		runSetEnabled(args[0], true)
	},
}

// disableCmd represents the disable command
var disableCmd = &cobra.Command{
	Use:   "disable <mod>",
	Short: "Disable a mod without deleting it",
	Long:  `Move a mod out of the game's mods directory into the disabled store, keeping its metadata and thumbnail.`,
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		runSetEnabled(args[0], false)
	},
}

func init() {
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
}

func runSetEnabled(arg string, enabled bool) {
	_, svc := bootstrap(".")

	record, err := resolveMod(svc, arg)
	if err != nil {
		logger.Log.Fatalw("Could not resolve mod", zap.String("mod", arg), zap.Error(err))
	}

	if record.Enabled == enabled {
		fmt.Printf("%s is already %s\n", record.Name, stateWord(enabled))
		return
	}

	if err := svc.SetEnabled(record.ID, enabled); err != nil {
		logger.Log.Fatalw("Failed to change mod state", zap.String("mod", record.Name), zap.Error(err))
	}

	if enabled {
		fmt.Printf("%s %s\n", ui.Enabled("Enabled"), record.Name)
	} else {
		fmt.Printf("%s %s\n", ui.Disabled("Disabled"), record.Name)
	}
}

func stateWord(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
