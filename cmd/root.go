package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rivals-mod-manager",
	Short: "Manage Marvel Rivals mods from the command line",
	Long: `rivals-mod-manager scans the game's ~mods directory, keeps JSON metadata
sidecars for every mod, and organizes mod files into Category/Character/Name
folders. Run without arguments to open the interactive mod list.`,
	Run: func(cmd *cobra.Command, args []string) {
		// No subcommand opens the interactive list
		listCmd.Run(listCmd, []string{})
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
