package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rivals-mod-manager/logger"
)

// profileCmd represents the profile command
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage profile membership stored in mod metadata",
}

// profileRemoveCmd represents the profile remove command
var profileRemoveCmd = &cobra.Command{
	Use:   "remove <profile-id>",
	Short: "Remove a profile from every mod that references it",
	Long:  `Strip the given profile id from every mod's metadata. Run this after deleting a profile so no mod keeps a dangling reference.`,
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		_, svc := bootstrap(".")

		updated, err := svc.RemoveProfileFromAll(args[0])
		if err != nil {
			logger.Log.Fatalw("Failed to remove profile references", zap.String("profile", args[0]), zap.Error(err))
		}
		fmt.Printf("Removed profile %s from %d mod(s)\n", args[0], updated)
	},
}

func init() {
	profileCmd.AddCommand(profileRemoveCmd)
	rootCmd.AddCommand(profileCmd)
}
