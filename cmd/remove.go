package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rivals-mod-manager/logger"
	"rivals-mod-manager/ui"
)

var removeYes bool

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:     "remove <mod>",
	Aliases: []string{"delete", "rm"},
	Short:   "Delete a mod and its metadata",
	Long:    `Delete a mod's files, metadata sidecar and thumbnail, then clean up any folders left empty.`,
	Args:    cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		runRemove(args[0])
	},
}

func init() {
	removeCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(removeCmd)
}

func runRemove(arg string) {
	_, svc := bootstrap(".")

	record, err := resolveMod(svc, arg)
	if err != nil {
		logger.Log.Fatalw("Could not resolve mod", zap.String("mod", arg), zap.Error(err))
	}

	if !removeYes {
		fmt.Printf("Delete %q and its %d file(s)? [y/N] ", record.Name, len(record.AssociatedFiles))
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
			fmt.Println("Aborted")
			return
		}
	}

	if err := svc.Delete(record.ID); err != nil {
		logger.Log.Fatalw("Failed to delete mod", zap.String("mod", record.Name), zap.Error(err))
	}
	fmt.Printf("%s %s\n", ui.Error("Deleted"), record.Name)
}
