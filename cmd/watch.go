package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rivals-mod-manager/logger"
	"rivals-mod-manager/watcher"
)

var watchDebounce time.Duration

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the mods directory and rescan on changes",
	Long: `Watch the mods and disabled-mods directories and rescan whenever files
change. With AUTO_ORGANIZE enabled, each settled change also runs the full
reconciliation pass. Runs until interrupted.`,
	Run: func(_ *cobra.Command, _ []string) {
		runWatch()
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "quiet period before a change triggers a rescan")
	rootCmd.AddCommand(watchCmd)
}

func runWatch() {
	cfg, svc := bootstrap(".")

	onChange := func() {
		if cfg.AutoOrganize {
			runReconcile(svc)
		}
		records, err := svc.ScanAll()
		if err != nil {
			logger.Log.Errorw("Rescan failed", zap.Error(err))
			return
		}
		fmt.Printf("Rescanned: %d mod(s)\n", len(records))
	}

	w, err := watcher.New(watchDebounce, onChange, logger.Log)
	if err != nil {
		logger.Log.Fatalw("Failed to create watcher", zap.Error(err))
	}
	defer w.Close()

	for _, dir := range []string{cfg.ModsDir, cfg.DisabledModsDir} {
		if err := w.Watch(dir); err != nil {
			logger.Log.Fatalw("Failed to watch directory", zap.String("dir", dir), zap.Error(err))
		}
	}
	w.Start()

	fmt.Printf("Watching %s (ctrl-c to stop)\n", cfg.ModsDir)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	fmt.Println("\nStopping watcher")
}
