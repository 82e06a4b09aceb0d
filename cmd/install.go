package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rivals-mod-manager/archive"
	"rivals-mod-manager/logger"
	"rivals-mod-manager/mods"
	"rivals-mod-manager/ui"
)

var installFolder string

// installCmd represents the install command
var installCmd = &cobra.Command{
	Use:   "install <file>",
	Short: "Install a mod from a .pak file or archive",
	Long: `Install a mod into the game's mods directory. A .pak file is installed
directly; a .zip or .7z archive is extracted first and every mod found inside
is installed into its own folder.`,
	Args: cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		runInstall(args[0])
	},
}

func init() {
	installCmd.Flags().StringVarP(&installFolder, "folder", "f", "", "install into a named folder under the mods directory")
	rootCmd.AddCommand(installCmd)
}

func runInstall(sourcePath string) {
	cfg, svc := bootstrap(".")

	switch strings.ToLower(filepath.Ext(sourcePath)) {
	case ".pak":
		installPak(svc, sourcePath)
	case ".zip", ".7z", ".rar":
		installArchive(svc, sourcePath)
	default:
		logger.Log.Fatalf("Unsupported file type %q, expected .pak, .zip or .7z", filepath.Ext(sourcePath))
	}

	if cfg.AutoOrganize {
		if moved, err := svc.OrganizeLoose(); err != nil {
			logger.Log.Warnw("Auto-organize failed", zap.Error(err))
		} else if moved > 0 {
			fmt.Printf("Organized %d mod(s) into folders\n", moved)
		}
	}
}

func installPak(svc *mods.Service, sourcePath string) {
	var record *mods.ModRecord
	var err error
	if installFolder != "" {
		record, err = svc.InstallToFolder(sourcePath, installFolder)
	} else {
		record, err = svc.Install(sourcePath)
	}
	if err != nil {
		logger.Log.Fatalw("Install failed", zap.Error(err))
	}
	printInstalled(record)
}

func installArchive(svc *mods.Service, archivePath string) {
	tempDir, detected, err := archive.ExtractToTemp(archivePath)
	if err != nil {
		logger.Log.Fatalw("Failed to extract archive", zap.Error(err))
	}
	defer os.RemoveAll(tempDir)

	if len(detected) == 0 {
		logger.Log.Fatal("No mod files found in archive")
	}
	fmt.Printf("Found %d mod(s) in %s\n", len(detected), filepath.Base(archivePath))

	installed := 0
	for _, mod := range detected {
		folder := installFolder
		if folder == "" {
			folder = folderNameForMod(mod.PakFile)
		}
		record, err := svc.InstallToFolder(mod.PakFile, folder)
		if err != nil {
			logger.Log.Warnw("Failed to install mod from archive",
				zap.String("file", mod.PakFile), zap.Error(err))
			fmt.Println(ui.Error(fmt.Sprintf("  failed: %s", filepath.Base(mod.PakFile))))
			continue
		}
		printInstalled(record)
		installed++
	}

	if installed < len(detected) {
		fmt.Println(ui.Error(fmt.Sprintf("Installed %d of %d mods", installed, len(detected))))
	}
}

func printInstalled(record *mods.ModRecord) {
	character := ""
	if record.Character != nil {
		character = " / " + string(*record.Character)
	}
	fmt.Printf("%s %s (%s%s, %s)\n",
		ui.Enabled("Installed"), record.Name, record.Category, character, formatSize(record.FileSize))
}
