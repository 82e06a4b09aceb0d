package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"rivals-mod-manager/config"
	"rivals-mod-manager/logger"
	"rivals-mod-manager/mods"
)

// bootstrap handles shared initialization logic for commands.
func bootstrap(path string) (config.Config, *mods.Service) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logger.Log.Fatalw("Failed to load configuration", zap.Error(err))
	}

	svc := mods.NewService(afero.NewOsFs(),
		cfg.ModsDir, cfg.DisabledModsDir, cfg.MetadataDir, cfg.ThumbnailsDir,
		logger.Log)

	return cfg, svc
}

// resolveMod finds a mod by identifier, or by an unambiguous name prefix when
// the argument is not an identifier.
func resolveMod(svc *mods.Service, arg string) (*mods.ModRecord, error) {
	records, err := svc.ScanAll()
	if err != nil {
		return nil, err
	}

	for i := range records {
		if records[i].ID == arg {
			return &records[i], nil
		}
	}

	var matches []*mods.ModRecord
	lowerArg := strings.ToLower(arg)
	for i := range records {
		if strings.HasPrefix(strings.ToLower(records[i].Name), lowerArg) {
			matches = append(matches, &records[i])
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fmt.Errorf("%w: no mod matches %q", mods.ErrNotFound, arg)
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Name
		}
		return nil, fmt.Errorf("%w: %q is ambiguous between %s",
			mods.ErrInvalidInput, arg, strings.Join(names, ", "))
	}
}

// folderNameForMod derives the install folder name for a detected mod file.
func folderNameForMod(pakPath string) string {
	return mods.SanitizeFolderName(mods.InferTitle(filepath.Base(pakPath)))
}

// formatSize renders a byte count for humans.
func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
