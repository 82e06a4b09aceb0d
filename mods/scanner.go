package mods

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// ModFileExtension is the primary mod file extension.
const ModFileExtension = ".pak"

// CompanionExtensions lists the extensions of files that belong to a mod
// alongside its primary file (same base name, moved in lockstep).
var CompanionExtensions = []string{".ucas", ".utoc"}

// thumbnailExtensions are tried in order when resolving legacy thumbnails.
var thumbnailExtensions = []string{"webp", "png", "jpg", "jpeg"}

// ScanAll walks the active and disabled mod roots and assembles a fresh
// record for every mod file found. Records are rebuilt from scratch on every
// call: nothing is cached between scans.
//
// Deduplication happens at two levels: an exact physical path is never
// visited twice, and an identifier is never emitted twice. The active root
// is scanned first, so when the same logical mod exists both enabled and
// disabled the active copy wins.
func (s *Service) ScanAll() ([]ModRecord, error) {
	if err := s.fs.MkdirAll(s.modsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create mods directory: %w", err)
	}
	if err := s.fs.MkdirAll(s.disabledDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create disabled mods directory: %w", err)
	}

	var records []ModRecord
	processedPaths := make(map[string]struct{})
	processedIDs := make(map[string]struct{})

	if err := s.scanDirectory(s.modsDir, true, &records, processedPaths, processedIDs); err != nil {
		return nil, err
	}
	if err := s.scanDirectory(s.disabledDir, false, &records, processedPaths, processedIDs); err != nil {
		return nil, err
	}

	// Sort by display name, ascending
	sort.Slice(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})

	return records, nil
}

// scanDirectory walks one root. A file that cannot be stat-ed is logged and
// skipped; a directory that cannot be listed aborts the whole scan.
func (s *Service) scanDirectory(root string, enabled bool, records *[]ModRecord, processedPaths, processedIDs map[string]struct{}) error {
	return afero.Walk(s.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if info == nil || !info.IsDir() {
				s.log.Warnw("Skipping unreadable file", "path", path, "error", err)
				return nil
			}
			return fmt.Errorf("failed to read directory %s: %w", path, err)
		}
		if info.IsDir() || !isModFile(path) {
			return nil
		}

		if _, seen := processedPaths[path]; seen {
			return nil
		}

		record, buildErr := s.buildRecord(path, info, enabled)
		if buildErr != nil {
			s.log.Warnw("Failed to assemble mod record", "path", path, "error", buildErr)
			return nil
		}

		if _, seen := processedIDs[record.ID]; seen {
			return nil
		}

		processedPaths[path] = struct{}{}
		processedIDs[record.ID] = struct{}{}
		*records = append(*records, *record)
		return nil
	})
}

// buildRecord assembles the full record for one mod file: identity, persisted
// or synthesized metadata, companion files and thumbnail resolution.
func (s *Service) buildRecord(path string, info os.FileInfo, enabled bool) (*ModRecord, error) {
	fileName := filepath.Base(path)
	cleanFileName := StripDisabledMarker(fileName)
	id := IdentifierForPath(path)

	metadata, err := s.store.Load(id)
	if err != nil {
		// A corrupt or unreadable sidecar should not hide the mod itself
		s.log.Warnw("Failed to load metadata, using defaults", "id", id, "error", err)
		metadata = nil
	}
	if metadata == nil {
		metadata = s.defaultMetadata(path, cleanFileName)
	}

	return &ModRecord{
		ID:               id,
		Name:             metadata.Title,
		Category:         metadata.Category,
		Character:        metadata.Character,
		Enabled:          enabled,
		IsFavorite:       metadata.IsFavorite,
		FilePath:         path,
		ThumbnailPath:    s.findThumbnail(id, cleanFileName),
		Metadata:         *metadata,
		FileSize:         info.Size(),
		InstallDate:      metadata.InstallDate,
		LastModified:     info.ModTime(),
		OriginalFileName: cleanFileName,
		AssociatedFiles:  s.findAssociatedFiles(path),
	}, nil
}

// defaultMetadata synthesizes metadata for a mod that has no sidecar yet.
func (s *Service) defaultMetadata(path, cleanFileName string) *ModMetadata {
	now := time.Now().UTC()
	return &ModMetadata{
		Title:       InferTitle(cleanFileName),
		Description: "",
		Tags:        []string{},
		Category:    InferCategory(path, cleanFileName),
		Character:   InferCharacter(path, cleanFileName),
		CreatedAt:   now,
		UpdatedAt:   now,
		InstallDate: now,
	}
}

// findAssociatedFiles returns the primary file plus any companion files
// sharing its base name. The primary file is always first.
func (s *Service) findAssociatedFiles(pakPath string) []string {
	files := []string{pakPath}

	cleanName := StripDisabledMarker(filepath.Base(pakPath))
	baseName := strings.TrimSuffix(cleanName, filepath.Ext(cleanName))
	dir := filepath.Dir(pakPath)

	for _, ext := range CompanionExtensions {
		companion := filepath.Join(dir, baseName+ext)
		if exists, _ := afero.Exists(s.fs, companion); exists {
			files = append(files, companion)
		}
	}
	return files
}

// findThumbnail resolves a thumbnail by priority: the identifier-named
// sidecar in the metadata directory, then identifier-named legacy thumbnails,
// then filename-based legacy thumbnails (with and without the _P suffix).
// No match yields an empty path, not an error.
func (s *Service) findThumbnail(id, cleanFileName string) string {
	sidecarPath := s.store.ThumbnailPath(id)
	if exists, _ := afero.Exists(s.fs, sidecarPath); exists {
		return sidecarPath
	}

	for _, ext := range thumbnailExtensions {
		idPath := filepath.Join(s.thumbnailsDir, fmt.Sprintf("%s.%s", id, ext))
		if exists, _ := afero.Exists(s.fs, idPath); exists {
			return idPath
		}
	}

	baseName := strings.TrimSuffix(cleanFileName, filepath.Ext(cleanFileName))
	altName := strings.ReplaceAll(baseName, "_P", "")
	for _, ext := range thumbnailExtensions {
		namePath := filepath.Join(s.thumbnailsDir, fmt.Sprintf("%s.%s", baseName, ext))
		if exists, _ := afero.Exists(s.fs, namePath); exists {
			return namePath
		}

		altPath := filepath.Join(s.thumbnailsDir, fmt.Sprintf("%s.%s", altName, ext))
		if exists, _ := afero.Exists(s.fs, altPath); exists {
			return altPath
		}
	}

	return ""
}

// isModFile reports whether the path names a mod file, tolerating the
// disabled marker on the file name.
func isModFile(path string) bool {
	clean := StripDisabledMarker(filepath.Base(path))
	return strings.EqualFold(filepath.Ext(clean), ModFileExtension)
}
