package mods

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	deleteRetryAttempts = 3
	deleteRetryDelay    = 100 * time.Millisecond
)

// Service is the mod reconciliation engine. It owns no state beyond its
// directory layout: the filesystem is the source of truth, and every
// operation re-derives the current view by scanning.
type Service struct {
	fs            afero.Fs
	modsDir       string
	disabledDir   string
	metadataDir   string
	thumbnailsDir string
	store         *MetadataStore
	log           *zap.SugaredLogger
}

// NewService constructs the engine over the given filesystem and directory
// layout. Production callers pass afero.NewOsFs(); tests may substitute any
// afero filesystem.
func NewService(fs afero.Fs, modsDir, disabledDir, metadataDir, thumbnailsDir string, log *zap.SugaredLogger) *Service {
	return &Service{
		fs:            fs,
		modsDir:       modsDir,
		disabledDir:   disabledDir,
		metadataDir:   metadataDir,
		thumbnailsDir: thumbnailsDir,
		store:         NewMetadataStore(fs, metadataDir),
		log:           log,
	}
}

// Store exposes the metadata store for collaborators that write sidecars
// directly (thumbnail import, recovery tooling).
func (s *Service) Store() *MetadataStore {
	return s.store
}

// ModsDir returns the active mods root.
func (s *Service) ModsDir() string { return s.modsDir }

// DisabledDir returns the disabled mods root.
func (s *Service) DisabledDir() string { return s.disabledDir }

// FindByID scans and returns the record with the given identifier, or
// ErrNotFound.
func (s *Service) FindByID(id string) (*ModRecord, error) {
	records, err := s.ScanAll()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Install copies a mod file into the active root and persists its inferred
// metadata immediately, so a metadata update issued right after install finds
// an existing sidecar instead of racing the next scan.
func (s *Service) Install(sourcePath string) (*ModRecord, error) {
	if !isModFile(sourcePath) {
		return nil, fmt.Errorf("%w: only %s files are supported", ErrInvalidInput, ModFileExtension)
	}

	fileName := filepath.Base(sourcePath)
	destPath := filepath.Join(s.modsDir, fileName)

	if err := s.fs.MkdirAll(s.modsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create mods directory: %w", err)
	}
	if err := s.copyFile(sourcePath, destPath); err != nil {
		return nil, fmt.Errorf("failed to copy mod file: %w", err)
	}

	return s.finishInstall(destPath, nil)
}

// InstallToFolder copies a mod file and its companion files into a named
// folder under the active root. Metadata is inferred and saved immediately.
func (s *Service) InstallToFolder(sourcePath, folderName string) (*ModRecord, error) {
	return s.installToFolder(sourcePath, folderName, nil)
}

// InstallToFolderWithMetadata is InstallToFolder with caller-supplied
// metadata persisted instead of the inferred defaults.
func (s *Service) InstallToFolderWithMetadata(sourcePath, folderName string, metadata *ModMetadata) (*ModRecord, error) {
	if metadata == nil {
		return nil, fmt.Errorf("%w: metadata is required", ErrInvalidInput)
	}
	return s.installToFolder(sourcePath, folderName, metadata)
}

func (s *Service) installToFolder(sourcePath, folderName string, metadata *ModMetadata) (*ModRecord, error) {
	if !isModFile(sourcePath) {
		return nil, fmt.Errorf("%w: only %s files are supported", ErrInvalidInput, ModFileExtension)
	}
	if SanitizeFolderName(folderName) != folderName || folderName == "" {
		return nil, fmt.Errorf("%w: invalid folder name %q", ErrInvalidInput, folderName)
	}

	folderPath := filepath.Join(s.modsDir, folderName)
	if err := s.fs.MkdirAll(folderPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create mod folder: %w", err)
	}

	fileName := filepath.Base(sourcePath)
	destPath := filepath.Join(folderPath, fileName)
	if err := s.copyFile(sourcePath, destPath); err != nil {
		return nil, fmt.Errorf("failed to copy mod file: %w", err)
	}

	// Copy companion files sitting beside the source, if any
	cleanName := StripDisabledMarker(fileName)
	baseName := strings.TrimSuffix(cleanName, filepath.Ext(cleanName))
	sourceDir := filepath.Dir(sourcePath)
	for _, ext := range CompanionExtensions {
		companionSource := filepath.Join(sourceDir, baseName+ext)
		if exists, _ := afero.Exists(s.fs, companionSource); exists {
			if err := s.copyFile(companionSource, filepath.Join(folderPath, baseName+ext)); err != nil {
				return nil, fmt.Errorf("failed to copy companion file: %w", err)
			}
		}
	}

	return s.finishInstall(destPath, metadata)
}

// finishInstall persists metadata for a freshly copied mod file and returns
// its assembled record. Saving before returning is what guarantees the
// install/update-metadata sequence never races the scanner's
// default-synthesis path.
func (s *Service) finishInstall(destPath string, metadata *ModMetadata) (*ModRecord, error) {
	info, err := s.fs.Stat(destPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat installed mod: %w", err)
	}

	id := IdentifierForPath(destPath)
	cleanFileName := StripDisabledMarker(filepath.Base(destPath))

	if metadata == nil {
		metadata = s.defaultMetadata(destPath, cleanFileName)
	}
	if err := s.store.Save(id, metadata); err != nil {
		return nil, err
	}
	s.log.Infow("Saved metadata for newly installed mod", zap.String("id", id))

	return &ModRecord{
		ID:               id,
		Name:             metadata.Title,
		Category:         metadata.Category,
		Character:        metadata.Character,
		Enabled:          true,
		IsFavorite:       metadata.IsFavorite,
		FilePath:         destPath,
		ThumbnailPath:    s.findThumbnail(id, cleanFileName),
		Metadata:         *metadata,
		FileSize:         info.Size(),
		InstallDate:      metadata.InstallDate,
		LastModified:     info.ModTime(),
		OriginalFileName: cleanFileName,
		AssociatedFiles:  s.findAssociatedFiles(destPath),
	}, nil
}

// SetEnabled moves a mod between the active and disabled roots, applying or
// stripping the disabled marker on the primary file. Sidecars migrate to the
// identifier derived from the new location.
func (s *Service) SetEnabled(id string, enabled bool) error {
	record, err := s.FindByID(id)
	if err != nil {
		return err
	}
	if record.Enabled == enabled {
		return nil
	}

	destDir := s.disabledDir
	if enabled {
		destDir = s.modsDir
	}
	if err := s.fs.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	var newPrimaryPath string
	for i, filePath := range record.AssociatedFiles {
		fileName := filepath.Base(filePath)
		if i == 0 {
			// Primary file carries the disabled marker
			fileName = StripDisabledMarker(fileName)
			if !enabled {
				fileName += DisabledMarker
			}
		}
		destPath := filepath.Join(destDir, fileName)
		if err := s.fs.Rename(filePath, destPath); err != nil {
			return fmt.Errorf("failed to move file %s: %w", filePath, err)
		}
		if i == 0 {
			newPrimaryPath = destPath
		}
	}

	// The path changed, so the identifier changed with it
	newID := IdentifierForPath(newPrimaryPath)
	if newID != id {
		if _, err := s.store.Migrate(id, newID); err != nil {
			s.log.Warnw("Failed to migrate sidecars", "oldId", id, "newId", newID, "error", err)
		}
	}

	if enabled {
		s.log.Infow("Enabled mod", zap.String("id", id), zap.String("name", record.Name))
	} else {
		s.log.Infow("Disabled mod", zap.String("id", id), zap.String("name", record.Name))
	}
	return nil
}

// Delete removes every file belonging to a mod, its metadata and thumbnail
// sidecars, then prunes any folders left empty.
func (s *Service) Delete(id string) error {
	record, err := s.FindByID(id)
	if err != nil {
		return err
	}

	for _, filePath := range record.AssociatedFiles {
		if err := s.fs.Remove(filePath); err != nil {
			return fmt.Errorf("failed to delete file %s: %w", filePath, err)
		}
	}

	if err := s.store.Delete(id); err != nil {
		return err
	}
	if err := s.store.DeleteThumbnail(id); err != nil {
		s.log.Warnw("Failed to delete thumbnail", "id", id, "error", err)
	}

	if cleaned, err := s.CleanupEmptyFolders(); err == nil && cleaned > 0 {
		s.log.Infof("Cleaned up %d empty folder(s) after deletion", cleaned)
	}

	s.log.Infow("Deleted mod", zap.String("id", id), zap.String("name", record.Name))
	return nil
}

// UpdateMetadata saves the new metadata first, so the user's edit survives
// any failure in the folder-rename logic that may follow, then reorganizes
// the mod's folder to match the new category/character/title.
func (s *Service) UpdateMetadata(id string, metadata *ModMetadata) (*ModRecord, error) {
	if metadata == nil {
		return nil, fmt.Errorf("%w: metadata is required", ErrInvalidInput)
	}

	if err := s.store.Save(id, metadata); err != nil {
		return nil, err
	}

	records, err := s.ScanAll()
	if err != nil {
		return nil, err
	}
	var record *ModRecord
	for i := range records {
		if records[i].ID == id {
			record = &records[i]
			break
		}
	}

	if record == nil {
		// The mod vanished between the caller's view and this scan (e.g. a
		// manual delete). The edit is saved; return a minimal record.
		s.log.Warnw("Mod not found in scan, returning minimal record", "id", id)
		return &ModRecord{
			ID:               id,
			Name:             metadata.Title,
			Category:         metadata.Category,
			Character:        metadata.Character,
			Enabled:          true,
			IsFavorite:       metadata.IsFavorite,
			Metadata:         *metadata,
			InstallDate:      metadata.InstallDate,
			LastModified:     time.Now().UTC(),
			OriginalFileName: metadata.Title,
			AssociatedFiles:  []string{},
		}, nil
	}

	parentDir := filepath.Dir(record.FilePath)
	if parentDir == s.modsDir || parentDir == s.disabledDir {
		// Loose mods (and flat disabled mods) have no folder to rename
		return record, nil
	}

	expectedFolder := s.targetFolder(metadata)
	if parentDir == expectedFolder {
		return record, nil
	}

	newID, err := s.relocateMod(record, parentDir, expectedFolder)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.Migrate(id, newID); err != nil {
		return nil, err
	}
	s.log.Infow("Migrated metadata after folder rename",
		zap.String("oldId", id), zap.String("newId", newID))

	fresh, err := s.FindByID(newID)
	if err != nil {
		return nil, fmt.Errorf("mod not found after folder rename: %w", err)
	}
	return fresh, nil
}

// relocateMod moves a mod whose folder no longer matches its metadata and
// returns the identifier derived from the new primary path. When the folder
// holds other mods too, only this mod's own files move; otherwise the whole
// folder is renamed, falling back to copy+delete when rename fails.
func (s *Service) relocateMod(record *ModRecord, parentDir, expectedFolder string) (string, error) {
	primaryName := filepath.Base(record.FilePath)
	newPrimaryPath := filepath.Join(expectedFolder, primaryName)

	if s.countModFiles(parentDir) > 1 {
		s.log.Infow("Folder holds multiple mods, moving only this mod's files",
			zap.String("folder", parentDir))

		if err := s.fs.MkdirAll(expectedFolder, 0755); err != nil {
			return "", fmt.Errorf("failed to create target folder: %w", err)
		}
		for _, filePath := range record.AssociatedFiles {
			destPath := filepath.Join(expectedFolder, filepath.Base(filePath))
			if err := s.fs.Rename(filePath, destPath); err != nil {
				return "", fmt.Errorf("failed to move file %s: %w", filePath, err)
			}
		}
		return IdentifierForPath(newPrimaryPath), nil
	}

	if err := s.fs.MkdirAll(filepath.Dir(expectedFolder), 0755); err != nil {
		return "", fmt.Errorf("failed to create parent directory: %w", err)
	}

	if err := s.fs.Rename(parentDir, expectedFolder); err != nil {
		s.log.Warnw("Direct rename failed, using copy+delete fallback",
			zap.String("from", parentDir), zap.String("to", expectedFolder), zap.Error(err))

		if err := s.copyDirRecursive(parentDir, expectedFolder); err != nil {
			return "", err
		}
		if err := s.deleteDirWithRetry(parentDir); err != nil {
			return "", err
		}
	}

	return IdentifierForPath(newPrimaryPath), nil
}

// targetFolder computes the folder a mod's metadata implies:
// <mods>/<Category>[/<Character>]/<SanitizedTitle>.
func (s *Service) targetFolder(metadata *ModMetadata) string {
	parts := []string{SanitizeFolderName(string(metadata.Category))}
	if metadata.Character != nil {
		parts = append(parts, SanitizeFolderName(string(*metadata.Character)))
	}
	parts = append(parts, SanitizeFolderName(metadata.Title))
	return filepath.Join(append([]string{s.modsDir}, parts...)...)
}

// countModFiles counts primary mod files directly inside a folder.
func (s *Service) countModFiles(dir string) int {
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return 0
	}
	count := 0
	for _, entry := range entries {
		if !entry.IsDir() && isModFile(entry.Name()) {
			count++
		}
	}
	return count
}

// RemoveProfileFromAll strips a profile id from every mod that lists it,
// clearing the membership list entirely when it empties out. Returns the
// number of mods updated.
func (s *Service) RemoveProfileFromAll(profileID string) (int, error) {
	records, err := s.ScanAll()
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, record := range records {
		metadata, err := s.store.Load(record.ID)
		if err != nil {
			return updated, err
		}
		if metadata == nil || len(metadata.ProfileIDs) == 0 {
			continue
		}

		kept := metadata.ProfileIDs[:0]
		for _, pid := range metadata.ProfileIDs {
			if pid != profileID {
				kept = append(kept, pid)
			}
		}
		if len(kept) == len(metadata.ProfileIDs) {
			continue
		}

		if len(kept) == 0 {
			metadata.ProfileIDs = nil
		} else {
			metadata.ProfileIDs = kept
		}
		if err := s.store.Save(record.ID, metadata); err != nil {
			return updated, err
		}
		updated++
	}

	s.log.Infof("Removed profile %s from %d mod(s)", profileID, updated)
	return updated, nil
}

// MigratePathIDs is the one-time reconciliation for sidecars saved under the
// legacy filename-only identifier scheme. Already-migrated mods are detected
// by their path-based sidecar existing, making the pass idempotent. Returns
// the number of mods migrated.
func (s *Service) MigratePathIDs() (int, error) {
	records, err := s.ScanAll()
	if err != nil {
		return 0, err
	}

	migrated := 0
	for _, record := range records {
		oldID := IdentifierForFileName(record.OriginalFileName)
		newID := IdentifierForPath(record.FilePath)

		if oldID == newID {
			continue
		}
		existing, err := s.store.Load(newID)
		if err != nil || existing != nil {
			continue
		}

		moved, err := s.store.Migrate(oldID, newID)
		if err != nil {
			s.log.Warnw("Failed to migrate sidecars", "oldId", oldID, "newId", newID, "error", err)
			continue
		}
		if moved {
			s.log.Infow("Migrated sidecars to path-based identifier",
				zap.String("name", record.Name), zap.String("oldId", oldID), zap.String("newId", newID))
			migrated++
		}
	}
	return migrated, nil
}

// CopyMetadataFrom recovers a mod's sidecars from an old identifier: the
// thumbnail is copied first, then the old metadata is applied through
// UpdateMetadata so the normal folder-rename logic runs.
func (s *Service) CopyMetadataFrom(currentID, oldID string) error {
	oldMetadata, err := s.store.Load(oldID)
	if err != nil {
		return err
	}
	if oldMetadata == nil {
		return fmt.Errorf("%w: no metadata under old identifier %s", ErrNotFound, oldID)
	}

	if err := s.store.CopyThumbnail(oldID, currentID); err != nil {
		return err
	}

	if _, err := s.UpdateMetadata(currentID, oldMetadata); err != nil {
		return err
	}
	s.log.Infow("Recovered metadata from old identifier",
		zap.String("oldId", oldID), zap.String("currentId", currentID))
	return nil
}

// copyFile copies a single file's contents.
func (s *Service) copyFile(source, dest string) error {
	content, err := afero.ReadFile(s.fs, source)
	if err != nil {
		return err
	}
	return afero.WriteFile(s.fs, dest, content, 0644)
}

// copyDirRecursive copies a directory tree, creating destination directories
// as it goes.
func (s *Service) copyDirRecursive(source, dest string) error {
	if err := s.fs.MkdirAll(dest, 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	return afero.Walk(s.fs, source, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(source, path)
		if err != nil {
			return fmt.Errorf("failed to compute relative path: %w", err)
		}
		destPath := filepath.Join(dest, rel)

		if info.IsDir() {
			return s.fs.MkdirAll(destPath, 0755)
		}
		if err := s.fs.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return err
		}
		return s.copyFile(path, destPath)
	})
}

// deleteDirWithRetry deletes a directory tree, retrying with backoff to ride
// out transient file locks. Exhausting the retries surfaces a LockError.
func (s *Service) deleteDirWithRetry(path string) error {
	err := withRetry(deleteRetryAttempts, deleteRetryDelay, func() error {
		return s.fs.RemoveAll(path)
	})
	if err != nil {
		return &LockError{Path: path, Attempts: deleteRetryAttempts, Err: err}
	}
	return nil
}
