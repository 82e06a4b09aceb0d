package mods

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// OrganizeLoose moves every enabled loose mod into its category/character/name
// folder. A mod is loose only when its primary file sits directly in the
// active root; anything already one or more folders deep is left alone, even
// if misplaced (fixing nested mods is the metadata-update rename's job).
// Returns the number of mods moved.
func (s *Service) OrganizeLoose() (int, error) {
	records, err := s.ScanAll()
	if err != nil {
		return 0, err
	}

	moved := 0
	for _, record := range records {
		if !record.Enabled || filepath.Dir(record.FilePath) != s.modsDir {
			continue
		}

		targetDir := s.targetFolder(&record.Metadata)
		if err := s.fs.MkdirAll(targetDir, 0755); err != nil {
			return moved, fmt.Errorf("failed to create target folder %s: %w", targetDir, err)
		}

		var newPrimaryPath string
		for i, filePath := range record.AssociatedFiles {
			destPath := filepath.Join(targetDir, filepath.Base(filePath))
			if err := s.fs.Rename(filePath, destPath); err != nil {
				return moved, fmt.Errorf("failed to move file %s: %w", filePath, err)
			}
			if i == 0 {
				newPrimaryPath = destPath
			}
		}

		newID := IdentifierForPath(newPrimaryPath)
		if newID != record.ID {
			if _, err := s.store.Migrate(record.ID, newID); err != nil {
				s.log.Warnw("Failed to migrate sidecars", "oldId", record.ID, "newId", newID, "error", err)
			}
		}

		s.log.Infow("Organized loose mod",
			zap.String("name", record.Name), zap.String("folder", targetDir))
		moved++
	}
	return moved, nil
}

// MergeDuplicateFolders collapses character folders whose names differ only in
// hyphenation, spacing or case ("Black-Widow" vs "BlackWidow") into one.
// Merging happens within each category folder independently and never crosses
// categories. The surviving folder is the first one in listing order whose
// name contains a hyphen, else the first folder found. Same-named mod folders
// already present at the target are skipped and left behind. Returns the
// number of source folders merged away.
func (s *Service) MergeDuplicateFolders() (int, error) {
	categories, err := afero.ReadDir(s.fs, s.modsDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read mods directory: %w", err)
	}

	merged := 0
	for _, category := range categories {
		if !category.IsDir() {
			continue
		}
		n, err := s.mergeDuplicatesIn(filepath.Join(s.modsDir, category.Name()))
		merged += n
		if err != nil {
			return merged, err
		}
	}
	return merged, nil
}

func (s *Service) mergeDuplicatesIn(categoryDir string) (int, error) {
	entries, err := afero.ReadDir(s.fs, categoryDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read category folder %s: %w", categoryDir, err)
	}

	// Group child folders by normalized name, keeping listing order
	groups := make(map[string][]string)
	var order []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		key := normalizeFolderName(entry.Name())
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], entry.Name())
	}

	merged := 0
	for _, key := range order {
		names := groups[key]
		if len(names) < 2 {
			continue
		}

		target := names[0]
		for _, name := range names {
			if strings.Contains(name, "-") {
				target = name
				break
			}
		}
		targetDir := filepath.Join(categoryDir, target)

		for _, name := range names {
			if name == target {
				continue
			}
			sourceDir := filepath.Join(categoryDir, name)
			if err := s.mergeFolderInto(sourceDir, targetDir); err != nil {
				return merged, err
			}
			merged++
			s.log.Infow("Merged duplicate folder",
				zap.String("from", sourceDir), zap.String("into", targetDir))
		}
	}
	return merged, nil
}

// mergeFolderInto moves every child mod folder of sourceDir into targetDir,
// migrating sidecars for each mod file moved, then deletes the emptied source
// folder with retry.
func (s *Service) mergeFolderInto(sourceDir, targetDir string) error {
	children, err := afero.ReadDir(s.fs, sourceDir)
	if err != nil {
		return fmt.Errorf("failed to read folder %s: %w", sourceDir, err)
	}

	for _, child := range children {
		oldChild := filepath.Join(sourceDir, child.Name())
		newChild := filepath.Join(targetDir, child.Name())

		if exists, _ := afero.Exists(s.fs, newChild); exists {
			s.log.Warnw("Skipping merge conflict, same-named entry exists at target",
				"source", oldChild, "target", newChild)
			continue
		}

		// Collect mod files before the move so identifiers can be migrated
		oldPaks := s.modFilesUnder(oldChild, child.IsDir())

		if err := s.fs.Rename(oldChild, newChild); err != nil {
			return fmt.Errorf("failed to move %s: %w", oldChild, err)
		}

		for _, oldPak := range oldPaks {
			rel, err := filepath.Rel(oldChild, oldPak)
			if err != nil {
				continue
			}
			newPak := filepath.Join(newChild, rel)
			if rel == "." {
				newPak = newChild
			}
			if _, err := s.store.Migrate(IdentifierForPath(oldPak), IdentifierForPath(newPak)); err != nil {
				s.log.Warnw("Failed to migrate sidecars", "path", newPak, "error", err)
			}
		}
	}

	// Anything left behind was a skipped conflict; keep the folder then
	remaining, err := afero.ReadDir(s.fs, sourceDir)
	if err != nil {
		return fmt.Errorf("failed to re-read folder %s: %w", sourceDir, err)
	}
	if len(remaining) > 0 {
		s.log.Warnw("Source folder kept, conflicts remain", "path", sourceDir)
		return nil
	}
	return s.deleteDirWithRetry(sourceDir)
}

// modFilesUnder lists the mod files at or under path. For a plain file the
// path itself is returned when it is a mod file.
func (s *Service) modFilesUnder(path string, isDir bool) []string {
	if !isDir {
		if isModFile(path) {
			return []string{path}
		}
		return nil
	}

	var paks []string
	_ = afero.Walk(s.fs, path, func(p string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if isModFile(p) {
			paks = append(paks, p)
		}
		return nil
	})
	return paks
}

// CleanupEmptyFolders deletes folders under the active root whose subtree
// contains no files at all. The root itself, its direct children (category
// folders) and folders named after a character survive even when empty.
// Deeper folders are processed first so a parent is never removed while its
// children are still pending. Returns the number of folders deleted.
func (s *Service) CleanupEmptyFolders() (int, error) {
	var candidates []string

	err := afero.Walk(s.fs, s.modsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("failed to read directory %s: %w", path, err)
		}
		if !info.IsDir() || path == s.modsDir {
			return nil
		}
		if filepath.Dir(path) == s.modsDir {
			return nil // category folders stay
		}
		if isCharacterFolder(info.Name()) {
			return nil
		}
		candidates = append(candidates, path)
		return nil
	})
	if err != nil {
		return 0, err
	}

	// Deepest first
	sort.Slice(candidates, func(i, j int) bool {
		return strings.Count(candidates[i], string(filepath.Separator)) >
			strings.Count(candidates[j], string(filepath.Separator))
	})

	deleted := 0
	for _, path := range candidates {
		empty, err := s.isRecursivelyFileFree(path)
		if err != nil {
			// The folder may already be gone as part of a deleted parent
			continue
		}
		if !empty {
			continue
		}
		if err := s.fs.RemoveAll(path); err != nil {
			s.log.Warnw("Failed to delete empty folder", "path", path, "error", err)
			continue
		}
		s.log.Infow("Deleted empty folder", zap.String("path", path))
		deleted++
	}
	return deleted, nil
}

// errFileFound short-circuits the emptiness walk.
var errFileFound = fmt.Errorf("file found")

// isRecursivelyFileFree reports whether a directory subtree contains no files
// at any depth.
func (s *Service) isRecursivelyFileFree(dir string) (bool, error) {
	err := afero.Walk(s.fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return errFileFound
		}
		return nil
	})
	if err == errFileFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// normalizeFolderName folds a folder name for duplicate detection: hyphens
// and spaces stripped, lowercased.
func normalizeFolderName(name string) string {
	name = strings.ReplaceAll(name, "-", "")
	name = strings.ReplaceAll(name, " ", "")
	return strings.ToLower(name)
}

// isCharacterFolder reports whether a folder name matches any character's
// sanitized display name.
func isCharacterFolder(name string) bool {
	for _, character := range AllCharacters {
		if strings.EqualFold(name, SanitizeFolderName(string(character))) {
			return true
		}
	}
	return false
}
