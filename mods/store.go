package mods

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// MetadataStore reads and writes per-mod JSON sidecars and their thumbnail
// companions, keyed by mod identifier. Sidecars live flat in the metadata
// directory: <id>.json and <id>_thumbnail.png.
type MetadataStore struct {
	fs          afero.Fs
	metadataDir string
}

// NewMetadataStore returns a store rooted at metadataDir.
func NewMetadataStore(fs afero.Fs, metadataDir string) *MetadataStore {
	return &MetadataStore{fs: fs, metadataDir: metadataDir}
}

// MetadataPath returns the sidecar path for a mod identifier.
func (s *MetadataStore) MetadataPath(id string) string {
	return filepath.Join(s.metadataDir, id+".json")
}

// ThumbnailPath returns the thumbnail sidecar path for a mod identifier.
func (s *MetadataStore) ThumbnailPath(id string) string {
	return filepath.Join(s.metadataDir, id+"_thumbnail.png")
}

// Load reads the sidecar for id. A missing sidecar is not an error: it
// returns (nil, nil) so callers can synthesize defaults.
func (s *MetadataStore) Load(id string) (*ModMetadata, error) {
	path := s.MetadataPath(id)

	exists, err := afero.Exists(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to check metadata %s: %w", id, err)
	}
	if !exists {
		return nil, nil
	}

	content, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata %s: %w", id, err)
	}

	var metadata ModMetadata
	if err := json.Unmarshal(content, &metadata); err != nil {
		return nil, fmt.Errorf("failed to parse metadata %s: %w", id, err)
	}
	return &metadata, nil
}

// Save serializes metadata to pretty JSON and writes it, creating the
// metadata directory if needed. Sidecars are per-mod and never shared, so a
// plain write is sufficient.
func (s *MetadataStore) Save(id string, metadata *ModMetadata) error {
	if err := s.fs.MkdirAll(s.metadataDir, 0755); err != nil {
		return fmt.Errorf("failed to create metadata directory: %w", err)
	}

	content, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize metadata %s: %w", id, err)
	}

	if err := afero.WriteFile(s.fs, s.MetadataPath(id), content, 0644); err != nil {
		return fmt.Errorf("failed to write metadata %s: %w", id, err)
	}
	return nil
}

// Delete removes the sidecar for id. Deleting a sidecar that does not exist
// is a no-op.
func (s *MetadataStore) Delete(id string) error {
	path := s.MetadataPath(id)
	exists, err := afero.Exists(s.fs, path)
	if err != nil {
		return fmt.Errorf("failed to check metadata %s: %w", id, err)
	}
	if !exists {
		return nil
	}
	if err := s.fs.Remove(path); err != nil {
		return fmt.Errorf("failed to delete metadata %s: %w", id, err)
	}
	return nil
}

// HasThumbnail reports whether a thumbnail sidecar exists for id.
func (s *MetadataStore) HasThumbnail(id string) bool {
	exists, _ := afero.Exists(s.fs, s.ThumbnailPath(id))
	return exists
}

// CopyThumbnail copies the thumbnail sidecar from one identifier to another.
// Missing source thumbnails are not an error.
func (s *MetadataStore) CopyThumbnail(oldID, newID string) error {
	if !s.HasThumbnail(oldID) {
		return nil
	}
	content, err := afero.ReadFile(s.fs, s.ThumbnailPath(oldID))
	if err != nil {
		return fmt.Errorf("failed to read thumbnail %s: %w", oldID, err)
	}
	if err := afero.WriteFile(s.fs, s.ThumbnailPath(newID), content, 0644); err != nil {
		return fmt.Errorf("failed to write thumbnail %s: %w", newID, err)
	}
	return nil
}

// DeleteThumbnail removes the thumbnail sidecar for id, if present.
func (s *MetadataStore) DeleteThumbnail(id string) error {
	path := s.ThumbnailPath(id)
	exists, err := afero.Exists(s.fs, path)
	if err != nil || !exists {
		return err
	}
	if err := s.fs.Remove(path); err != nil {
		return fmt.Errorf("failed to delete thumbnail %s: %w", id, err)
	}
	return nil
}

// Migrate moves the metadata and thumbnail sidecars from oldID to newID:
// load old, save under new, copy the thumbnail across, then delete the old
// sidecars. If no metadata exists under oldID nothing happens; the next scan
// will synthesize fresh defaults.
func (s *MetadataStore) Migrate(oldID, newID string) (bool, error) {
	metadata, err := s.Load(oldID)
	if err != nil {
		return false, err
	}
	if metadata == nil {
		return false, nil
	}

	if err := s.Save(newID, metadata); err != nil {
		return false, err
	}
	if err := s.CopyThumbnail(oldID, newID); err != nil {
		return false, err
	}
	if err := s.Delete(oldID); err != nil {
		return false, err
	}
	_ = s.DeleteThumbnail(oldID)
	return true, nil
}
