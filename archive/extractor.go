// Package archive extracts mod archives and detects the mods they contain.
// ZIP and 7z are supported; RAR is rejected with a descriptive error.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// MaxArchiveSize bounds the archives the extractor will open.
const MaxArchiveSize = 5 * 1024 * 1024 * 1024 // 5GB

const modFileExtension = ".pak"

var companionExtensions = []string{".ucas", ".utoc"}

// ErrUnsupportedFormat is returned for archive formats the extractor cannot
// handle, including RAR.
var ErrUnsupportedFormat = errors.New("unsupported archive format")

// DetectedMod describes one mod found in an extracted archive.
type DetectedMod struct {
	PakFile         string   `json:"pakFile"`
	AssociatedFiles []string `json:"associatedFiles"`
	Size            int64    `json:"size"`
}

// Extract unpacks an archive into destDir and returns the paths of the mod
// files it contained. The format is chosen by file extension. Entries that
// would escape destDir are skipped.
func Extract(archivePath, destDir string) ([]string, error) {
	info, err := os.Stat(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive metadata: %w", err)
	}
	if info.Size() > MaxArchiveSize {
		return nil, fmt.Errorf("archive too large (%dGB), maximum size is 5GB",
			info.Size()/(1024*1024*1024))
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create destination directory: %w", err)
	}

	switch strings.ToLower(filepath.Ext(archivePath)) {
	case ".zip":
		return extractZip(archivePath, destDir)
	case ".7z":
		return extract7z(archivePath, destDir)
	case ".rar":
		return nil, fmt.Errorf("%w: RAR archives are not supported, repack as zip or 7z", ErrUnsupportedFormat)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(archivePath))
	}
}

func extractZip(archivePath, destDir string) ([]string, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		// Insecure entry names are tolerated here; safeJoin drops them below
		return nil, fmt.Errorf("failed to open zip archive: %w", err)
	}
	defer reader.Close()

	var mods []string
	for _, entry := range reader.File {
		outPath, ok := safeJoin(destDir, entry.Name)
		if !ok {
			continue
		}

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(outPath, 0755); err != nil {
				return nil, fmt.Errorf("failed to create directory: %w", err)
			}
			continue
		}

		if err := writeEntry(outPath, func() (io.ReadCloser, error) { return entry.Open() }); err != nil {
			return nil, err
		}
		if isModFile(outPath) {
			mods = append(mods, outPath)
		}
	}
	return mods, nil
}

func extract7z(archivePath, destDir string) ([]string, error) {
	reader, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open 7z archive: %w", err)
	}
	defer reader.Close()

	var mods []string
	for _, entry := range reader.File {
		outPath, ok := safeJoin(destDir, entry.Name)
		if !ok {
			continue
		}

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(outPath, 0755); err != nil {
				return nil, fmt.Errorf("failed to create directory: %w", err)
			}
			continue
		}

		if err := writeEntry(outPath, func() (io.ReadCloser, error) { return entry.Open() }); err != nil {
			return nil, err
		}
		if isModFile(outPath) {
			mods = append(mods, outPath)
		}
	}
	return mods, nil
}

// writeEntry copies one archive entry to disk, creating parent directories.
func writeEntry(outPath string, open func() (io.ReadCloser, error)) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	in, err := open()
	if err != nil {
		return fmt.Errorf("failed to read archive entry: %w", err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to extract %s: %w", outPath, err)
	}
	return nil
}

// safeJoin joins an archive entry name onto destDir, rejecting entries that
// would escape it.
func safeJoin(destDir, name string) (string, bool) {
	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return "", false
	}
	return filepath.Join(destDir, filepath.FromSlash(name)), true
}

// DetectMods walks an extracted directory and returns every mod file with its
// companion files and size.
func DetectMods(dir string) ([]DetectedMod, error) {
	var detected []DetectedMod

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !isModFile(path) {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return nil
		}

		baseName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		parent := filepath.Dir(path)
		associated := []string{}
		for _, ext := range companionExtensions {
			companion := filepath.Join(parent, baseName+ext)
			if _, err := os.Stat(companion); err == nil {
				associated = append(associated, companion)
			}
		}

		detected = append(detected, DetectedMod{
			PakFile:         path,
			AssociatedFiles: associated,
			Size:            info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan extracted directory: %w", err)
	}
	return detected, nil
}

// ExtractToTemp extracts an archive into a fresh temporary directory and
// detects the mods inside. The caller owns the returned directory and should
// remove it when done.
func ExtractToTemp(archivePath string) (string, []DetectedMod, error) {
	tempDir, err := os.MkdirTemp("", "rivals-mod-extract-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temporary directory: %w", err)
	}

	if _, err := Extract(archivePath, tempDir); err != nil {
		os.RemoveAll(tempDir)
		return "", nil, err
	}

	detected, err := DetectMods(tempDir)
	if err != nil {
		os.RemoveAll(tempDir)
		return "", nil, err
	}
	return tempDir, detected, nil
}

func isModFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), modFileExtension)
}
