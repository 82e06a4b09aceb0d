package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeZip creates a zip archive containing the given entries.
func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	writer := zip.NewWriter(file)
	for name, content := range entries {
		w, err := writer.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestExtractZip(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "mod.zip")
	writeZip(t, archivePath, map[string]string{
		"CoolMod/cool.pak":  "pak",
		"CoolMod/cool.ucas": "ucas",
		"readme.txt":        "hello",
	})

	destDir := filepath.Join(dir, "out")
	mods, err := Extract(archivePath, destDir)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(mods) != 1 {
		t.Fatalf("Extract() returned %d mod files, want 1", len(mods))
	}
	if mods[0] != filepath.Join(destDir, "CoolMod", "cool.pak") {
		t.Errorf("mod path = %q", mods[0])
	}
	if _, err := os.Stat(filepath.Join(destDir, "readme.txt")); err != nil {
		t.Errorf("non-mod entry not extracted: %v", err)
	}
}

func TestExtractSkipsTraversalEntries(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "evil.zip")
	writeZip(t, archivePath, map[string]string{
		"../escape.pak": "nope",
		"safe.pak":      "ok",
	})

	destDir := filepath.Join(dir, "out")
	mods, err := Extract(archivePath, destDir)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(mods) != 1 {
		t.Errorf("Extract() returned %d mod files, want only the safe one", len(mods))
	}
	if _, err := os.Stat(filepath.Join(dir, "escape.pak")); !os.IsNotExist(err) {
		t.Error("traversal entry escaped the destination directory")
	}
}

func TestExtractRejectsRar(t *testing.T) {
	dir := t.TempDir()
	rarPath := filepath.Join(dir, "mod.rar")
	if err := os.WriteFile(rarPath, []byte("not really rar"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Extract(rarPath, filepath.Join(dir, "out")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Extract() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestExtractRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mod.tar")
	if err := os.WriteFile(path, []byte("tar"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Extract(path, filepath.Join(dir, "out")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Extract() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDetectMods(t *testing.T) {
	dir := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write("Bundle/bundle.pak", "pak-bytes")
	write("Bundle/bundle.ucas", "ucas")
	write("Bundle/bundle.utoc", "utoc")
	write("solo.pak", "solo")
	write("notes.txt", "ignore me")

	detected, err := DetectMods(dir)
	if err != nil {
		t.Fatalf("DetectMods() error = %v", err)
	}
	if len(detected) != 2 {
		t.Fatalf("DetectMods() returned %d mods, want 2", len(detected))
	}

	byName := make(map[string]DetectedMod)
	for _, mod := range detected {
		byName[filepath.Base(mod.PakFile)] = mod
	}
	if len(byName["bundle.pak"].AssociatedFiles) != 2 {
		t.Errorf("bundle.pak companions = %v, want 2", byName["bundle.pak"].AssociatedFiles)
	}
	if len(byName["solo.pak"].AssociatedFiles) != 0 {
		t.Errorf("solo.pak companions = %v, want none", byName["solo.pak"].AssociatedFiles)
	}
	if byName["solo.pak"].Size != int64(len("solo")) {
		t.Errorf("solo.pak size = %d", byName["solo.pak"].Size)
	}
}

func TestExtractToTemp(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "mod.zip")
	writeZip(t, archivePath, map[string]string{
		"a.pak": "a",
		"b.pak": "b",
	})

	tempDir, detected, err := ExtractToTemp(archivePath)
	if err != nil {
		t.Fatalf("ExtractToTemp() error = %v", err)
	}
	defer os.RemoveAll(tempDir)

	if len(detected) != 2 {
		t.Errorf("detected %d mods, want 2", len(detected))
	}
}
