package thumbnail

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// encodeTestPNG renders a solid-color image as PNG bytes.
func encodeTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestPath(t *testing.T) {
	svc := NewService("/data/metadata")
	want := filepath.Join("/data/metadata", "abc123_thumbnail.png")
	if got := svc.Path("abc123"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestSaveFromBytes(t *testing.T) {
	svc := NewService(t.TempDir())

	path, err := svc.SaveFromBytes("mod1", encodeTestPNG(t, 64, 64), nil)
	if err != nil {
		t.Fatalf("SaveFromBytes() error = %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("thumbnail not written: %v", err)
	}
	defer file.Close()

	decoded, err := png.Decode(file)
	if err != nil {
		t.Fatalf("thumbnail is not valid PNG: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() != 1920 || bounds.Dy() != 1080 {
		t.Errorf("thumbnail size = %dx%d, want 1920x1080", bounds.Dx(), bounds.Dy())
	}

	if !svc.Exists("mod1") {
		t.Error("Exists() = false after save")
	}
}

func TestSaveFromFile(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source.png")
	if err := os.WriteFile(source, encodeTestPNG(t, 32, 32), 0644); err != nil {
		t.Fatal(err)
	}

	svc := NewService(t.TempDir())
	if _, err := svc.SaveFromFile("mod2", source, nil); err != nil {
		t.Fatalf("SaveFromFile() error = %v", err)
	}
}

func TestSaveWithCrop(t *testing.T) {
	svc := NewService(t.TempDir())
	data := encodeTestPNG(t, 100, 100)

	t.Run("valid crop", func(t *testing.T) {
		if _, err := svc.SaveFromBytes("cropped", data, &Crop{X: 10, Y: 10, Width: 50, Height: 50}); err != nil {
			t.Errorf("SaveFromBytes() error = %v", err)
		}
	})

	t.Run("crop exceeds bounds", func(t *testing.T) {
		if _, err := svc.SaveFromBytes("bad", data, &Crop{X: 50, Y: 50, Width: 100, Height: 100}); err == nil {
			t.Error("SaveFromBytes() error = nil, want bounds error")
		}
	})
}

func TestSaveRejectsGarbage(t *testing.T) {
	svc := NewService(t.TempDir())
	if _, err := svc.SaveFromBytes("bad", []byte("not an image"), nil); err == nil {
		t.Error("SaveFromBytes() error = nil, want decode error")
	}
}

func TestDelete(t *testing.T) {
	svc := NewService(t.TempDir())

	if err := svc.Delete("never-saved"); err != nil {
		t.Errorf("Delete() error = %v, want nil for missing thumbnail", err)
	}

	if _, err := svc.SaveFromBytes("mod3", encodeTestPNG(t, 16, 16), nil); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete("mod3"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if svc.Exists("mod3") {
		t.Error("thumbnail still exists after Delete()")
	}
}
