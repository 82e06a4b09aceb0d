// Package thumbnail produces the PNG thumbnail sidecars stored next to mod
// metadata. It decodes png, jpeg and webp sources, applies an optional crop,
// scales to the thumbnail size and writes <id>_thumbnail.png.
package thumbnail

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register decoder
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register decoder
)

// Thumbnails are rendered at 16:9 HD size.
const (
	thumbnailWidth  = 1920
	thumbnailHeight = 1080
)

// Crop selects a region of the source image before scaling.
type Crop struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Service writes thumbnail sidecars into the metadata directory.
type Service struct {
	metadataDir string
}

// NewService returns a thumbnail service rooted at metadataDir.
func NewService(metadataDir string) *Service {
	return &Service{metadataDir: metadataDir}
}

// Path returns the sidecar path for a mod identifier.
func (s *Service) Path(id string) string {
	return filepath.Join(s.metadataDir, id+"_thumbnail.png")
}

// Exists reports whether a thumbnail sidecar exists for the identifier.
func (s *Service) Exists(id string) bool {
	_, err := os.Stat(s.Path(id))
	return err == nil
}

// Delete removes the sidecar for the identifier, if present.
func (s *Service) Delete(id string) error {
	err := os.Remove(s.Path(id))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete thumbnail %s: %w", id, err)
	}
	return nil
}

// SaveFromFile decodes an image file, crops it if requested, and writes the
// thumbnail sidecar for the identifier. Returns the sidecar path.
func (s *Service) SaveFromFile(id, sourcePath string, crop *Crop) (string, error) {
	content, err := os.ReadFile(sourcePath)
	if err != nil {
		return "", fmt.Errorf("failed to read image file: %w", err)
	}
	return s.SaveFromBytes(id, content, crop)
}

// SaveFromBytes is SaveFromFile for in-memory image data.
func (s *Service) SaveFromBytes(id string, data []byte, crop *Crop) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	if crop != nil {
		img, err = cropImage(img, crop)
		if err != nil {
			return "", err
		}
	}

	return s.save(id, img)
}

func (s *Service) save(id string, img image.Image) (string, error) {
	if err := os.MkdirAll(s.metadataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create metadata directory: %w", err)
	}

	scaled := scale(img, thumbnailWidth, thumbnailHeight)

	path := s.Path(id)
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create thumbnail file: %w", err)
	}
	defer out.Close()

	if err := png.Encode(out, scaled); err != nil {
		return "", fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return path, nil
}

// cropImage cuts the requested region out of the source image. The region
// must lie fully inside the image bounds.
func cropImage(img image.Image, crop *Crop) (image.Image, error) {
	bounds := img.Bounds()
	region := image.Rect(
		bounds.Min.X+crop.X,
		bounds.Min.Y+crop.Y,
		bounds.Min.X+crop.X+crop.Width,
		bounds.Min.Y+crop.Y+crop.Height,
	)
	if !region.In(bounds) {
		return nil, fmt.Errorf("crop region %v exceeds image bounds %v", region, bounds)
	}

	cropped := image.NewRGBA(image.Rect(0, 0, crop.Width, crop.Height))
	draw.Copy(cropped, image.Point{}, img, region, draw.Src, nil)
	return cropped, nil
}

// scale resizes to exactly width x height with Catmull-Rom interpolation.
func scale(img image.Image, width, height int) image.Image {
	if b := img.Bounds(); b.Dx() == width && b.Dy() == height {
		return img
	}
	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
	return scaled
}
