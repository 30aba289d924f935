package tools

import (
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// SaveImage writes an image to path, creating parent directories. The encoding
// format is inferred from the file extension.
func SaveImage(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0770); err != nil {
		return err
	}
	return imaging.Save(img, path)
}

func PanicOnError[T any](v T, e error) T {
	if e != nil {
		panic(e)
	}
	return v
}
