package tools

import (
	"bytes"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

// Resize scales an image to the requested dimensions. When one of width/height
// is zero the other is derived from the source aspect ratio; when both are set
// and maintainAspect is true the image is fitted inside the box.
func Resize(img image.Image, width, height int, maintainAspect bool) image.Image {
	if width == 0 && height == 0 {
		return img
	}
	if maintainAspect {
		b := img.Bounds()
		switch {
		case width == 0:
			aspect := float64(b.Dx()) / float64(b.Dy())
			width = int(float64(height) * aspect)
		case height == 0:
			aspect := float64(b.Dx()) / float64(b.Dy())
			height = int(float64(width) / aspect)
		default:
			return imaging.Fit(img, width, height, imaging.Lanczos)
		}
	}
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

func Thumbnail(r io.Reader, ratio float64, format imaging.Format) (io.Reader, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	width := int(float64(b.Dx()) * ratio)
	height := int(float64(b.Dy()) * ratio)
	thumbnail := imaging.Thumbnail(img, width, height, imaging.Lanczos)
	if thumbnail == nil {
		return nil, io.ErrUnexpectedEOF
	}
	var buf bytes.Buffer
	err = imaging.Encode(&buf, thumbnail, format)
	if err != nil {
		return nil, err
	}
	return &buf, nil
}
