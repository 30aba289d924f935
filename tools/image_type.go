package tools

import "bytes"

type ImageType string

const (
	ImageTypePNG     ImageType = "png"
	ImageTypeJPEG    ImageType = "jpeg"
	ImageTypeWEBP    ImageType = "webp"
	ImageTypeGIF     ImageType = "gif"
	ImageTypeUnknown ImageType = "unknown"
)

func (t ImageType) String() string {
	return string(t)
}

func DetectImageType(data []byte) ImageType {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return ImageTypePNG
	case bytes.HasPrefix(data, []byte("\xff\xd8\xff")):
		return ImageTypeJPEG
	case len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return ImageTypeWEBP
	case bytes.HasPrefix(data, []byte("GIF87a")) || bytes.HasPrefix(data, []byte("GIF89a")):
		return ImageTypeGIF
	default:
		return ImageTypeUnknown
	}
}
