package segmind

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"io/fs"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/reusedev/segmind-go/tools"
	"golang.org/x/image/webp"
)

// ImageInput references the image a call operates on. Exactly one of the three
// fields may be set:
//
//   - URL: a remote image, passed through to the service unchanged.
//   - Path: a local file, read and encoded into an inline data URL.
//   - Data: an already-encoded data URL, passed through unchanged.
type ImageInput struct {
	URL  string
	Path string
	Data string
}

func (i ImageInput) isZero() bool {
	return i.URL == "" && i.Path == "" && i.Data == ""
}

// resolve normalizes the input to the single string the payload carries. It
// runs before any network activity.
func (i ImageInput) resolve() (string, error) {
	set := 0
	for _, v := range []string{i.URL, i.Path, i.Data} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return "", &ValidationError{Reason: "exactly one of URL, Path or Data must be provided"}
	}
	switch {
	case i.URL != "":
		return i.URL, nil
	case i.Data != "":
		return i.Data, nil
	default:
		b, err := tools.ReadFile(i.Path)
		if err != nil {
			if os.IsNotExist(err) {
				return "", &NotFoundError{Path: i.Path, Err: fs.ErrNotExist}
			}
			return "", err
		}
		return EncodeInline(b)
	}
}

// EncodeInline wraps raw image bytes in a self-describing data URL whose
// format tag comes from the magic bytes.
func EncodeInline(b []byte) (string, error) {
	t := tools.DetectImageType(b)
	if t == tools.ImageTypeUnknown {
		return "", &ValidationError{Reason: "unrecognized image format"}
	}
	return fmt.Sprintf("data:image/%s;base64,%s", t, base64.StdEncoding.EncodeToString(b)), nil
}

// EncodeImage encodes an image into an inline data URL in the given format.
// DecodeImage reverses it; for PNG the round trip is lossless.
func EncodeImage(img image.Image, format imaging.Format) (string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		return "", err
	}
	return EncodeInline(buf.Bytes())
}

// EncodePNG renders an image to raw PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeImage decodes an inline data URL (with or without the data: prefix)
// back into an image.
func DecodeImage(data string) (image.Image, error) {
	if idx := strings.Index(data, ","); idx >= 0 {
		data = data[idx+1:]
	}
	b, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, &DecodeError{ContentType: "inline", Err: err}
	}
	img, err := decodeImageBytes(b)
	if err != nil {
		return nil, &DecodeError{ContentType: "inline", Err: err}
	}
	return img, nil
}

func decodeImageBytes(b []byte) (image.Image, error) {
	if tools.DetectImageType(b) == tools.ImageTypeWEBP {
		return webp.Decode(bytes.NewReader(b))
	}
	return imaging.Decode(bytes.NewReader(b))
}
