package segmind

import (
	"bytes"
	"image"
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/reusedev/segmind-go/internal/consts"
	"github.com/reusedev/segmind-go/internal/modules/logs"
	"github.com/reusedev/segmind-go/internal/modules/storage/local"
	"github.com/reusedev/segmind-go/tools"
)

type ResultKind int

const (
	KindImage ResultKind = iota
	KindVideo
	KindStructured
	KindRaw
)

// Result is the decoded outcome of one call. Exactly one of the payload
// fields is populated, selected by Kind. The caller owns it once returned.
type Result struct {
	Kind  ResultKind
	Image image.Image
	Video []byte
	Data  map[string]any
	Raw   []byte

	// RemainingCredits mirrors the x-remaining-credits response header,
	// -1 when the service did not send it.
	RemainingCredits int
}

// Bytes returns the binary payload for video and raw results.
func (r *Result) Bytes() []byte {
	if r.Kind == KindVideo {
		return r.Video
	}
	return r.Raw
}

// Save persists the result to path, creating parent directories. Images are
// re-encoded in the format implied by the extension; video and raw results
// are written verbatim.
func (r *Result) Save(path string) error {
	switch r.Kind {
	case KindImage:
		return tools.SaveImage(r.Image, path)
	case KindVideo, KindRaw:
		return local.SaveBytes(r.Bytes(), path)
	default:
		return &ValidationError{Reason: "structured results cannot be saved to a file"}
	}
}

// classify maps a raw exchange onto a Result, or a classified error.
//
// binary marks the video capabilities, which return raw bytes on success
// regardless of the declared content type. That asymmetry follows the service
// contract: the decision is made by the caller's choice of endpoint, not by
// sniffing.
func classify(raw *RawResponse, binary bool) (*Result, error) {
	if raw.StatusCode < 200 || raw.StatusCode > 299 {
		var errBody struct {
			Error string `json:"error"`
		}
		detail := ""
		if err := jsoniter.Unmarshal(raw.Body, &errBody); err == nil {
			detail = errBody.Error
		}
		msg := apiErrorMessage(raw.StatusCode, detail)
		if raw.StatusCode == http.StatusTooManyRequests {
			return nil, &RateLimitError{APIError{StatusCode: raw.StatusCode, Message: msg}}
		}
		return nil, &APIError{StatusCode: raw.StatusCode, Message: msg}
	}

	credits := remainingCredits(raw.Header)
	if binary {
		return &Result{Kind: KindVideo, Video: raw.Body, RemainingCredits: credits}, nil
	}

	contentType := raw.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "image/") {
		img, err := decodeImageBytes(raw.Body)
		if err != nil {
			logs.Logger.Warn().
				Str("content_type", contentType).
				Int("body_len", len(raw.Body)).
				Msg("image decode failed")
			return nil, &DecodeError{ContentType: contentType, Err: err}
		}
		return &Result{Kind: KindImage, Image: img, RemainingCredits: credits}, nil
	}

	var data map[string]any
	decoder := jsoniter.NewDecoder(bytes.NewReader(raw.Body))
	decoder.UseNumber()
	if err := decoder.Decode(&data); err == nil {
		return &Result{Kind: KindStructured, Data: data, RemainingCredits: credits}, nil
	}
	return &Result{Kind: KindRaw, Raw: raw.Body, RemainingCredits: credits}, nil
}

// remainingCredits is a best-effort read of the quota counter header; absence
// or garbage is not an error.
func remainingCredits(header http.Header) int {
	v := header.Get(consts.HeaderRemainingCredits)
	if v == "" {
		return -1
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return -1
	}
	return n
}
