package segmind

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/reusedev/segmind-go/internal/consts"
)

type capturedRequest struct {
	path string
	body map[string]any
}

// capturingClient returns a client pointed at a server that records the last
// request and answers with JSON.
func capturingClient(t *testing.T, captured *capturedRequest) *Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = jsoniter.Unmarshal(body, &captured.body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)
	c, err := New("k", WithBaseURL(server.URL))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestFacadeEndpoints(t *testing.T) {
	var captured capturedRequest
	c := capturingClient(t, &captured)
	ctx := context.Background()
	img := ImageInput{URL: "https://example.com/in.png"}

	cases := []struct {
		name string
		call func() error
		path string
	}{
		{"sdxl", func() error { _, err := c.SDXL(ctx, SDXLRequest{Prompt: "p"}); return err }, "/sdxl1.0-txt2img"},
		{"outpainting", func() error { _, err := c.SDOutpainting(ctx, SDOutpaintingRequest{Image: img}); return err }, "/sd-outpainting"},
		{"qr", func() error { _, err := c.QRGenerator(ctx, QRGeneratorRequest{Prompt: "p", QRText: "t"}); return err }, "/qr-code-generator"},
		{"word2img", func() error { _, err := c.Word2Img(ctx, Word2ImgRequest{Image: img}); return err }, "/word2img"},
		{"background removal", func() error { _, err := c.BackgroundRemoval(ctx, BackgroundRemovalRequest{Image: img}); return err }, "/background-removal"},
		{"codeformer", func() error { _, err := c.Codeformer(ctx, CodeformerRequest{Image: img}); return err }, "/codeformer"},
		{"sam", func() error { _, err := c.SAM(ctx, SAMRequest{Image: img}); return err }, "/sam"},
		{"face swap", func() error { _, err := c.FaceSwap(ctx, FaceSwapRequest{Image: img}); return err }, "/face-swap"},
		{"controlnet", func() error { _, err := c.ControlNet(ctx, ControlNetRequest{Prompt: "p", Image: img}); return err }, "/controlnet"},
		{"flux kontext pro", func() error { _, err := c.FluxKontextPro(ctx, FluxKontextProRequest{Prompt: "p"}); return err }, "/flux-kontext-pro"},
		{"llava", func() error { _, err := c.Llava13B(ctx, []ChatMessage{{Role: "user", Content: "hi"}}); return err }, "/llava-13b"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.call(); err != nil {
				t.Fatal(err)
			}
			if captured.path != tc.path {
				t.Fatalf("path = %q, want %q", captured.path, tc.path)
			}
		})
	}
}

func TestFacadePayloads(t *testing.T) {
	var captured capturedRequest
	c := capturingClient(t, &captured)
	ctx := context.Background()

	t.Run("image lands under image field", func(t *testing.T) {
		_, err := c.BackgroundRemoval(ctx, BackgroundRemovalRequest{Image: ImageInput{URL: "https://example.com/in.png"}})
		if err != nil {
			t.Fatal(err)
		}
		if captured.body["image"] != "https://example.com/in.png" {
			t.Fatalf("body = %v", captured.body)
		}
	})

	t.Run("face swap mask resolves independently", func(t *testing.T) {
		_, err := c.FaceSwap(ctx, FaceSwapRequest{
			Image: ImageInput{URL: "https://example.com/face.png"},
			Mask:  ImageInput{URL: "https://example.com/mask.png"},
		})
		if err != nil {
			t.Fatal(err)
		}
		if captured.body["image"] != "https://example.com/face.png" {
			t.Fatalf("image = %v", captured.body["image"])
		}
		if captured.body["mask"] != "https://example.com/mask.png" {
			t.Fatalf("mask = %v", captured.body["mask"])
		}
	})

	t.Run("face swap invalid mask fails before dispatch", func(t *testing.T) {
		captured.path = ""
		_, err := c.FaceSwap(ctx, FaceSwapRequest{
			Image: ImageInput{URL: "https://example.com/face.png"},
			Mask:  ImageInput{URL: "u", Data: "d"},
		})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if captured.path != "" {
			t.Fatal("request reached the network despite invalid input")
		}
	})

	t.Run("controlnet defaults option to canny", func(t *testing.T) {
		_, err := c.ControlNet(ctx, ControlNetRequest{Prompt: "p", Image: ImageInput{URL: "https://example.com/in.png"}})
		if err != nil {
			t.Fatal(err)
		}
		if captured.body["option"] != "canny" {
			t.Fatalf("option = %v", captured.body["option"])
		}
	})

	t.Run("flux kontext pro defaults", func(t *testing.T) {
		_, err := c.FluxKontextPro(ctx, FluxKontextProRequest{Prompt: "p"})
		if err != nil {
			t.Fatal(err)
		}
		if captured.body["aspect_ratio"] != "match_input_image" {
			t.Fatalf("aspect_ratio = %v", captured.body["aspect_ratio"])
		}
		seed, _ := captured.body["seed"].(float64)
		if seed != 1 {
			t.Fatalf("seed = %v", captured.body["seed"])
		}
	})

	t.Run("explicit fields win over extras", func(t *testing.T) {
		_, err := c.SDXL(ctx, SDXLRequest{
			Prompt: "explicit",
			Extra:  Params{"prompt": "extra", "cfg_scale": 7},
		})
		if err != nil {
			t.Fatal(err)
		}
		if captured.body["prompt"] != "explicit" {
			t.Fatalf("prompt = %v", captured.body["prompt"])
		}
		if _, present := captured.body["cfg_scale"]; !present {
			t.Fatalf("extra field dropped: %v", captured.body)
		}
	})

	t.Run("unknown capability", func(t *testing.T) {
		_, err := c.TextToImage(ctx, consts.Capability("nope"), Params{})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}

func TestVeo3ReturnsRawBytes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Declared content type is deliberately wrong: video endpoints are
		// classified by endpoint choice, never by sniffing.
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("mp4 bytes"))
	}))
	defer server.Close()

	c, err := New("k", WithBaseURL(server.URL))
	if err != nil {
		t.Fatal(err)
	}
	result, err := c.Veo3(context.Background(), Veo3Request{Prompt: "a dog surfing"})
	if err != nil {
		t.Fatal(err)
	}
	if result.Kind != KindVideo {
		t.Fatalf("kind = %d, want video", result.Kind)
	}
	if string(result.Bytes()) != "mp4 bytes" {
		t.Fatalf("bytes = %q", result.Bytes())
	}
}
