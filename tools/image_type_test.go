package tools

import "testing"

func TestDetectImageType(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want ImageType
	}{
		{"png", []byte("\x89PNG\r\n\x1a\nrest"), ImageTypePNG},
		{"jpeg", []byte("\xff\xd8\xff\xe0rest"), ImageTypeJPEG},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), ImageTypeWEBP},
		{"gif", []byte("GIF89a...."), ImageTypeGIF},
		{"garbage", []byte("hello"), ImageTypeUnknown},
		{"empty", nil, ImageTypeUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectImageType(tc.data); got != tc.want {
				t.Fatalf("DetectImageType = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestFullURL(t *testing.T) {
	cases := []struct {
		base string
		path string
		want string
	}{
		{"https://api.segmind.com/v1", "sdxl1.0-txt2img", "https://api.segmind.com/v1/sdxl1.0-txt2img"},
		{"https://api.segmind.com/v1/", "/veo-3", "https://api.segmind.com/v1/veo-3"},
		{"https://api.segmind.com/v1", "", "https://api.segmind.com/v1"},
		{"", "sdxl1.0-txt2img", ""},
	}
	for _, tc := range cases {
		if got := FullURL(tc.base, tc.path); got != tc.want {
			t.Fatalf("FullURL(%q, %q) = %q, want %q", tc.base, tc.path, got, tc.want)
		}
	}
}
