package consts

const (
	SegmindBaseURL = "https://api.segmind.com/v1"

	APIKeyEnv = "SEGMIND_API_KEY"

	HeaderAPIKey           = "x-api-key"
	HeaderRemainingCredits = "x-remaining-credits"
)

type Capability string

const (
	SDXL              Capability = "sdxl"
	SDOutpainting     Capability = "sd-outpainting"
	QRGenerator       Capability = "qr-generator"
	Word2Img          Capability = "word2img"
	BackgroundRemoval Capability = "background-removal"
	Codeformer        Capability = "codeformer"
	SAM               Capability = "sam"
	FaceSwap          Capability = "face-swap"
	ControlNet        Capability = "controlnet"
	Veo3              Capability = "veo-3"
	FluxKontextPro    Capability = "flux-kontext-pro"
	Llava13B          Capability = "llava-13b"
)

func (c Capability) String() string {
	return string(c)
}
