package segmind

import (
	"context"

	"github.com/reusedev/segmind-go/internal/consts"
)

// capability pins a model name to its fixed endpoint path. binary marks the
// video models whose successful responses are returned as raw bytes without
// content negotiation.
type capability struct {
	endpoint string
	binary   bool
}

var capabilities = map[consts.Capability]capability{
	consts.SDXL:              {endpoint: "sdxl1.0-txt2img"},
	consts.SDOutpainting:     {endpoint: "sd-outpainting"},
	consts.QRGenerator:       {endpoint: "qr-code-generator"},
	consts.Word2Img:          {endpoint: "word2img"},
	consts.BackgroundRemoval: {endpoint: "background-removal"},
	consts.Codeformer:        {endpoint: "codeformer"},
	consts.SAM:               {endpoint: "sam"},
	consts.FaceSwap:          {endpoint: "face-swap"},
	consts.ControlNet:        {endpoint: "controlnet"},
	consts.Veo3:              {endpoint: "veo-3", binary: true},
	consts.FluxKontextPro:    {endpoint: "flux-kontext-pro"},
	consts.Llava13B:          {endpoint: "llava-13b"},
}

func lookupCapability(name consts.Capability) (capability, error) {
	c, ok := capabilities[name]
	if !ok {
		return capability{}, &ValidationError{Reason: "unknown capability: " + name.String()}
	}
	return c, nil
}

// Call dispatches a prepared payload to any registered capability.
func (c *Client) Call(ctx context.Context, name consts.Capability, params Params) (*Result, error) {
	model, err := lookupCapability(name)
	if err != nil {
		return nil, err
	}
	return c.invoke(ctx, model.endpoint, params, model.binary)
}

// TextToImage is the entry point for prompt-only image models.
func (c *Client) TextToImage(ctx context.Context, name consts.Capability, params Params) (*Result, error) {
	return c.Call(ctx, name, params)
}

// ImageToImage resolves the image input and places it under the payload's
// image field before dispatch.
func (c *Client) ImageToImage(ctx context.Context, name consts.Capability, input ImageInput, params Params) (*Result, error) {
	model, err := lookupCapability(name)
	if err != nil {
		return nil, err
	}
	resolved, err := input.resolve()
	if err != nil {
		return nil, err
	}
	merged := mergeParams(Params{"image": resolved}, params)
	return c.invoke(ctx, model.endpoint, merged, model.binary)
}

// SDXLRequest holds the Stable Diffusion XL 1.0 parameters. Zero-valued
// optional fields are omitted from the payload; Seed is a pointer because 0
// is a valid seed. Extra entries lose to same-named explicit fields.
type SDXLRequest struct {
	Prompt         string
	NegativePrompt string
	Steps          int
	Seed           *int64
	AspectRatio    string
	Base64         bool
	Extra          Params
}

func (c *Client) SDXL(ctx context.Context, req SDXLRequest) (*Result, error) {
	explicit := Params{
		"prompt": req.Prompt,
		"base64": req.Base64,
	}
	if req.NegativePrompt != "" {
		explicit["negative_prompt"] = req.NegativePrompt
	}
	if req.Steps != 0 {
		explicit["steps"] = req.Steps
	}
	if req.Seed != nil {
		explicit["seed"] = *req.Seed
	}
	if req.AspectRatio != "" {
		explicit["aspect_ratio"] = req.AspectRatio
	}
	return c.TextToImage(ctx, consts.SDXL, mergeParams(explicit, req.Extra))
}

type SDOutpaintingRequest struct {
	Image  ImageInput
	Prompt string
	Extra  Params
}

func (c *Client) SDOutpainting(ctx context.Context, req SDOutpaintingRequest) (*Result, error) {
	explicit := Params{}
	if req.Prompt != "" {
		explicit["prompt"] = req.Prompt
	}
	return c.ImageToImage(ctx, consts.SDOutpainting, req.Image, mergeParams(explicit, req.Extra))
}

type QRGeneratorRequest struct {
	Prompt string
	QRText string
	Extra  Params
}

func (c *Client) QRGenerator(ctx context.Context, req QRGeneratorRequest) (*Result, error) {
	explicit := Params{
		"prompt":  req.Prompt,
		"qr_text": req.QRText,
	}
	return c.TextToImage(ctx, consts.QRGenerator, mergeParams(explicit, req.Extra))
}

type Word2ImgRequest struct {
	Image  ImageInput
	Prompt string
	Extra  Params
}

func (c *Client) Word2Img(ctx context.Context, req Word2ImgRequest) (*Result, error) {
	explicit := Params{}
	if req.Prompt != "" {
		explicit["prompt"] = req.Prompt
	}
	return c.ImageToImage(ctx, consts.Word2Img, req.Image, mergeParams(explicit, req.Extra))
}

type BackgroundRemovalRequest struct {
	Image ImageInput
	Extra Params
}

func (c *Client) BackgroundRemoval(ctx context.Context, req BackgroundRemovalRequest) (*Result, error) {
	return c.ImageToImage(ctx, consts.BackgroundRemoval, req.Image, req.Extra)
}

type CodeformerRequest struct {
	Image ImageInput
	Extra Params
}

func (c *Client) Codeformer(ctx context.Context, req CodeformerRequest) (*Result, error) {
	return c.ImageToImage(ctx, consts.Codeformer, req.Image, req.Extra)
}

type SAMRequest struct {
	Image ImageInput
	Extra Params
}

func (c *Client) SAM(ctx context.Context, req SAMRequest) (*Result, error) {
	return c.ImageToImage(ctx, consts.SAM, req.Image, req.Extra)
}

// FaceSwapRequest carries two independent image inputs: the target image and
// the face mask. The mask gets the same one-of-three resolution as the image
// and lands under the payload's mask field.
type FaceSwapRequest struct {
	Image ImageInput
	Mask  ImageInput
	Extra Params
}

func (c *Client) FaceSwap(ctx context.Context, req FaceSwapRequest) (*Result, error) {
	explicit := Params{}
	if !req.Mask.isZero() {
		mask, err := req.Mask.resolve()
		if err != nil {
			return nil, err
		}
		explicit["mask"] = mask
	}
	return c.ImageToImage(ctx, consts.FaceSwap, req.Image, mergeParams(explicit, req.Extra))
}

type ControlNetRequest struct {
	Prompt string
	Image  ImageInput
	// Option selects the control map: canny, depth, openpose, scribble,
	// softedge. Empty means canny.
	Option string
	Extra  Params
}

func (c *Client) ControlNet(ctx context.Context, req ControlNetRequest) (*Result, error) {
	option := req.Option
	if option == "" {
		option = "canny"
	}
	explicit := Params{
		"prompt": req.Prompt,
		"option": option,
	}
	return c.ImageToImage(ctx, consts.ControlNet, req.Image, mergeParams(explicit, req.Extra))
}

// Veo3Request drives the text-to-video model. The result is always raw video
// bytes (Result.Video), never an image or structured data.
type Veo3Request struct {
	Prompt string
	Seed   *int64
	Extra  Params
}

func (c *Client) Veo3(ctx context.Context, req Veo3Request) (*Result, error) {
	explicit := Params{
		"prompt": req.Prompt,
	}
	if req.Seed != nil {
		explicit["seed"] = *req.Seed
	}
	return c.Call(ctx, consts.Veo3, mergeParams(explicit, req.Extra))
}

type FluxKontextProRequest struct {
	Prompt     string
	InputImage string
	Seed       *int64
	// AspectRatio defaults to match_input_image.
	AspectRatio string
	Extra       Params
}

func (c *Client) FluxKontextPro(ctx context.Context, req FluxKontextProRequest) (*Result, error) {
	seed := int64(1)
	if req.Seed != nil {
		seed = *req.Seed
	}
	aspectRatio := req.AspectRatio
	if aspectRatio == "" {
		aspectRatio = "match_input_image"
	}
	explicit := Params{
		"prompt":       req.Prompt,
		"seed":         seed,
		"aspect_ratio": aspectRatio,
	}
	if req.InputImage != "" {
		explicit["input_image"] = req.InputImage
	}
	return c.Call(ctx, consts.FluxKontextPro, mergeParams(explicit, req.Extra))
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Llava13B runs the vision-language chat model over a message history.
func (c *Client) Llava13B(ctx context.Context, messages []ChatMessage) (*Result, error) {
	return c.Call(ctx, consts.Llava13B, Params{"messages": messages})
}
