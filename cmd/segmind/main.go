package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/reusedev/segmind-go/config"
	"github.com/reusedev/segmind-go/internal/consts"
	"github.com/reusedev/segmind-go/internal/modules/logs"
	"github.com/reusedev/segmind-go/internal/modules/storage/ali"
	"github.com/reusedev/segmind-go/segmind"
	"github.com/reusedev/segmind-go/tools"
)

var (
	configPath string
	model      string
	prompt     string
	imageRef   string
	maskRef    string
	outPath    string
	upload     bool
	inline     bool
)

func init() {
	flag.StringVar(&configPath, "config", "config.yml", "config file path")
	flag.StringVar(&model, "model", "sdxl", "model to invoke")
	flag.StringVar(&prompt, "prompt", "", "text prompt")
	flag.StringVar(&imageRef, "image", "", "input image: URL or local file path")
	flag.StringVar(&maskRef, "mask", "", "face-swap mask: URL or local file path")
	flag.StringVar(&outPath, "out", "output.png", "output file path")
	flag.BoolVar(&upload, "upload", false, "upload the result to configured ali_oss storage")
	flag.BoolVar(&inline, "inline", false, "download URL inputs and send them inline instead of by reference")
}

func main() {
	flag.Parse()
	config.Init(configPath)
	logs.InitLogger(logs.Options{
		Level:      config.GConfig.LogLevel,
		File:       config.GConfig.LogFile,
		MaxSize:    config.GConfig.LogMaxSize,
		MaxBackups: config.GConfig.LogMaxBackups,
		MaxAge:     config.GConfig.LogMaxAge,
	})
	if config.GConfig.StorageEnabled && config.GConfig.StorageSupplier == "ali_oss" {
		ali.InitOSS(config.GConfig.AliOss)
	}

	client, err := newClient()
	if err != nil {
		logs.Logger.Fatal().Err(err).Msg("create client")
	}

	ctx := context.Background()
	result, err := run(ctx, client)
	if err != nil {
		logs.Logger.Fatal().Err(err).Str("model", model).Msg("model call")
	}
	if result.RemainingCredits >= 0 {
		logs.Logger.Info().Int("remaining_credits", result.RemainingCredits).Msg("quota")
	}
	if err := persist(result); err != nil {
		logs.Logger.Fatal().Err(err).Msg("persist result")
	}
}

func newClient() (*segmind.Client, error) {
	opts := []segmind.Option{}
	if config.GConfig.BaseURL != "" {
		opts = append(opts, segmind.WithBaseURL(config.GConfig.BaseURL))
	}
	if d := config.GConfig.Timeout(); d > 0 {
		opts = append(opts, segmind.WithTimeout(d))
	}
	if config.GConfig.Retry.MaxRetries > 0 {
		delay := segmind.DefaultInitialDelay
		if config.GConfig.Retry.InitialDelay != "" {
			// validated by config.Verify
			delay = tools.PanicOnError(time.ParseDuration(config.GConfig.Retry.InitialDelay))
		}
		opts = append(opts, segmind.WithRetry(config.GConfig.Retry.MaxRetries, delay))
	}
	return segmind.New(config.GConfig.APIKey, opts...)
}

func run(ctx context.Context, client *segmind.Client) (*segmind.Result, error) {
	switch consts.Capability(model) {
	case consts.SDXL:
		return client.SDXL(ctx, segmind.SDXLRequest{Prompt: prompt})
	case consts.SDOutpainting:
		return client.SDOutpainting(ctx, segmind.SDOutpaintingRequest{Image: imageInput(imageRef), Prompt: prompt})
	case consts.Word2Img:
		return client.Word2Img(ctx, segmind.Word2ImgRequest{Image: imageInput(imageRef), Prompt: prompt})
	case consts.BackgroundRemoval:
		return client.BackgroundRemoval(ctx, segmind.BackgroundRemovalRequest{Image: imageInput(imageRef)})
	case consts.Codeformer:
		return client.Codeformer(ctx, segmind.CodeformerRequest{Image: imageInput(imageRef)})
	case consts.SAM:
		return client.SAM(ctx, segmind.SAMRequest{Image: imageInput(imageRef)})
	case consts.FaceSwap:
		return client.FaceSwap(ctx, segmind.FaceSwapRequest{Image: imageInput(imageRef), Mask: imageInput(maskRef)})
	case consts.ControlNet:
		return client.ControlNet(ctx, segmind.ControlNetRequest{Prompt: prompt, Image: imageInput(imageRef)})
	case consts.Veo3:
		return client.Veo3(ctx, segmind.Veo3Request{Prompt: prompt})
	case consts.FluxKontextPro:
		return client.FluxKontextPro(ctx, segmind.FluxKontextProRequest{Prompt: prompt, InputImage: imageRef})
	case consts.Llava13B:
		return client.Llava13B(ctx, []segmind.ChatMessage{{Role: "user", Content: prompt}})
	default:
		return nil, fmt.Errorf("unknown model: %s", model)
	}
}

func imageInput(ref string) segmind.ImageInput {
	if ref == "" {
		return segmind.ImageInput{}
	}
	if _, err := os.Stat(ref); err == nil {
		return segmind.ImageInput{Path: ref}
	}
	if inline {
		b, _, err := tools.GetOnlineImage(ref)
		if err != nil {
			logs.Logger.Fatal().Err(err).Str("url", ref).Msg("download input image")
		}
		data, err := segmind.EncodeInline(b)
		if err != nil {
			logs.Logger.Fatal().Err(err).Str("url", ref).Msg("encode input image")
		}
		return segmind.ImageInput{Data: data}
	}
	return segmind.ImageInput{URL: ref}
}

func persist(result *segmind.Result) error {
	if result.Kind == segmind.KindStructured {
		fmt.Printf("%v\n", result.Data)
		return nil
	}
	if upload && ali.OssClient != nil {
		key, err := uploadResult(result)
		if err != nil {
			return err
		}
		expires, _ := time.ParseDuration(config.GConfig.URLExpires)
		if expires == 0 {
			expires = time.Hour
		}
		url, err := ali.OssClient.URL(key, expires)
		if err != nil {
			return err
		}
		logs.Logger.Info().Str("key", key).Str("url", url).Msg("uploaded")
		return nil
	}
	if err := result.Save(outPath); err != nil {
		return err
	}
	logs.Logger.Info().Str("path", outPath).Msg("saved")
	return nil
}

func uploadResult(result *segmind.Result) (string, error) {
	if result.Kind == segmind.KindVideo {
		return ali.OssClient.UploadVideo(result.Bytes())
	}
	if result.Kind == segmind.KindImage {
		data, err := segmind.EncodePNG(result.Image)
		if err != nil {
			return "", err
		}
		return ali.OssClient.UploadImage(data)
	}
	return ali.OssClient.UploadFileWithName(filepath.Base(outPath), bytes.NewReader(result.Bytes()))
}
