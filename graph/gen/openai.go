package gen

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// OpenAIService implements the subset of Service the OpenAI API can
// express: prompt-only generation through the Images API and image
// description through chat vision. The edit/mix/style/reference
// operations need multi-image conditioning the Images API does not
// offer and return ErrUnsupported.
type OpenAIService struct {
	cfg    Config
	client *openai.Client
}

// NewOpenAIService creates an OpenAI-backed generation service. Leave
// Config fields empty for gpt-4o description and gpt-image-1
// generation.
func NewOpenAIService(apiKey string, cfg Config) (*OpenAIService, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.TextModel == "" {
		cfg.TextModel = "gpt-4o"
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = "gpt-image-1"
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIService{cfg: cfg, client: &client}, nil
}

// GenerateImage implements Service.
func (s *OpenAIService) GenerateImage(ctx context.Context, prompt string) (Result, error) {
	resp, err := s.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         prompt,
		Model:          openai.ImageModel(s.cfg.ImageModel),
		ResponseFormat: openai.ImageGenerateParamsResponseFormatB64JSON,
	})
	if err != nil {
		return Result{}, err
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return Result{}, ErrNoImage
	}
	return Result{
		ImageURL: "data:image/png;base64," + resp.Data[0].B64JSON,
		Text:     resp.Data[0].RevisedPrompt,
	}, nil
}

// DescribeImage implements Service.
func (s *OpenAIService) DescribeImage(ctx context.Context, img Image, mode DescribeMode) (string, error) {
	dataURL := "data:" + img.MIMEType + ";base64," + img.Base64
	completion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(s.cfg.TextModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(DescribePrompt(mode)),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: dataURL}),
			}),
		},
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return completion.Choices[0].Message.Content, nil
}

// EditImage implements Service.
func (s *OpenAIService) EditImage(context.Context, Image, string) (Result, error) {
	return Result{}, fmt.Errorf("%w: openai image editing", ErrUnsupported)
}

// MixImages implements Service.
func (s *OpenAIService) MixImages(context.Context, Image, Image, string) (Result, error) {
	return Result{}, fmt.Errorf("%w: openai image mixing", ErrUnsupported)
}

// GenerateWithStyle implements Service.
func (s *OpenAIService) GenerateWithStyle(context.Context, Image, string) (Result, error) {
	return Result{}, fmt.Errorf("%w: openai style reference", ErrUnsupported)
}

// GenerateWithReference implements Service.
func (s *OpenAIService) GenerateWithReference(context.Context, Image, string) (Result, error) {
	return Result{}, fmt.Errorf("%w: openai image reference", ErrUnsupported)
}
