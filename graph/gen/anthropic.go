package gen

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicService implements the describe half of Service using Claude
// vision messages. Claude does not synthesize images, so every
// generation operation returns ErrUnsupported; the provider exists for
// deployments that route description to Claude while another provider
// handles image output.
type AnthropicService struct {
	model  string
	client anthropic.Client
}

// NewAnthropicService creates a Claude-backed description service.
// model may be empty for the current Sonnet default.
func NewAnthropicService(apiKey, model string) (*AnthropicService, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = "claude-sonnet-4-5"
	}
	return &AnthropicService{
		model:  model,
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
	}, nil
}

// DescribeImage implements Service.
func (s *AnthropicService) DescribeImage(ctx context.Context, img Image, mode DescribeMode) (string, error) {
	message, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewImageBlockBase64(img.MIMEType, img.Base64),
				anthropic.NewTextBlock(DescribePrompt(mode)),
			),
		},
	})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}

// EditImage implements Service.
func (s *AnthropicService) EditImage(context.Context, Image, string) (Result, error) {
	return Result{}, fmt.Errorf("%w: anthropic image editing", ErrUnsupported)
}

// GenerateImage implements Service.
func (s *AnthropicService) GenerateImage(context.Context, string) (Result, error) {
	return Result{}, fmt.Errorf("%w: anthropic image generation", ErrUnsupported)
}

// MixImages implements Service.
func (s *AnthropicService) MixImages(context.Context, Image, Image, string) (Result, error) {
	return Result{}, fmt.Errorf("%w: anthropic image mixing", ErrUnsupported)
}

// GenerateWithStyle implements Service.
func (s *AnthropicService) GenerateWithStyle(context.Context, Image, string) (Result, error) {
	return Result{}, fmt.Errorf("%w: anthropic style reference", ErrUnsupported)
}

// GenerateWithReference implements Service.
func (s *AnthropicService) GenerateWithReference(context.Context, Image, string) (Result, error) {
	return Result{}, fmt.Errorf("%w: anthropic image reference", ErrUnsupported)
}
