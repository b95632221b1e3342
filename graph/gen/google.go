package gen

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GoogleService implements Service on top of the Gemini API. Image
// operations send inline-data parts to the configured image model and
// scan the response for the produced image plus accompanying text;
// description goes to the text model.
//
// API errors are returned unwrapped so callers surface the service's
// message verbatim.
type GoogleService struct {
	cfg    Config
	client googleClient
}

// googleClient is the narrow slice of the Gemini SDK the service
// needs, split out so tests can substitute a scripted transport.
type googleClient interface {
	generate(ctx context.Context, model string, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// NewGoogleService creates a Gemini-backed generation service.
func NewGoogleService(apiKey string, cfg Config) (*GoogleService, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return &GoogleService{
		cfg:    cfg.withDefaults(),
		client: &googleSDKClient{apiKey: apiKey},
	}, nil
}

// EditImage implements Service.
func (s *GoogleService) EditImage(ctx context.Context, img Image, prompt string) (Result, error) {
	part, err := inlinePart(img)
	if err != nil {
		return Result{}, err
	}
	return s.imageCall(ctx, part, genai.Text(prompt))
}

// GenerateImage implements Service.
func (s *GoogleService) GenerateImage(ctx context.Context, prompt string) (Result, error) {
	return s.imageCall(ctx,
		genai.Text("Generate a new image based on the following prompt."),
		genai.Text(prompt))
}

// MixImages implements Service.
func (s *GoogleService) MixImages(ctx context.Context, source, reference Image, prompt string) (Result, error) {
	srcPart, err := inlinePart(source)
	if err != nil {
		return Result{}, err
	}
	refPart, err := inlinePart(reference)
	if err != nil {
		return Result{}, err
	}
	return s.imageCall(ctx,
		genai.Text("The first image is the source. The second image is for reference."),
		srcPart, refPart, genai.Text(prompt))
}

// GenerateWithStyle implements Service.
func (s *GoogleService) GenerateWithStyle(ctx context.Context, reference Image, prompt string) (Result, error) {
	refPart, err := inlinePart(reference)
	if err != nil {
		return Result{}, err
	}
	return s.imageCall(ctx,
		genai.Text("Use the style from the provided image to generate a new image based on the following prompt."),
		refPart, genai.Text(prompt))
}

// GenerateWithReference implements Service.
func (s *GoogleService) GenerateWithReference(ctx context.Context, reference Image, prompt string) (Result, error) {
	refPart, err := inlinePart(reference)
	if err != nil {
		return Result{}, err
	}
	return s.imageCall(ctx,
		genai.Text("Use the provided image to generate a new image based on the following prompt."),
		refPart, genai.Text(prompt))
}

// DescribeImage implements Service.
func (s *GoogleService) DescribeImage(ctx context.Context, img Image, mode DescribeMode) (string, error) {
	part, err := inlinePart(img)
	if err != nil {
		return "", err
	}
	resp, err := s.client.generate(ctx, s.cfg.TextModel, part, genai.Text(DescribePrompt(mode)))
	if err != nil {
		return "", err
	}
	text, _, err := scanParts(resp)
	if err != nil {
		return "", err
	}
	return text, nil
}

// imageCall runs one generation request against the image model and
// requires an image part in the response.
func (s *GoogleService) imageCall(ctx context.Context, parts ...genai.Part) (Result, error) {
	resp, err := s.client.generate(ctx, s.cfg.ImageModel, parts...)
	if err != nil {
		return Result{}, err
	}
	text, imageURL, err := scanParts(resp)
	if err != nil {
		return Result{}, err
	}
	if imageURL == "" {
		return Result{}, ErrNoImage
	}
	if text == "" {
		text = "No text response from model."
	}
	return Result{ImageURL: imageURL, Text: text}, nil
}

// inlinePart converts an Image argument into a Gemini inline-data part.
func inlinePart(img Image) (genai.Part, error) {
	data, err := base64.StdEncoding.DecodeString(img.Base64)
	if err != nil {
		return nil, fmt.Errorf("decode image argument: %w", err)
	}
	return genai.Blob{MIMEType: img.MIMEType, Data: data}, nil
}

// scanParts pulls text and the first inline image out of a response.
func scanParts(resp *genai.GenerateContentResponse) (text, imageURL string, err error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", "", ErrEmptyResponse
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			if text != "" {
				text += "\n"
			}
			text += string(p)
		case genai.Blob:
			if imageURL == "" {
				imageURL = "data:" + p.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
			}
		}
	}
	if text == "" && imageURL == "" {
		return "", "", ErrEmptyResponse
	}
	return text, imageURL, nil
}

// googleSDKClient is the real transport. A client is created per call
// and closed with it, the same lifecycle the SDK documents for
// short-lived use.
type googleSDKClient struct {
	apiKey string
}

func (c *googleSDKClient) generate(ctx context.Context, model string, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	defer func() { _ = client.Close() }()

	return client.GenerativeModel(model).GenerateContent(ctx, parts...)
}
