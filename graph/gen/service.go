// Package gen wraps the external generation capability consumed by the
// workflow engine: image generation, editing, mixing, and description.
// The engine depends only on the Service interface; the google, openai,
// and anthropic files provide real providers, and MockService supports
// testing without network access.
package gen

import "context"

// Default models used when a Config field is left empty.
const (
	DefaultTextModel  = "gemini-3-flash-preview"
	DefaultImageModel = "gemini-2.5-flash-image"
)

// Config selects which models a provider targets.
type Config struct {
	// TextModel handles description requests.
	TextModel string

	// ImageModel handles generation and editing requests.
	ImageModel string
}

func (c Config) withDefaults() Config {
	if c.TextModel == "" {
		c.TextModel = DefaultTextModel
	}
	if c.ImageModel == "" {
		c.ImageModel = DefaultImageModel
	}
	return c
}

// Image is an inline image argument: raw base64 plus MIME type.
type Image struct {
	Base64   string
	MIMEType string
}

// Result is what generation operations return: the produced image as a
// data URL plus whatever text the model sent alongside it.
type Result struct {
	ImageURL string
	Text     string
}

// DescribeMode controls how verbose an image description is.
type DescribeMode string

const (
	DescribeShort    DescribeMode = "short"
	DescribeNormal   DescribeMode = "normal"
	DescribeDetailed DescribeMode = "detailed"
	DescribeAsPrompt DescribeMode = "as_prompt"
)

// DescribePrompt returns the instruction text for a describe mode.
// Unknown modes fall back to normal.
func DescribePrompt(mode DescribeMode) string {
	switch mode {
	case DescribeShort:
		return "Describe this image concisely in one sentence."
	case DescribeDetailed:
		return "Provide a highly detailed, exhaustive description of this image, covering every visual aspect."
	case DescribeAsPrompt:
		return "Analyze this image and generate a detailed, high-quality image generation prompt that could be used to create a similar image."
	default:
		return "Describe this image in detail."
	}
}

// Service is the generation capability the engine invokes. Every call
// may fail with a provider error (rate limit, permission denied,
// blocked content, empty response); the engine surfaces the message
// verbatim as the failing node's error. Calls block until the provider
// responds or ctx is cancelled.
type Service interface {
	// EditImage modifies an image according to the prompt.
	EditImage(ctx context.Context, img Image, prompt string) (Result, error)

	// GenerateImage creates an image from a prompt alone.
	GenerateImage(ctx context.Context, prompt string) (Result, error)

	// MixImages combines a source image with a reference image.
	MixImages(ctx context.Context, source, reference Image, prompt string) (Result, error)

	// GenerateWithStyle creates an image in the reference's style.
	GenerateWithStyle(ctx context.Context, reference Image, prompt string) (Result, error)

	// GenerateWithReference creates an image guided by the reference.
	GenerateWithReference(ctx context.Context, reference Image, prompt string) (Result, error)

	// DescribeImage returns a textual description of the image.
	DescribeImage(ctx context.Context, img Image, mode DescribeMode) (string, error)
}
