package graph

import (
	"context"
	"fmt"
	"image"

	"github.com/dshills/imageflow-go/graph/style"
)

// requireImage resolves a required image input port, normalizing the
// connected value into a decodable payload.
func requireImage(in Inputs, portID string) (ImagePayload, error) {
	v, ok := in[portID]
	if !ok || v.IsZero() {
		return ImagePayload{}, fmt.Errorf("%w: %s", ErrMissingInput, portID)
	}
	return NormalizeImage(v)
}

// requireDecoded resolves and decodes a required image input.
func requireDecoded(in Inputs, portID string) (image.Image, error) {
	payload, err := requireImage(in, portID)
	if err != nil {
		return nil, err
	}
	return decodeImage(payload)
}

// imagePatch is the data patch transforms attach so the interactive
// layer can render the result in place.
func imagePatch(p ImagePayload) map[string]any {
	return map[string]any{"base64Image": p.Base64, "mimeType": p.MIMEType}
}

// cropExecutor cuts the largest window of the configured aspect ratio
// out of its input, anchored by direction.
type cropExecutor struct{}

func (cropExecutor) Execute(_ context.Context, n *Node, in Inputs) (ExecResult, error) {
	img, err := requireDecoded(in, portImageInput)
	if err != nil {
		return ExecResult{}, err
	}
	ratio, err := parseAspect(n.StringData("aspectRatio", "1:1"))
	if err != nil {
		return ExecResult{}, err
	}
	payload, err := encodePNG(cropToAspect(img, ratio, n.StringData("direction", "center")))
	if err != nil {
		return ExecResult{}, err
	}
	return ExecResult{
		Outputs: Outputs{portImageOutput: payload.Value()},
		Patch:   imagePatch(payload),
	}, nil
}

// padExecutor places its input on a larger canvas of the configured
// aspect ratio, filled with the configured color.
type padExecutor struct{}

func (padExecutor) Execute(_ context.Context, n *Node, in Inputs) (ExecResult, error) {
	img, err := requireDecoded(in, portImageInput)
	if err != nil {
		return ExecResult{}, err
	}
	ratio, err := parseAspect(n.StringData("aspectRatio", "1:1"))
	if err != nil {
		return ExecResult{}, err
	}
	fill, err := parseHexColor(n.StringData("color", "#000000"))
	if err != nil {
		return ExecResult{}, err
	}
	payload, err := encodePNG(padToAspect(img, ratio, n.StringData("direction", "center"), fill))
	if err != nil {
		return ExecResult{}, err
	}
	return ExecResult{
		Outputs: Outputs{portImageOutput: payload.Value()},
		Patch:   imagePatch(payload),
	}, nil
}

// stitchExecutor joins its two inputs edge to edge, horizontally or
// vertically per the stitchMode parameter.
type stitchExecutor struct{}

func (stitchExecutor) Execute(_ context.Context, n *Node, in Inputs) (ExecResult, error) {
	first, err := requireDecoded(in, portImageInput1)
	if err != nil {
		return ExecResult{}, err
	}
	second, err := requireDecoded(in, portImageInput2)
	if err != nil {
		return ExecResult{}, err
	}
	payload, err := encodePNG(stitchImages(first, second, n.StringData("stitchMode", "horizontal")))
	if err != nil {
		return ExecResult{}, err
	}
	return ExecResult{
		Outputs: Outputs{portImageOutput: payload.Value()},
		Patch:   imagePatch(payload),
	}, nil
}

// stylerExecutor composes the node's user prompt with the selected
// style template. With no library, or the style set to none, the user
// prompt passes through unchanged.
type stylerExecutor struct {
	styles *style.Library
}

func (e stylerExecutor) Execute(_ context.Context, n *Node, _ Inputs) (ExecResult, error) {
	prompt := n.StringData("userPrompt", "")
	if e.styles == nil {
		return ExecResult{Outputs: Outputs{portStylerOutput: Value{Text: prompt}}}, nil
	}
	styled := e.styles.Apply(
		n.StringData("styleFile", "Basic"),
		n.StringData("styleName", style.None),
		prompt,
	)
	return ExecResult{Outputs: Outputs{portStylerOutput: Value{Text: styled}}}, nil
}
