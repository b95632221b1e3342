package graph

import (
	"context"
	"fmt"
	"image"
)

// Source executors derive their output purely from node data; they have
// no graph inputs and never perform I/O.

// imageLoaderExecutor emits the image the user loaded into the node.
type imageLoaderExecutor struct{}

func (imageLoaderExecutor) Execute(_ context.Context, n *Node, _ Inputs) (ExecResult, error) {
	b64 := n.StringData("base64Image", "")
	mime := n.StringData("mimeType", "")
	if b64 == "" || mime == "" {
		return ExecResult{}, fmt.Errorf("%w: no image loaded", ErrMissingInput)
	}
	return ExecResult{
		Outputs: Outputs{portImageOutput: Value{Base64Image: b64, MIMEType: mime}},
	}, nil
}

// promptExecutor emits the node's prompt text verbatim. An empty prompt
// is a valid (empty) value; downstream consumers that require text
// reject it themselves.
type promptExecutor struct{}

func (promptExecutor) Execute(_ context.Context, n *Node, _ Inputs) (ExecResult, error) {
	return ExecResult{
		Outputs: Outputs{portPromptOutput: Value{Text: n.StringData("text", "")}},
	}, nil
}

// solidColorExecutor renders a flat color canvas at the configured
// aspect ratio.
type solidColorExecutor struct{}

func (solidColorExecutor) Execute(_ context.Context, n *Node, _ Inputs) (ExecResult, error) {
	col, err := parseHexColor(n.StringData("color", "#06b6d4"))
	if err != nil {
		return ExecResult{}, err
	}
	ratio, err := parseAspect(n.StringData("aspectRatio", "1:1"))
	if err != nil {
		return ExecResult{}, err
	}
	payload, err := encodePNG(renderSolid(col, ratio))
	if err != nil {
		return ExecResult{}, err
	}
	return ExecResult{
		Outputs: Outputs{portImageOutput: payload.Value()},
		Patch:   map[string]any{"base64Image": payload.Base64, "mimeType": payload.MIMEType},
	}, nil
}

// poseExecutor rasterizes the node's joint map into a skeleton guide.
type poseExecutor struct{}

func (poseExecutor) Execute(_ context.Context, n *Node, _ Inputs) (ExecResult, error) {
	joints, err := jointsFromData(n.Data["joints"])
	if err != nil {
		return ExecResult{}, err
	}
	if len(joints) == 0 {
		joints = DefaultJoints()
	}
	payload, err := encodePNG(renderPose(joints))
	if err != nil {
		return ExecResult{}, err
	}
	return ExecResult{
		Outputs: Outputs{portImageOutput: payload.Value()},
		Patch:   map[string]any{"base64Image": payload.Base64, "mimeType": payload.MIMEType},
	}, nil
}

// sketchExecutor rasterizes freehand strokes onto a white canvas.
type sketchExecutor struct{}

func (sketchExecutor) Execute(_ context.Context, n *Node, _ Inputs) (ExecResult, error) {
	strokes, err := strokesFromData(n.Data["elements"])
	if err != nil {
		return ExecResult{}, err
	}
	payload, err := encodePNG(renderStrokes(strokes, nil))
	if err != nil {
		return ExecResult{}, err
	}
	return ExecResult{
		Outputs: Outputs{portImageOutput: payload.Value()},
		Patch:   map[string]any{"base64Image": payload.Base64, "mimeType": payload.MIMEType},
	}, nil
}

// annotationExecutor composites strokes over the node's loaded backdrop
// image. Without a backdrop it behaves like a sketch. The composited
// result goes under separate output keys so the original backdrop stays
// editable.
type annotationExecutor struct{}

func (annotationExecutor) Execute(_ context.Context, n *Node, _ Inputs) (ExecResult, error) {
	strokes, err := strokesFromData(n.Data["elements"])
	if err != nil {
		return ExecResult{}, err
	}

	var bg image.Image
	if b64 := n.StringData("base64Bg", ""); b64 != "" {
		img, err := decodeImage(ImagePayload{Base64: b64, MIMEType: n.StringData("mimeTypeBg", "image/png")})
		if err != nil {
			return ExecResult{}, err
		}
		bg = img
	}

	payload, err := encodePNG(renderStrokes(strokes, bg))
	if err != nil {
		return ExecResult{}, err
	}
	return ExecResult{
		Outputs: Outputs{portImageOutput: payload.Value()},
		Patch:   map[string]any{"base64ImageOutput": payload.Base64, "mimeTypeOutput": payload.MIMEType},
	}, nil
}
