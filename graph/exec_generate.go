package graph

import (
	"context"
	"fmt"

	"github.com/dshills/imageflow-go/graph/gen"
)

// requireGenImage resolves a required image input into the argument
// form the generation service takes.
func requireGenImage(in Inputs, portID string) (gen.Image, error) {
	payload, err := requireImage(in, portID)
	if err != nil {
		return gen.Image{}, err
	}
	return gen.Image{Base64: payload.Base64, MIMEType: payload.MIMEType}, nil
}

// generatorExecutor runs one of the generation modes against the
// external service, memoizing results by content fingerprint so
// repeated runs with unchanged inputs cost nothing.
type generatorExecutor struct {
	svc      gen.Service
	useCache bool
}

func (e generatorExecutor) Execute(ctx context.Context, n *Node, in Inputs) (ExecResult, error) {
	mode := GeneratorMode(n.StringData("mode", string(ModeGenerate)))

	prompt := in[portPromptInput].Text
	if prompt == "" {
		return ExecResult{}, fmt.Errorf("%w: %s", ErrMissingInput, portPromptInput)
	}

	var images []gen.Image
	switch mode {
	case ModeGenerate:
	case ModeEdit:
		img, err := requireGenImage(in, portImageInput)
		if err != nil {
			return ExecResult{}, err
		}
		images = append(images, img)
	case ModeMix:
		src, err := requireGenImage(in, portSourceInput)
		if err != nil {
			return ExecResult{}, err
		}
		ref, err := requireGenImage(in, portReferenceInput)
		if err != nil {
			return ExecResult{}, err
		}
		images = append(images, src, ref)
	case ModeStyle, ModeReference:
		ref, err := requireGenImage(in, portReferenceInput)
		if err != nil {
			return ExecResult{}, err
		}
		images = append(images, ref)
	default:
		return ExecResult{}, fmt.Errorf("%w: generator mode %q", ErrUnknownKind, mode)
	}

	parts := make([]string, 0, len(images)+1)
	for _, img := range images {
		parts = append(parts, img.Base64)
	}
	parts = append(parts, prompt)
	key := Fingerprint(string(mode), parts...)

	if e.useCache {
		if v, ok := cacheGet(n, key); ok {
			return ExecResult{
				Outputs:   Outputs{portResultOutput: v},
				FromCache: true,
			}, nil
		}
	}

	var res gen.Result
	var err error
	switch mode {
	case ModeGenerate:
		res, err = e.svc.GenerateImage(ctx, prompt)
	case ModeEdit:
		res, err = e.svc.EditImage(ctx, images[0], prompt)
	case ModeMix:
		res, err = e.svc.MixImages(ctx, images[0], images[1], prompt)
	case ModeStyle:
		res, err = e.svc.GenerateWithStyle(ctx, images[0], prompt)
	case ModeReference:
		res, err = e.svc.GenerateWithReference(ctx, images[0], prompt)
	}
	if err != nil {
		return ExecResult{}, err
	}

	out := Value{ImageURL: res.ImageURL, Text: res.Text}
	result := ExecResult{Outputs: Outputs{portResultOutput: out}}
	if e.useCache {
		result.Patch = cachePatch(n, key, out)
	}
	return result, nil
}

// describerExecutor asks the service for a textual description of its
// input image, memoized the same way as generation.
type describerExecutor struct {
	svc      gen.Service
	useCache bool
}

func (e describerExecutor) Execute(ctx context.Context, n *Node, in Inputs) (ExecResult, error) {
	payload, err := requireImage(in, portImageInput)
	if err != nil {
		return ExecResult{}, err
	}
	mode := gen.DescribeMode(n.StringData("describeMode", string(gen.DescribeNormal)))
	key := Fingerprint("describe:"+string(mode), payload.Base64)

	if e.useCache {
		if v, ok := cacheGet(n, key); ok {
			return ExecResult{
				Outputs:   Outputs{portTextOutput: v},
				Patch:     map[string]any{"text": v.Text},
				FromCache: true,
			}, nil
		}
	}

	text, err := e.svc.DescribeImage(ctx, gen.Image{Base64: payload.Base64, MIMEType: payload.MIMEType}, mode)
	if err != nil {
		return ExecResult{}, err
	}

	out := Value{Text: text}
	patch := map[string]any{"text": text}
	if e.useCache {
		patch = cachePatch(n, key, out)
		patch["text"] = text
	}
	return ExecResult{
		Outputs: Outputs{portTextOutput: out},
		Patch:   patch,
	}, nil
}
