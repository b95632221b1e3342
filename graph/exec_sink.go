package graph

import (
	"context"
	"fmt"
)

// previewExecutor reshapes whatever arrives on its any-typed input into
// normalized display data: a resolvable image reference plus optional
// text. It produces no outputs.
type previewExecutor struct{}

func (previewExecutor) Execute(_ context.Context, _ *Node, in Inputs) (ExecResult, error) {
	v, ok := in[portResultInput]
	if !ok || v.IsZero() {
		return ExecResult{}, fmt.Errorf("%w: %s", ErrMissingInput, portResultInput)
	}
	return ExecResult{
		Patch: map[string]any{
			"imageUrl": displayURL(v),
			"text":     v.Text,
		},
	}, nil
}
