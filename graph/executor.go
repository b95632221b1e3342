package graph

import (
	"context"
	"fmt"

	"github.com/dshills/imageflow-go/graph/gen"
	"github.com/dshills/imageflow-go/graph/style"
)

// Inputs maps a node's input port ids to the values gathered from
// already-computed upstream outputs.
type Inputs map[string]Value

// Outputs maps a node's output port ids to the values it produced,
// recorded for downstream consumption.
type Outputs map[string]Value

// ExecResult is what one node execution produces: the declared port
// outputs, a patch of result data the interactive layer should see
// (stitched pixels, description text, preview display fields), and
// whether the result was served from the node's cache.
type ExecResult struct {
	Outputs   Outputs
	Patch     map[string]any
	FromCache bool
}

// Executor computes one node kind. Implementations read only the given
// node's data plus the resolved inputs, and must not touch any other
// node. Generative executors are the only ones performing I/O; they
// respect ctx cancellation.
type Executor interface {
	Execute(ctx context.Context, node *Node, in Inputs) (ExecResult, error)
}

// ExecutorFunc adapts a plain function to the Executor interface.
type ExecutorFunc func(ctx context.Context, node *Node, in Inputs) (ExecResult, error)

// Execute implements Executor.
func (f ExecutorFunc) Execute(ctx context.Context, node *Node, in Inputs) (ExecResult, error) {
	return f(ctx, node, in)
}

// Registry maps node kinds to their executors. A kind without an
// executor entry cannot run; the factory and registry entries for a
// kind are meant to be added together.
type Registry struct {
	executors map[NodeKind]Executor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{executors: make(map[NodeKind]Executor)}
}

// Register adds an executor for a kind, rejecting duplicates.
func (r *Registry) Register(kind NodeKind, ex Executor) error {
	if ex == nil {
		return fmt.Errorf("nil executor for kind %s", kind)
	}
	if _, exists := r.executors[kind]; exists {
		return fmt.Errorf("executor already registered for kind %s", kind)
	}
	r.executors[kind] = ex
	return nil
}

// Lookup returns the executor for a kind.
func (r *Registry) Lookup(kind NodeKind) (Executor, bool) {
	ex, ok := r.executors[kind]
	return ex, ok
}

// DefaultRegistry wires every built-in kind: source kinds that render
// from node data, local transforms, the generative kinds backed by svc,
// and the preview sink. styles may be nil, in which case the prompt
// styler passes prompts through unchanged.
func DefaultRegistry(svc gen.Service, styles *style.Library, useCache bool) *Registry {
	r := NewRegistry()
	// Registration of built-in kinds cannot collide.
	_ = r.Register(KindImageLoader, imageLoaderExecutor{})
	_ = r.Register(KindPrompt, promptExecutor{})
	_ = r.Register(KindPromptStyler, stylerExecutor{styles: styles})
	_ = r.Register(KindSolidColor, solidColorExecutor{})
	_ = r.Register(KindPose, poseExecutor{})
	_ = r.Register(KindSketch, sketchExecutor{})
	_ = r.Register(KindAnnotation, annotationExecutor{})
	_ = r.Register(KindCropImage, cropExecutor{})
	_ = r.Register(KindPadding, padExecutor{})
	_ = r.Register(KindImageStitcher, stitchExecutor{})
	_ = r.Register(KindImageGenerator, generatorExecutor{svc: svc, useCache: useCache})
	_ = r.Register(KindImageDescriber, describerExecutor{svc: svc, useCache: useCache})
	_ = r.Register(KindPreview, previewExecutor{})
	return r
}

// kindClass buckets kinds for metrics and history handling.
type kindClass int

const (
	classSource kindClass = iota
	classTransform
	classGenerative
	classSink
)

func classOf(kind NodeKind) kindClass {
	switch kind {
	case KindImageGenerator, KindImageDescriber:
		return classGenerative
	case KindCropImage, KindPadding, KindImageStitcher, KindPromptStyler:
		return classTransform
	case KindPreview:
		return classSink
	default:
		return classSource
	}
}
