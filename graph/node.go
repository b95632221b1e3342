package graph

// NodeKind identifies the computation a node performs. Every kind has a
// factory entry (canonical ports, sizing, default data) and an executor
// entry; both are registered together when a kind is added.
type NodeKind string

const (
	KindImageLoader    NodeKind = "IMAGE_LOADER"
	KindPrompt         NodeKind = "PROMPT"
	KindPromptStyler   NodeKind = "PROMPT_STYLER"
	KindImageGenerator NodeKind = "IMAGE_GENERATOR"
	KindImageStitcher  NodeKind = "IMAGE_STITCHER"
	KindImageDescriber NodeKind = "IMAGE_DESCRIBER"
	KindSolidColor     NodeKind = "SOLID_COLOR"
	KindCropImage      NodeKind = "CROP_IMAGE"
	KindPadding        NodeKind = "PADDING"
	KindPose           NodeKind = "POSE"
	KindSketch         NodeKind = "SKETCH"
	KindAnnotation     NodeKind = "ANNOTATION"
	KindPreview        NodeKind = "PREVIEW"
)

// Status is the display state of a node, mutated only by the runner and
// the node's own executor.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Point is a canvas position in world coordinates. Pose joints reuse it
// as percentage coordinates within the node body.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a unit of computation in the workflow graph.
//
// Data holds kind-specific parameters and results as a plain key-value
// map so the surrounding application can persist and patch it freely.
// Reserved keys, by kind:
//
//	all generative kinds  "cache" (map[string]Value, fingerprint-keyed)
//	IMAGE_LOADER          "base64Image", "mimeType"
//	PROMPT                "text"
//	PROMPT_STYLER         "userPrompt", "styleFile", "styleName"
//	IMAGE_GENERATOR       "mode"
//	IMAGE_STITCHER        "stitchMode"
//	IMAGE_DESCRIBER       "describeMode", "text"
//	SOLID_COLOR           "color", "aspectRatio"
//	CROP_IMAGE            "aspectRatio", "direction"
//	PADDING               "aspectRatio", "direction", "color"
//	POSE                  "joints"
//	SKETCH / ANNOTATION   "elements" (+ "base64Bg", "mimeTypeBg")
//	PREVIEW               "imageUrl", "text"
//
// Transforms additionally write their result under "base64Image" /
// "mimeType" so the interactive layer can render it in place. New kinds
// must avoid colliding with these keys.
type Node struct {
	ID       string   `json:"id"`
	Kind     NodeKind `json:"kind"`
	Title    string   `json:"title"`
	Position Point    `json:"position"`

	// Sizing hints for the interactive layer.
	Width     int  `json:"width,omitempty"`
	Height    int  `json:"height,omitempty"`
	MinWidth  int  `json:"minWidth,omitempty"`
	MinHeight int  `json:"minHeight,omitempty"`
	Resizable bool `json:"resizable"`

	Inputs  []Port `json:"inputs"`
	Outputs []Port `json:"outputs"`

	Data   map[string]any `json:"data"`
	Status Status         `json:"status"`
	Error  string         `json:"error,omitempty"`
}

// InputPort returns the input port with the given id.
func (n *Node) InputPort(id string) (Port, bool) {
	for _, p := range n.Inputs {
		if p.ID == id {
			return p, true
		}
	}
	return Port{}, false
}

// OutputPort returns the output port with the given id.
func (n *Node) OutputPort(id string) (Port, bool) {
	for _, p := range n.Outputs {
		if p.ID == id {
			return p, true
		}
	}
	return Port{}, false
}

// StringData reads a string parameter from the data map, falling back
// to def when the key is absent or not a string.
func (n *Node) StringData(key, def string) string {
	if s, ok := n.Data[key].(string); ok && s != "" {
		return s
	}
	return def
}

// ApplyPatch merges a data patch into the node's data map.
func (n *Node) ApplyPatch(patch map[string]any) {
	if n.Data == nil {
		n.Data = make(map[string]any, len(patch))
	}
	for k, v := range patch {
		n.Data[k] = v
	}
}
