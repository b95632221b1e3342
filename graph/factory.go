package graph

import "github.com/google/uuid"

// Port ids shared between the factory and the executors. These are part
// of the persisted graph shape and must stay stable for a given kind.
const (
	portImageOutput    = "image-output"
	portPromptOutput   = "prompt-output"
	portStylerOutput   = "styler-output"
	portResultOutput   = "result-output"
	portTextOutput     = "text-output"
	portImageInput     = "image-input"
	portPromptInput    = "prompt-input"
	portImageInput1    = "image-input-1"
	portImageInput2    = "image-input-2"
	portSourceInput    = "source-input"
	portReferenceInput = "reference-input"
	portResultInput    = "result-input"
)

// GeneratorMode selects which generation operation an IMAGE_GENERATOR
// node performs. Changing the mode replaces the node's input port list.
type GeneratorMode string

const (
	ModeGenerate  GeneratorMode = "generate"
	ModeEdit      GeneratorMode = "edit"
	ModeMix       GeneratorMode = "mix"
	ModeStyle     GeneratorMode = "style"
	ModeReference GeneratorMode = "reference"
)

// GeneratorInputs returns the canonical input port list for a generator
// mode. Every mode requires a prompt; the image inputs vary:
//
//	generate   (prompt only)
//	edit       image to modify
//	mix        source image plus reference image
//	style      reference image whose style is applied
//	reference  reference image used as subject guidance
func GeneratorInputs(mode GeneratorMode) ([]Port, error) {
	prompt := Port{ID: portPromptInput, Direction: DirectionInput, DataType: DataTypeText, Label: "Prompt"}
	switch mode {
	case ModeGenerate:
		return []Port{prompt}, nil
	case ModeEdit:
		return []Port{
			{ID: portImageInput, Direction: DirectionInput, DataType: DataTypeImage, Label: "Image"},
			prompt,
		}, nil
	case ModeMix:
		return []Port{
			{ID: portSourceInput, Direction: DirectionInput, DataType: DataTypeImage, Label: "Source"},
			{ID: portReferenceInput, Direction: DirectionInput, DataType: DataTypeImage, Label: "Reference"},
			prompt,
		}, nil
	case ModeStyle, ModeReference:
		return []Port{
			{ID: portReferenceInput, Direction: DirectionInput, DataType: DataTypeImage, Label: "Reference"},
			prompt,
		}, nil
	default:
		return nil, ErrUnknownKind
	}
}

// CreateNode produces a node of the requested kind with a fresh unique
// id, the kind's canonical port lists, default sizing hints, and
// kind-specific default data. It is the single source of truth for what
// ports and defaults a kind has; the scheduler, the connection
// compatibility filter, and the executors all assume the shapes
// produced here. Unknown kinds are rejected with ErrUnknownKind.
func CreateNode(kind NodeKind, position Point) (*Node, error) {
	n := &Node{
		ID:        "node-" + uuid.NewString(),
		Kind:      kind,
		Position:  position,
		Width:     256,
		MinWidth:  256,
		Resizable: true,
		Data:      map[string]any{},
		Status:    StatusIdle,
	}

	switch kind {
	case KindImageLoader:
		n.Title = "Load Image"
		n.Outputs = []Port{{ID: portImageOutput, Direction: DirectionOutput, DataType: DataTypeImage}}
		n.Height, n.MinHeight = 220, 220

	case KindPrompt:
		n.Title = "Prompt"
		n.Outputs = []Port{{ID: portPromptOutput, Direction: DirectionOutput, DataType: DataTypeText}}

	case KindPromptStyler:
		n.Title = "Prompt Styler"
		n.Outputs = []Port{{ID: portStylerOutput, Direction: DirectionOutput, DataType: DataTypeText}}
		n.Data = map[string]any{"userPrompt": "", "styleFile": "Basic", "styleName": "none"}
		n.Height, n.MinHeight = 250, 250

	case KindImageGenerator:
		n.Title = "Generation Engine"
		inputs, _ := GeneratorInputs(ModeGenerate)
		n.Inputs = inputs
		n.Outputs = []Port{{ID: portResultOutput, Direction: DirectionOutput, DataType: DataTypeAny}}
		n.Data = map[string]any{"mode": string(ModeGenerate), "cache": map[string]Value{}}
		n.Resizable = false

	case KindImageStitcher:
		n.Title = "Stitch Images"
		n.Inputs = []Port{
			{ID: portImageInput1, Direction: DirectionInput, DataType: DataTypeImage},
			{ID: portImageInput2, Direction: DirectionInput, DataType: DataTypeImage},
		}
		n.Outputs = []Port{{ID: portImageOutput, Direction: DirectionOutput, DataType: DataTypeImage}}
		n.Data = map[string]any{"stitchMode": "horizontal"}
		n.Height, n.MinHeight = 180, 180

	case KindImageDescriber:
		n.Title = "Describe Image"
		n.Inputs = []Port{{ID: portImageInput, Direction: DirectionInput, DataType: DataTypeImage}}
		n.Outputs = []Port{{ID: portTextOutput, Direction: DirectionOutput, DataType: DataTypeText}}
		n.Data = map[string]any{"describeMode": "normal", "cache": map[string]Value{}}
		n.Height, n.MinHeight = 180, 180

	case KindSolidColor:
		n.Title = "Solid Color"
		n.Outputs = []Port{{ID: portImageOutput, Direction: DirectionOutput, DataType: DataTypeImage}}
		n.Data = map[string]any{"color": "#06b6d4", "aspectRatio": "1:1"}
		n.Height, n.MinHeight = 160, 160

	case KindCropImage:
		n.Title = "Crop Image"
		n.Inputs = []Port{{ID: portImageInput, Direction: DirectionInput, DataType: DataTypeImage}}
		n.Outputs = []Port{{ID: portImageOutput, Direction: DirectionOutput, DataType: DataTypeImage}}
		n.Data = map[string]any{"aspectRatio": "1:1", "direction": "center"}
		n.Height, n.MinHeight = 200, 200

	case KindPadding:
		n.Title = "Add Padding"
		n.Inputs = []Port{{ID: portImageInput, Direction: DirectionInput, DataType: DataTypeImage}}
		n.Outputs = []Port{{ID: portImageOutput, Direction: DirectionOutput, DataType: DataTypeImage}}
		n.Data = map[string]any{"aspectRatio": "1:1", "direction": "center", "color": "#000000"}
		n.Height, n.MinHeight = 260, 260

	case KindPose:
		n.Title = "Pose Guide"
		n.Outputs = []Port{{ID: portImageOutput, Direction: DirectionOutput, DataType: DataTypeImage}}
		n.Width, n.Height = 320, 480
		n.MinWidth, n.MinHeight = 200, 300
		n.Data = map[string]any{"joints": DefaultJoints()}

	case KindSketch:
		n.Title = "Hand Sketch"
		n.Outputs = []Port{{ID: portImageOutput, Direction: DirectionOutput, DataType: DataTypeImage}}
		n.Width, n.Height = 320, 400
		n.MinWidth, n.MinHeight = 200, 250
		n.Data = map[string]any{"elements": []Stroke{}}

	case KindAnnotation:
		n.Title = "Image Annotation"
		n.Outputs = []Port{{ID: portImageOutput, Direction: DirectionOutput, DataType: DataTypeImage}}
		n.Width, n.Height = 400, 500
		n.MinWidth, n.MinHeight = 300, 300
		n.Data = map[string]any{"elements": []Stroke{}}

	case KindPreview:
		n.Title = "Result Preview"
		n.Inputs = []Port{{ID: portResultInput, Direction: DirectionInput, DataType: DataTypeAny}}
		n.Height, n.MinHeight = 220, 220

	default:
		return nil, ErrUnknownKind
	}

	return n, nil
}

// DefaultJoints is the neutral standing pose a new POSE node starts
// with. Coordinates are percentages of the node body.
func DefaultJoints() map[string]Point {
	return map[string]Point{
		"head":          {X: 50, Y: 15},
		"neck":          {X: 50, Y: 25},
		"leftShoulder":  {X: 40, Y: 30},
		"rightShoulder": {X: 60, Y: 30},
		"leftElbow":     {X: 35, Y: 45},
		"rightElbow":    {X: 65, Y: 45},
		"leftWrist":     {X: 30, Y: 60},
		"rightWrist":    {X: 70, Y: 60},
		"torso":         {X: 50, Y: 55},
		"leftHip":       {X: 45, Y: 60},
		"rightHip":      {X: 55, Y: 60},
		"leftKnee":      {X: 45, Y: 75},
		"rightKnee":     {X: 55, Y: 75},
		"leftAnkle":     {X: 45, Y: 90},
		"rightAnkle":    {X: 55, Y: 90},
	}
}
