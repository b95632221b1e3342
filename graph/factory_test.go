package graph

import (
	"errors"
	"testing"
)

func TestCreateNode(t *testing.T) {
	t.Run("every kind builds", func(t *testing.T) {
		seen := make(map[string]bool)
		for _, kind := range AllKinds() {
			n, err := CreateNode(kind, Point{X: 10, Y: 20})
			if err != nil {
				t.Fatalf("CreateNode(%s) failed: %v", kind, err)
			}
			if n.ID == "" || seen[n.ID] {
				t.Errorf("CreateNode(%s) id %q not unique", kind, n.ID)
			}
			seen[n.ID] = true
			if n.Kind != kind {
				t.Errorf("kind = %s, want %s", n.Kind, kind)
			}
			if n.Status != StatusIdle {
				t.Errorf("status = %s, want idle", n.Status)
			}
			if n.Data == nil {
				t.Errorf("CreateNode(%s) left Data nil", kind)
			}
			for _, p := range n.Inputs {
				if p.Direction != DirectionInput {
					t.Errorf("%s input port %s has direction %s", kind, p.ID, p.Direction)
				}
			}
			for _, p := range n.Outputs {
				if p.Direction != DirectionOutput {
					t.Errorf("%s output port %s has direction %s", kind, p.ID, p.Direction)
				}
			}
		}
	})

	t.Run("unknown kind rejected", func(t *testing.T) {
		if _, err := CreateNode(NodeKind("BOGUS"), Point{}); !errors.Is(err, ErrUnknownKind) {
			t.Errorf("error = %v, want ErrUnknownKind", err)
		}
	})

	t.Run("generator starts in generate mode", func(t *testing.T) {
		n, err := CreateNode(KindImageGenerator, Point{})
		if err != nil {
			t.Fatalf("CreateNode failed: %v", err)
		}
		if got := n.StringData("mode", ""); got != string(ModeGenerate) {
			t.Errorf("mode = %q, want generate", got)
		}
		if len(n.Inputs) != 1 || n.Inputs[0].ID != portPromptInput {
			t.Errorf("inputs = %+v, want single prompt input", n.Inputs)
		}
	})

	t.Run("stitcher has two image inputs", func(t *testing.T) {
		n, err := CreateNode(KindImageStitcher, Point{})
		if err != nil {
			t.Fatalf("CreateNode failed: %v", err)
		}
		if len(n.Inputs) != 2 {
			t.Fatalf("inputs = %d, want 2", len(n.Inputs))
		}
		for _, p := range n.Inputs {
			if p.DataType != DataTypeImage {
				t.Errorf("input %s type = %s, want image", p.ID, p.DataType)
			}
		}
	})
}

func TestGeneratorInputs(t *testing.T) {
	tests := []struct {
		mode  GeneratorMode
		ports []string
	}{
		{ModeGenerate, []string{portPromptInput}},
		{ModeEdit, []string{portImageInput, portPromptInput}},
		{ModeMix, []string{portSourceInput, portReferenceInput, portPromptInput}},
		{ModeStyle, []string{portReferenceInput, portPromptInput}},
		{ModeReference, []string{portReferenceInput, portPromptInput}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			ports, err := GeneratorInputs(tt.mode)
			if err != nil {
				t.Fatalf("GeneratorInputs(%s) failed: %v", tt.mode, err)
			}
			if len(ports) != len(tt.ports) {
				t.Fatalf("got %d ports, want %d", len(ports), len(tt.ports))
			}
			for i, want := range tt.ports {
				if ports[i].ID != want {
					t.Errorf("port[%d] = %s, want %s", i, ports[i].ID, want)
				}
			}
		})
	}

	t.Run("unknown mode", func(t *testing.T) {
		if _, err := GeneratorInputs(GeneratorMode("warp")); err == nil {
			t.Error("expected error for unknown mode")
		}
	})
}
