package graph

import (
	"errors"
	"testing"
)

func mustNode(t *testing.T, g *Graph, kind NodeKind) *Node {
	t.Helper()
	n, err := CreateNode(kind, Point{})
	if err != nil {
		t.Fatalf("CreateNode(%s) failed: %v", kind, err)
	}
	if err := g.AddNode(n); err != nil {
		t.Fatalf("AddNode failed: %v", err)
	}
	return n
}

func TestGraphAddNode(t *testing.T) {
	g := NewGraph()
	n := mustNode(t, g, KindPrompt)

	if err := g.AddNode(n); !errors.Is(err, ErrDuplicateNode) {
		t.Errorf("duplicate AddNode error = %v, want ErrDuplicateNode", err)
	}
	if got, ok := g.Node(n.ID); !ok || got != n {
		t.Errorf("Node(%s) lookup failed", n.ID)
	}
}

func TestGraphConnectValidation(t *testing.T) {
	g := NewGraph()
	loader := mustNode(t, g, KindImageLoader)
	prompt := mustNode(t, g, KindPrompt)
	crop := mustNode(t, g, KindCropImage)
	generator := mustNode(t, g, KindImageGenerator)

	t.Run("valid image edge", func(t *testing.T) {
		conn, err := g.Connect(loader.ID, portImageOutput, crop.ID, portImageInput)
		if err != nil {
			t.Fatalf("Connect failed: %v", err)
		}
		if conn.ID == "" {
			t.Error("connection id is empty")
		}
	})

	t.Run("self loop rejected", func(t *testing.T) {
		if _, err := g.Connect(crop.ID, portImageOutput, crop.ID, portImageInput); !errors.Is(err, ErrSelfLoop) {
			t.Errorf("error = %v, want ErrSelfLoop", err)
		}
	})

	t.Run("unknown node rejected", func(t *testing.T) {
		if _, err := g.Connect("node-missing", portImageOutput, crop.ID, portImageInput); !errors.Is(err, ErrUnknownNode) {
			t.Errorf("error = %v, want ErrUnknownNode", err)
		}
	})

	t.Run("unknown port rejected", func(t *testing.T) {
		if _, err := g.Connect(loader.ID, "bogus-port", crop.ID, portImageInput); !errors.Is(err, ErrUnknownPort) {
			t.Errorf("error = %v, want ErrUnknownPort", err)
		}
	})

	t.Run("input as source rejected", func(t *testing.T) {
		if _, err := g.Connect(crop.ID, portImageInput, generator.ID, portPromptInput); !errors.Is(err, ErrPortDirection) {
			t.Errorf("error = %v, want ErrPortDirection", err)
		}
	})

	t.Run("incompatible types rejected", func(t *testing.T) {
		if _, err := g.Connect(prompt.ID, portPromptOutput, crop.ID, portImageInput); !errors.Is(err, ErrIncompatibleTypes) {
			t.Errorf("error = %v, want ErrIncompatibleTypes", err)
		}
	})

	t.Run("any accepts image and text", func(t *testing.T) {
		preview := mustNode(t, g, KindPreview)
		if _, err := g.Connect(loader.ID, portImageOutput, preview.ID, portResultInput); err != nil {
			t.Errorf("image -> any failed: %v", err)
		}
		if _, err := g.Connect(prompt.ID, portPromptOutput, preview.ID, portResultInput); err != nil {
			t.Errorf("text -> any failed: %v", err)
		}
	})
}

func TestGraphSingleInboundReplace(t *testing.T) {
	g := NewGraph()
	first := mustNode(t, g, KindPrompt)
	second := mustNode(t, g, KindPrompt)
	generator := mustNode(t, g, KindImageGenerator)

	if _, err := g.Connect(first.ID, portPromptOutput, generator.ID, portPromptInput); err != nil {
		t.Fatalf("first Connect failed: %v", err)
	}
	if _, err := g.Connect(second.ID, portPromptOutput, generator.ID, portPromptInput); err != nil {
		t.Fatalf("second Connect failed: %v", err)
	}

	conns := g.Connections()
	if len(conns) != 1 {
		t.Fatalf("connections = %d, want 1 after replace", len(conns))
	}
	if conns[0].FromNodeID != second.ID {
		t.Errorf("surviving edge from %s, want %s", conns[0].FromNodeID, second.ID)
	}
}

func TestGraphRemoveNodeCascades(t *testing.T) {
	g := NewGraph()
	loader := mustNode(t, g, KindImageLoader)
	crop := mustNode(t, g, KindCropImage)
	preview := mustNode(t, g, KindPreview)

	if _, err := g.Connect(loader.ID, portImageOutput, crop.ID, portImageInput); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if _, err := g.Connect(crop.ID, portImageOutput, preview.ID, portResultInput); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	g.RemoveNode(crop.ID)

	if _, ok := g.Node(crop.ID); ok {
		t.Error("removed node still present")
	}
	if conns := g.Connections(); len(conns) != 0 {
		t.Errorf("connections = %d, want 0 after cascade", len(conns))
	}
	if len(g.Nodes()) != 2 {
		t.Errorf("nodes = %d, want 2", len(g.Nodes()))
	}
}

func TestGraphSetGeneratorMode(t *testing.T) {
	g := NewGraph()
	prompt := mustNode(t, g, KindPrompt)
	loader := mustNode(t, g, KindImageLoader)
	generator := mustNode(t, g, KindImageGenerator)

	if _, err := g.Connect(prompt.ID, portPromptOutput, generator.ID, portPromptInput); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	if err := g.SetGeneratorMode(generator.ID, ModeEdit); err != nil {
		t.Fatalf("SetGeneratorMode failed: %v", err)
	}
	if got := generator.StringData("mode", ""); got != string(ModeEdit) {
		t.Errorf("mode = %q, want edit", got)
	}
	if _, ok := generator.InputPort(portImageInput); !ok {
		t.Error("edit mode is missing its image input")
	}
	// Prompt edge survives the switch, both modes carry a prompt port.
	if len(g.Connections()) != 1 {
		t.Errorf("connections = %d, want 1", len(g.Connections()))
	}

	if _, err := g.Connect(loader.ID, portImageOutput, generator.ID, portImageInput); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	// Back to generate: the image port disappears and its edge with it.
	if err := g.SetGeneratorMode(generator.ID, ModeGenerate); err != nil {
		t.Fatalf("SetGeneratorMode failed: %v", err)
	}
	if len(g.Connections()) != 1 {
		t.Errorf("connections = %d, want 1 after port prune", len(g.Connections()))
	}

	t.Run("non-generator rejected", func(t *testing.T) {
		if err := g.SetGeneratorMode(prompt.ID, ModeEdit); err == nil {
			t.Error("expected error for non-generator node")
		}
	})
}

func TestGraphSpliceNode(t *testing.T) {
	g := NewGraph()
	loader := mustNode(t, g, KindImageLoader)
	preview := mustNode(t, g, KindPreview)

	conn, err := g.Connect(loader.ID, portImageOutput, preview.ID, portResultInput)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	crop, err := CreateNode(KindCropImage, Point{})
	if err != nil {
		t.Fatalf("CreateNode failed: %v", err)
	}
	if err := g.SpliceNode(conn.ID, crop); err != nil {
		t.Fatalf("SpliceNode failed: %v", err)
	}

	conns := g.Connections()
	if len(conns) != 2 {
		t.Fatalf("connections = %d, want 2 after splice", len(conns))
	}
	var inEdge, outEdge bool
	for _, c := range conns {
		if c.FromNodeID == loader.ID && c.ToNodeID == crop.ID {
			inEdge = true
		}
		if c.FromNodeID == crop.ID && c.ToNodeID == preview.ID {
			outEdge = true
		}
	}
	if !inEdge || !outEdge {
		t.Errorf("splice edges wrong: %+v", conns)
	}

	t.Run("incompatible node rejected", func(t *testing.T) {
		prompt := mustNode(t, g, KindPrompt)
		generator := mustNode(t, g, KindImageGenerator)
		textConn, err := g.Connect(prompt.ID, portPromptOutput, generator.ID, portPromptInput)
		if err != nil {
			t.Fatalf("Connect failed: %v", err)
		}
		pad, err := CreateNode(KindPadding, Point{})
		if err != nil {
			t.Fatalf("CreateNode failed: %v", err)
		}
		if err := g.SpliceNode(textConn.ID, pad); !errors.Is(err, ErrIncompatibleTypes) {
			t.Errorf("error = %v, want ErrIncompatibleTypes", err)
		}
	})

	t.Run("splicing an edge endpoint leaves the edge intact", func(t *testing.T) {
		g := NewGraph()
		crop := mustNode(t, g, KindCropImage)
		preview := mustNode(t, g, KindPreview)
		conn, err := g.Connect(crop.ID, portImageOutput, preview.ID, portResultInput)
		if err != nil {
			t.Fatalf("Connect failed: %v", err)
		}

		if err := g.SpliceNode(conn.ID, crop); !errors.Is(err, ErrSelfLoop) {
			t.Errorf("error = %v, want ErrSelfLoop", err)
		}
		conns := g.Connections()
		if len(conns) != 1 || conns[0].ID != conn.ID {
			t.Errorf("connections = %+v, want the original edge untouched", conns)
		}
	})
}

func TestGraphCompatibleKinds(t *testing.T) {
	g := NewGraph()
	prompt := mustNode(t, g, KindPrompt)

	kinds, err := g.CompatibleKinds(prompt.ID, portPromptOutput)
	if err != nil {
		t.Fatalf("CompatibleKinds failed: %v", err)
	}

	has := func(kind NodeKind) bool {
		for _, k := range kinds {
			if k == kind {
				return true
			}
		}
		return false
	}
	if !has(KindImageGenerator) {
		t.Error("text output should reach the generator's prompt input")
	}
	if !has(KindPreview) {
		t.Error("text output should reach the preview's any input")
	}
	if has(KindCropImage) {
		t.Error("text output must not reach an image-only input")
	}
	if has(KindPrompt) {
		t.Error("a kind with no inputs cannot be a connection target")
	}
}
