// Package store persists workflow graph snapshots under user-chosen
// names. A snapshot is the serializable shape of a canvas: nodes,
// connections, and the view transform. Implementations cover in-memory
// (testing), SQLite (local single-file persistence), and MySQL
// (shared deployments).
package store

import (
	"context"
	"errors"

	"github.com/dshills/imageflow-go/graph"
)

// ErrNotFound is returned when a requested snapshot name does not
// exist.
var ErrNotFound = errors.New("snapshot not found")

// heavyDataKeys are the node data entries stripped before persistence:
// embedded image payloads and memoized generative results. They can be
// megabytes per node and are all reproducible by re-running or
// re-loading.
var heavyDataKeys = []string{
	"base64Image",
	"mimeType",
	"base64Bg",
	"mimeTypeBg",
	"base64ImageOutput",
	"mimeTypeOutput",
	"cache",
}

// ViewTransform is the canvas pan/zoom state saved with a snapshot.
type ViewTransform struct {
	Scale float64 `json:"scale"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Snapshot is one persisted workflow graph.
type Snapshot struct {
	Nodes       []*graph.Node       `json:"nodes"`
	Connections []*graph.Connection `json:"connections"`
	View        ViewTransform       `json:"viewTransform"`
}

// Strip returns a copy of the snapshot with heavy node data removed.
// Stores call it before writing; the original is untouched.
func (s Snapshot) Strip() Snapshot {
	out := Snapshot{
		Nodes:       make([]*graph.Node, len(s.Nodes)),
		Connections: s.Connections,
		View:        s.View,
	}
	for i, n := range s.Nodes {
		clone := *n
		if n.Data != nil {
			clone.Data = make(map[string]any, len(n.Data))
			for k, v := range n.Data {
				clone.Data[k] = v
			}
			for _, key := range heavyDataKeys {
				delete(clone.Data, key)
			}
		}
		out.Nodes[i] = &clone
	}
	return out
}

// Store persists named snapshots.
//
// Implementations must be safe for concurrent use. Save overwrites an
// existing snapshot of the same name; Load and Delete fail with
// ErrNotFound for unknown names.
type Store interface {
	// Save persists the snapshot under name, stripped of heavy data.
	Save(ctx context.Context, name string, snap Snapshot) error

	// Load retrieves a snapshot by name.
	Load(ctx context.Context, name string) (Snapshot, error)

	// Delete removes a snapshot by name.
	Delete(ctx context.Context, name string) error

	// List returns the stored snapshot names in sorted order.
	List(ctx context.Context) ([]string, error)
}
