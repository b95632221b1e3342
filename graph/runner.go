package graph

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/imageflow-go/graph/emit"
	"github.com/dshills/imageflow-go/graph/history"
)

// UpdateFunc observes node mutations during a run: status transitions
// and applied data patches. It fires once per mutation, on the run's
// goroutine.
type UpdateFunc func(n *Node)

// RunResult summarizes one workflow run.
type RunResult struct {
	// RunID is the generated identifier carried by every event the
	// run emitted.
	RunID string

	// Executed counts the nodes that ran to success.
	Executed int

	// CacheHits counts the executed nodes served from their cache.
	CacheHits int

	// FailedNodeID names the node that halted the run, empty on
	// success.
	FailedNodeID string
}

// Runner executes workflow graphs sequentially in topological order,
// failing fast: the first node error marks that node, halts the run,
// and leaves every downstream node untouched with its prior status.
//
// A Runner executes at most one run at a time; a second Run while one
// is active fails immediately with ErrRunInProgress. The Runner mutates
// node status, error, and data in place and is the only writer during a
// run.
type Runner struct {
	registry    *Registry
	emitter     emit.Emitter
	metrics     *PrometheusMetrics
	history     history.Sink
	update      UpdateFunc
	nodeTimeout time.Duration

	running atomic.Bool
}

// NewRunner creates a Runner over the given executor registry.
func NewRunner(registry *Registry, opts ...Option) *Runner {
	r := &Runner{
		registry: registry,
		emitter:  emit.NewNullEmitter(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the graph. The whole run fails up front with a
// *CycleError when the connection set is cyclic, and with
// ErrRunInProgress when another run is active. A node failure is
// returned as a *NodeError after the failing node has been marked.
func (r *Runner) Run(ctx context.Context, g *Graph) (*RunResult, error) {
	if !r.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer r.running.Store(false)

	result := &RunResult{RunID: "run-" + uuid.NewString()}

	order, err := ExecutionOrder(g.Nodes(), g.Connections())
	if err != nil {
		r.recordRun("cycle")
		return result, err
	}

	conns := g.Connections()
	r.emitter.Emit(emit.Event{
		RunID: result.RunID,
		Msg:   emit.MsgRunStart,
		Meta:  map[string]any{"nodes": len(order)},
	})

	outputs := make(map[string]Outputs, len(order))
	for step, n := range order {
		if err := ctx.Err(); err != nil {
			r.emitRunEnd(result, "canceled")
			return result, err
		}
		if err := r.runNode(ctx, result, step+1, n, gatherInputs(n, conns, outputs), outputs); err != nil {
			result.FailedNodeID = n.ID
			r.emitRunEnd(result, "error")
			return result, err
		}
	}

	r.emitRunEnd(result, "success")
	return result, nil
}

// runNode executes one node through its full lifecycle: loading status,
// execution (with the optional timeout), patch application, and final
// status.
func (r *Runner) runNode(ctx context.Context, result *RunResult, step int, n *Node, in Inputs, outputs map[string]Outputs) error {
	ex, ok := r.registry.Lookup(n.Kind)
	if !ok {
		err := &NodeError{NodeID: n.ID, Kind: n.Kind, Message: "no executor for kind " + string(n.Kind), Cause: ErrUnknownKind}
		r.failNode(result, step, n, err)
		return err
	}

	n.Status = StatusLoading
	n.Error = ""
	r.notify(n)
	r.emitter.Emit(emit.Event{
		RunID: result.RunID, Step: step, NodeID: n.ID, Kind: string(n.Kind),
		Msg: emit.MsgNodeStart,
	})

	start := time.Now()
	res, err := r.executeWithTimeout(ctx, ex, n, in)
	elapsed := time.Since(start)

	if err != nil {
		if r.metrics != nil {
			r.metrics.RecordNodeLatency(string(n.Kind), elapsed, "error")
		}
		nodeErr := &NodeError{NodeID: n.ID, Kind: n.Kind, Message: err.Error(), Cause: err}
		r.failNode(result, step, n, nodeErr)
		return nodeErr
	}

	if len(res.Patch) > 0 {
		n.ApplyPatch(res.Patch)
	}
	n.Status = StatusSuccess
	r.notify(n)

	outputs[n.ID] = res.Outputs
	result.Executed++

	class := classOf(n.Kind)
	if r.metrics != nil {
		r.metrics.RecordNodeLatency(string(n.Kind), elapsed, "success")
		if class == classGenerative {
			if res.FromCache {
				r.metrics.RecordCacheEvent(string(n.Kind), "hit")
			} else {
				r.metrics.RecordCacheEvent(string(n.Kind), "miss")
				r.metrics.RecordGeneration(string(n.Kind))
			}
		}
	}
	if res.FromCache {
		result.CacheHits++
		r.emitter.Emit(emit.Event{
			RunID: result.RunID, Step: step, NodeID: n.ID, Kind: string(n.Kind),
			Msg: emit.MsgCacheHit,
		})
	}
	r.emitter.Emit(emit.Event{
		RunID: result.RunID, Step: step, NodeID: n.ID, Kind: string(n.Kind),
		Msg: emit.MsgNodeEnd,
		Meta: map[string]any{
			"duration_ms": elapsed.Milliseconds(),
			"from_cache":  res.FromCache,
		},
	})

	if r.history != nil && class == classGenerative {
		r.recordHistory(n, res)
	}
	return nil
}

// executeWithTimeout wraps one execution in the configured per-node
// timeout. With no timeout the executor runs on the caller's context
// directly.
func (r *Runner) executeWithTimeout(ctx context.Context, ex Executor, n *Node, in Inputs) (ExecResult, error) {
	if r.nodeTimeout <= 0 {
		return ex.Execute(ctx, n, in)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, r.nodeTimeout)
	defer cancel()

	res, err := ex.Execute(timeoutCtx, n, in)
	if timeoutCtx.Err() == context.DeadlineExceeded {
		return res, fmt.Errorf("node %s exceeded timeout of %v", n.ID, r.nodeTimeout)
	}
	return res, err
}

// failNode marks the node, notifies the interactive layer, and emits
// the error event. Downstream nodes are deliberately untouched.
func (r *Runner) failNode(result *RunResult, step int, n *Node, err *NodeError) {
	n.Status = StatusError
	n.Error = err.Message
	r.notify(n)
	r.emitter.Emit(emit.Event{
		RunID: result.RunID, Step: step, NodeID: n.ID, Kind: string(n.Kind),
		Msg:  emit.MsgNodeError,
		Meta: map[string]any{"error": err.Message},
	})
}

func (r *Runner) recordHistory(n *Node, res ExecResult) {
	entry := history.Entry{NodeID: n.ID, Kind: string(n.Kind), At: time.Now()}
	for _, v := range res.Outputs {
		if url := displayURL(v); url != "" && entry.ImageURL == "" {
			entry.ImageURL = url
		}
		if v.Text != "" && entry.Text == "" {
			entry.Text = v.Text
		}
	}
	r.history.Record(entry)
}

func (r *Runner) emitRunEnd(result *RunResult, status string) {
	r.recordRun(status)
	r.emitter.Emit(emit.Event{
		RunID: result.RunID,
		Msg:   emit.MsgRunEnd,
		Meta: map[string]any{
			"status":     status,
			"executed":   result.Executed,
			"cache_hits": result.CacheHits,
		},
	})
}

func (r *Runner) recordRun(status string) {
	if r.metrics != nil {
		r.metrics.RecordRun(status)
	}
}

func (r *Runner) notify(n *Node) {
	if r.update != nil {
		r.update(n)
	}
}

// gatherInputs resolves a node's input values from already-computed
// upstream outputs. Connections whose upstream produced nothing leave
// the port unset; executors decide whether that is fatal.
func gatherInputs(n *Node, conns []*Connection, outputs map[string]Outputs) Inputs {
	in := make(Inputs)
	for _, c := range conns {
		if c.ToNodeID != n.ID {
			continue
		}
		if produced, ok := outputs[c.FromNodeID]; ok {
			if v, ok := produced[c.FromPortID]; ok && !v.IsZero() {
				in[c.ToPortID] = v
			}
		}
	}
	return in
}
