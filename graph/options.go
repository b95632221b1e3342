package graph

import (
	"time"

	"github.com/dshills/imageflow-go/graph/emit"
	"github.com/dshills/imageflow-go/graph/history"
)

// Option configures a Runner.
type Option func(*Runner)

// WithEmitter routes run lifecycle events to the given emitter. The
// default is a NullEmitter.
func WithEmitter(e emit.Emitter) Option {
	return func(r *Runner) {
		if e != nil {
			r.emitter = e
		}
	}
}

// WithMetrics enables Prometheus metric recording.
func WithMetrics(m *PrometheusMetrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// WithHistory records produced results to the given sink.
func WithHistory(h history.Sink) Option {
	return func(r *Runner) {
		r.history = h
	}
}

// WithUpdateFunc registers a callback invoked after every node mutation
// (status change, data patch) during a run. The interactive layer uses
// it to repaint nodes as the run progresses. The callback runs on the
// run's goroutine and must return quickly.
func WithUpdateFunc(fn UpdateFunc) Option {
	return func(r *Runner) {
		r.update = fn
	}
}

// WithNodeTimeout bounds each node execution. Zero (the default) means
// unlimited; generative nodes are the usual reason to set this.
func WithNodeTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.nodeTimeout = d
	}
}
