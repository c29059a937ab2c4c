// Package worker runs diff computations off the interactive goroutine,
// communicating through request/response messages. The pure computation has
// no dependency on the transport: the same function runs synchronously in
// tests and asynchronously in production with observably identical results.
package worker

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/fwojciec/splitdiff/linediff"
)

// ComputeFunc is the pure diff computation. It must be side-effect free so
// that a failed request can be retried by resubmitting it.
type ComputeFunc func(old, new any, opts linediff.Options) (linediff.Result, error)

// Request is one diff computation with a unique identity.
type Request struct {
	ID   uuid.UUID
	Old  any
	New  any
	Opts linediff.Options
}

// NewRequest assigns a fresh identity to a diff request.
func NewRequest(old, new any, opts linediff.Options) Request {
	return Request{ID: uuid.New(), Old: old, New: new, Opts: opts}
}

// Response carries the result for exactly one request.
type Response struct {
	ID     uuid.UUID
	Result linediff.Result
	Err    error
}

// Dispatcher delivers each submitted request's response exactly once, in
// submission order.
type Dispatcher interface {
	Submit(Request)
	Responses() <-chan Response
	Close()
}

// Compile-time interface verification.
var (
	_ Dispatcher = (*Worker)(nil)
	_ Dispatcher = (*Sync)(nil)
)

// Worker computes on a background goroutine.
type Worker struct {
	fn        ComputeFunc
	requests  chan Request
	responses chan Response
}

// New starts a worker computing with fn. Close releases the goroutine.
func New(fn ComputeFunc) *Worker {
	w := &Worker{
		fn:        fn,
		requests:  make(chan Request, 16),
		responses: make(chan Response, 16),
	}
	go w.loop()
	return w
}

func (w *Worker) loop() {
	for req := range w.requests {
		w.responses <- run(w.fn, req)
	}
	close(w.responses)
}

// Submit queues a request. It blocks when the queue is full.
func (w *Worker) Submit(req Request) { w.requests <- req }

// Responses returns the response channel; it is closed after Close once all
// queued requests have been answered.
func (w *Worker) Responses() <-chan Response { return w.responses }

// Close stops the worker after draining queued requests.
func (w *Worker) Close() { close(w.requests) }

// Sync computes inline on Submit, for environments without background
// execution. buffer bounds how many responses may be outstanding between
// reads.
type Sync struct {
	fn        ComputeFunc
	responses chan Response
}

// NewSync creates a synchronous dispatcher.
func NewSync(fn ComputeFunc, buffer int) *Sync {
	if buffer < 1 {
		buffer = 1
	}
	return &Sync{fn: fn, responses: make(chan Response, buffer)}
}

// Submit computes the response before returning.
func (s *Sync) Submit(req Request) { s.responses <- run(s.fn, req) }

// Responses returns the response channel.
func (s *Sync) Responses() <-chan Response { return s.responses }

// Close closes the response channel.
func (s *Sync) Close() { close(s.responses) }

// run shields the dispatcher from a panicking computation: the failure
// surfaces as a rejected request, which is safe to resubmit because the
// computation is pure.
func run(fn ComputeFunc, req Request) (resp Response) {
	resp.ID = req.ID
	defer func() {
		if r := recover(); r != nil {
			resp.Err = fmt.Errorf("diff computation: %v", r)
		}
	}()
	resp.Result, resp.Err = fn(req.Old, req.New, req.Opts)
	return resp
}
