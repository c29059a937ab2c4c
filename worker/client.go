package worker

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"reflect"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/fwojciec/splitdiff/linediff"
)

// Client matches responses to the requests that produced them, drops
// superseded results, and memoizes by a canonical key over every
// diff-affecting input so each configuration is computed at most once.
type Client struct {
	d Dispatcher

	mu       sync.Mutex
	latest   string // key of the most recent request
	keys     map[uuid.UUID]string
	inflight map[string]bool
	memo     map[string]Response
}

// NewClient wraps a dispatcher. The caller reads d.Responses() and passes
// each response through Receive.
func NewClient(d Dispatcher) *Client {
	return &Client{
		d:        d,
		keys:     make(map[uuid.UUID]string),
		inflight: make(map[string]bool),
		memo:     make(map[string]Response),
	}
}

// Request submits a computation unless an identical configuration already
// completed, in which case the memoized response is returned immediately
// with done set, or is still in flight, in which case its eventual response
// is reused instead of recomputing. The new request supersedes any in-flight
// one for delivery purposes.
func (c *Client) Request(old, new any, opts linediff.Options) (resp Response, done bool) {
	key := Key(old, new, opts)

	c.mu.Lock()
	c.latest = key
	if memoized, ok := c.memo[key]; ok {
		c.mu.Unlock()
		return memoized, true
	}
	if c.inflight[key] {
		c.mu.Unlock()
		return Response{}, false
	}
	req := NewRequest(old, new, opts)
	c.keys[req.ID] = key
	c.inflight[key] = true
	c.mu.Unlock()

	c.d.Submit(req)
	return Response{}, false
}

// Receive consumes one response from the dispatcher. ok is false for
// responses to unknown or superseded requests, which the caller discards.
// Successful results are memoized regardless, so a superseded configuration
// resubmitted later completes without recomputing.
func (c *Client) Receive(resp Response) (Response, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key, known := c.keys[resp.ID]
	if !known {
		return Response{}, false
	}
	delete(c.keys, resp.ID)
	delete(c.inflight, key)
	if resp.Err == nil {
		c.memo[key] = resp
	}
	if key != c.latest {
		return Response{}, false
	}
	return resp, true
}

// Key derives a canonical identity from every diff-affecting input.
// Requests with equal keys produce equal results.
func Key(old, new any, opts linediff.Options) string {
	h := fnv.New64a()
	writeValue(h, old)
	writeValue(h, new)
	fmt.Fprintf(h, "|m%d|w%t|d%t|o%d", opts.Mode, opts.DisableWordDiff, opts.DeferWordDiff, opts.LineOffset)
	for _, id := range opts.AlwaysShow {
		_, _ = io.WriteString(h, "|")
		_, _ = io.WriteString(h, id)
	}
	if opts.Comparator != nil {
		// Function identity is the best available key for custom comparators.
		fmt.Fprintf(h, "|c%x", reflect.ValueOf(opts.Comparator).Pointer())
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

func writeValue(h io.Writer, v any) {
	switch t := v.(type) {
	case string:
		_, _ = io.WriteString(h, "s:")
		_, _ = io.WriteString(h, t)
	default:
		if data, err := json.Marshal(v); err == nil {
			_, _ = h.Write(data)
		} else {
			fmt.Fprintf(h, "%#v", v)
		}
	}
	_, _ = io.WriteString(h, "\x00")
}
