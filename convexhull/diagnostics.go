package convexhull

import "sync"

// Diagnostics is the errfile-equivalent resource for the hull kernel: instead
// of a qhull stderr temp file, it accumulates degenerate-input warnings
// produced by Compute calls that share it. It is safe to share across
// sequential hull calls within one orchestrator lifetime. NewOrchestrator
// creates one when the orchestrator is constructed, not at the first hull
// invocation, and Orchestrator.Close closes it at teardown.
type Diagnostics struct {
	mu       sync.Mutex
	warnings []string
	closed   bool
}

// NewDiagnostics returns an empty diagnostics sink.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

func (d *Diagnostics) warn(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.warnings = append(d.warnings, msg)
}

// Warnings returns every warning recorded so far, in order.
func (d *Diagnostics) Warnings() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.warnings))
	copy(out, d.warnings)
	return out
}

// Close releases the sink. Future warn calls after Close are no-ops.
func (d *Diagnostics) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}
