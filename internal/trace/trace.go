// Package trace provides an explicit, run-time verbosity configuration
// threaded through the core — in place of global trace/validate macros —
// plus a run correlation id for detailed tracing.
package trace

import (
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Config controls how much stage-by-stage tracing an evaluation emits and
// where it goes. The zero Config is silent: Detailed false, Writer nil.
type Config struct {
	// Detailed enables verbose per-stage tracing.
	Detailed bool
	// Writer receives trace lines when Detailed is set. Required when
	// Detailed is true; Stagef is a no-op otherwise regardless of Writer.
	Writer io.Writer

	runID string
}

// NewDetailed returns a Config with tracing enabled, writing to w and
// tagging every line with a fresh run id, generated once per evaluation
// run rather than per individual event.
func NewDetailed(w io.Writer) Config {
	return Config{Detailed: true, Writer: w, runID: uuid.New().String()}
}

// RunID returns the run's correlation id, generating one lazily if tracing
// was enabled without going through NewDetailed.
func (c *Config) RunID() string {
	if c.runID == "" {
		c.runID = uuid.New().String()
	}
	return c.runID
}

// Stagef writes a tagged trace line for the given stage if tracing is
// enabled; it is a cheap no-op otherwise, so call sites don't need to
// guard every call with an `if cfg.Detailed`.
func (c *Config) Stagef(stage, format string, args ...any) {
	if !c.Detailed || c.Writer == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(c.Writer, "[%s] %s: %s\n", c.RunID(), stage, msg)
}
