package trace

import (
	"bytes"
	"strings"
	"testing"
)

func TestSilentConfigWritesNothing(t *testing.T) {
	var c Config
	var buf bytes.Buffer
	c.Writer = &buf
	c.Stagef("loader", "loaded %d clusters", 3)
	if buf.Len() != 0 {
		t.Fatalf("expected no output from a non-detailed config, got %q", buf.String())
	}
}

func TestDetailedConfigTagsWithRunID(t *testing.T) {
	var buf bytes.Buffer
	c := NewDetailed(&buf)
	c.Stagef("contribution", "processed %d nodes", 10)

	out := buf.String()
	if !strings.Contains(out, c.RunID()) {
		t.Fatalf("expected output tagged with run id %q, got %q", c.RunID(), out)
	}
	if !strings.Contains(out, "contribution") || !strings.Contains(out, "processed 10 nodes") {
		t.Fatalf("expected stage and message in output, got %q", out)
	}
}

func TestRunIDStable(t *testing.T) {
	c := NewDetailed(nil)
	id1 := c.RunID()
	id2 := c.RunID()
	if id1 != id2 {
		t.Fatalf("expected stable run id across calls, got %q then %q", id1, id2)
	}
}
