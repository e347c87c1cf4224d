// Package cnl reads the Cluster Nodes List text format. It is an external
// collaborator to the loader contract — it only feeds a stream of integer
// clusters to the core — implementing loader.ClusterSource and nothing
// else; it has no knowledge of sync/extend/unique/contribution modes.
package cnl

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/rawblock/clustercompare/internal/model"
	"github.com/rawblock/clustercompare/internal/xerrors"
)

// Header carries the optional `# Clusters: N, Nodes: M` metadata, when
// present. Both fields are 0 if absent; this spec doesn't require callers
// to use them, but it is available for container pre-sizing.
type Header struct {
	Clusters int
	Nodes    int
}

// Source reads clusters line by line from r, implementing
// loader.ClusterSource. Empty clusters are allowed and silently skipped
// with a warning; a ":share" suffix on a node id is dropped without being
// parsed or logged.
type Source struct {
	scanner *bufio.Scanner
	warn    *log.Logger
	name    string

	Header Header
}

// NewSource wraps r as a CNL cluster stream. name is used only to prefix
// warnings (typically the input file path). warn defaults to a logger on
// os.Stderr if nil.
func NewSource(r io.Reader, name string, warn *log.Logger) *Source {
	if warn == nil {
		warn = log.Default()
	}
	return &Source{scanner: bufio.NewScanner(r), warn: warn, name: name}
}

// Next implements loader.ClusterSource.
func (s *Source) Next() ([]model.NodeID, bool, error) {
	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			s.parseHeaderComment(line)
			continue
		}

		members, err := parseClusterLine(line)
		if err != nil {
			return nil, false, xerrors.New("cnl.Next", xerrors.FormatError, err)
		}
		if len(members) == 0 {
			s.warn.Printf("%s: empty cluster line skipped: %q", s.name, line)
			continue
		}
		return members, true, nil
	}
	if err := s.scanner.Err(); err != nil {
		return nil, false, xerrors.New("cnl.Next", xerrors.IoError, err)
	}
	return nil, false, nil
}

// parseHeaderComment looks for `Clusters: N` / `Nodes: M` tokens (space or
// comma separated, case-insensitive, in any order) in a comment line.
func (s *Source) parseHeaderComment(line string) {
	body := strings.TrimLeft(line, "#")
	fields := strings.FieldsFunc(body, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	for i := 0; i+1 < len(fields); i++ {
		key := strings.ToLower(strings.TrimSuffix(fields[i], ":"))
		switch key {
		case "clusters":
			if v, err := strconv.Atoi(fields[i+1]); err == nil {
				s.Header.Clusters = v
			}
		case "nodes":
			if v, err := strconv.Atoi(fields[i+1]); err == nil {
				s.Header.Nodes = v
			}
		}
	}
}

// parseClusterLine parses one non-comment line: an optional "cluster_id>"
// prefix, then whitespace-separated node ids, each optionally followed by
// a share value (e.g. "12:0.5" or "12 0.5") which this spec ignores.
func parseClusterLine(line string) ([]model.NodeID, error) {
	if idx := strings.Index(line, ">"); idx >= 0 {
		prefix := line[:idx]
		if _, err := strconv.ParseUint(strings.TrimSpace(prefix), 10, 32); err == nil {
			line = line[idx+1:]
		}
	}

	fields := strings.Fields(line)
	members := make([]model.NodeID, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		// A trailing share value may be attached with ':' (e.g. "12:0.5")
		// or appear as its own whitespace-separated token; the latter case
		// looks like a plain float field and is skipped by the '.' check
		// below (any other non-integer token fails ParseUint as an error).
		if colon := strings.IndexByte(f, ':'); colon >= 0 {
			f = f[:colon]
		}
		if strings.Contains(f, ".") {
			// A bare share value with no node id attached to this token;
			// only valid immediately after a node id, so skip it.
			continue
		}
		id, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid node id %q: %w", f, err)
		}
		members = append(members, model.NodeID(id))
	}
	return members, nil
}
