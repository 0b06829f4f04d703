// Package report renders the end-of-run summary.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"urllistsync/internal/domain"
)

// Params are the run inputs the summary echoes back.
type Params struct {
	Source     string
	RawCount   int
	Unique     int
	Digest     string
	ChunkCount int
}

// Summary is the structured result of a successful run.
type Summary struct {
	ListName    string `json:"list_name"`
	ListID      string `json:"list_id"`
	Mode        string `json:"mode"`
	CreatedNew  bool   `json:"created_new"`
	Source      string `json:"source"`
	RawDomains  int    `json:"raw_domains"`
	Domains     int    `json:"domains"`
	Digest      string `json:"digest,omitempty"`
	Chunks      int    `json:"chunks"`
	ChunksSent  int    `json:"chunks_sent"`
	CountBefore int    `json:"count_before"`
	CountAfter  int    `json:"count_after"`
	Delta       string `json:"delta"`
	Deployed    bool   `json:"deployed"`
	Status      string `json:"status"`
}

// Build derives the summary from the outcome and run parameters.
func Build(o domain.Outcome, p Params) Summary {
	return Summary{
		ListName:    o.Handle.Name,
		ListID:      o.Handle.ID,
		Mode:        o.Mode.String(),
		CreatedNew:  o.CreatedNew,
		Source:      p.Source,
		RawDomains:  p.RawCount,
		Domains:     p.Unique,
		Digest:      p.Digest,
		Chunks:      p.ChunkCount,
		ChunksSent:  o.ChunksSent,
		CountBefore: o.CountBefore,
		CountAfter:  o.CountAfter,
		Delta:       SignedDelta(o.Delta()),
		Deployed:    o.Deployed,
		Status:      "OK",
	}
}

// SignedDelta formats d with an explicit sign; zero is "+0".
func SignedDelta(d int) string {
	if d >= 0 {
		return fmt.Sprintf("+%d", d)
	}
	return fmt.Sprintf("%d", d)
}

// Format names an output renderer.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a --output value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text or json)", s)
	}
}

// Write renders s in format f.
func Write(w io.Writer, f Format, s Summary) error {
	if f == FormatJSON {
		return JSON(w, s)
	}
	return Text(w, s)
}

// JSON writes s as indented JSON.
func JSON(w io.Writer, s Summary) error { return writeJSON(w, s) }

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Text writes the boxed human-readable summary.
func Text(w io.Writer, s Summary) error {
	rule := strings.Repeat("=", 60)
	mode := s.Mode
	if s.CreatedNew {
		mode += " (created)"
	}
	deploy := "NO (pending)"
	if s.Deployed {
		deploy = "YES"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\nSUMMARY\n%s\n", rule, rule)
	row := func(label, format string, args ...any) {
		fmt.Fprintf(&b, "  %-16s%s\n", label+":", fmt.Sprintf(format, args...))
	}
	row("URL list", "%s (id=%s)", s.ListName, s.ListID)
	row("Mode", "%s", mode)
	row("Source", "%s", s.Source)
	row("Domains sent", "%d (%d read)", s.Domains, s.RawDomains)
	if s.Digest != "" {
		row("Set digest", "%s", s.Digest)
	}
	row("Chunks", "%d", s.ChunksSent)
	row("Before", "%d domains", s.CountBefore)
	row("After", "%d domains (%s)", s.CountAfter, s.Delta)
	row("Deploy", "%s", deploy)
	row("Status", "%s", s.Status)
	b.WriteString(rule + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}
