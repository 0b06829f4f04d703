package report

import (
	"fmt"
	"io"
	"strings"

	"urllistsync/internal/domain"
)

// ChunkView is one planned chunk.
type ChunkView struct {
	Domains int `json:"domains"`
	Bytes   int `json:"bytes"`
}

// PlanView is the dry-run result of the plan command.
type PlanView struct {
	Source       string      `json:"source"`
	List         string      `json:"list,omitempty"`
	RawDomains   int         `json:"raw_domains"`
	Domains      int         `json:"domains"`
	Digest       string      `json:"digest"`
	PayloadBytes int         `json:"payload_bytes"`
	Chunks       []ChunkView `json:"chunks"`
}

// NewPlanView describes chunks for display.
func NewPlanView(p Params, list string, payload int, chunks []domain.Chunk) PlanView {
	v := PlanView{
		Source:       p.Source,
		List:         list,
		RawDomains:   p.RawCount,
		Domains:      p.Unique,
		Digest:       p.Digest,
		PayloadBytes: payload,
		Chunks:       make([]ChunkView, 0, len(chunks)),
	}
	for _, c := range chunks {
		v.Chunks = append(v.Chunks, ChunkView{Domains: len(c.URLs), Bytes: c.Size})
	}
	return v
}

// WritePlan renders v in format f.
func WritePlan(w io.Writer, f Format, v PlanView) error {
	if f == FormatJSON {
		return writeJSON(w, v)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "source:  %s\n", v.Source)
	if v.List != "" {
		fmt.Fprintf(&b, "list:    %s\n", v.List)
	}
	fmt.Fprintf(&b, "domains: %d (%d read)\n", v.Domains, v.RawDomains)
	fmt.Fprintf(&b, "digest:  %s\n", v.Digest)
	fmt.Fprintf(&b, "payload: %.2f MiB in %d chunk(s)\n", float64(v.PayloadBytes)/(1024*1024), len(v.Chunks))
	for i, c := range v.Chunks {
		fmt.Fprintf(&b, "  chunk %-4d %8d domains %10d bytes\n", i+1, c.Domains, c.Bytes)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
