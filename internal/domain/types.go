package domain

// DomainSet is the deduplicated, ascending-sorted set of normalized domains
// for one run. Callers treat it as immutable once built.
type DomainSet []string

// Len returns the number of unique domains.
func (s DomainSet) Len() int { return len(s) }

// Chunk is an ordered sub-sequence of a DomainSet sent in one write request.
type Chunk struct {
	URLs []string
	// Size is the planner's estimate of the serialized request body.
	Size int
}

// ListHandle identifies a remote URL list once resolved or created.
type ListHandle struct {
	ID   string
	Name string
}

// Mode selects how an existing list is written.
type Mode string

const (
	// ModeReplace overwrites the list with chunk 1, then appends the rest.
	ModeReplace Mode = "replace"
	// ModeAppend appends every chunk and keeps existing entries.
	ModeAppend Mode = "append"
)

// String returns the upper-case label used in summaries.
func (m Mode) String() string {
	switch m {
	case ModeAppend:
		return "APPEND"
	default:
		return "REPLACE"
	}
}

// Outcome accumulates what a transfer did. The orchestrator builds it;
// the reporter only reads it.
type Outcome struct {
	Handle      ListHandle
	Mode        Mode
	CreatedNew  bool
	ChunksSent  int
	CountBefore int
	CountAfter  int
	Deployed    bool
}

// Delta is CountAfter minus CountBefore.
func (o Outcome) Delta() int { return o.CountAfter - o.CountBefore }
