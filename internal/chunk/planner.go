package chunk

import (
	"encoding/json"

	"urllistsync/internal/domain"
)

const (
	// DefaultBudget is the API's per-request body limit, 7 MiB.
	DefaultBudget = 7 * 1024 * 1024
	// DefaultEnvelope is the minimum size reserved for the JSON envelope.
	DefaultEnvelope = 100

	entryOverhead = 2
)

// Options tune Plan. Zero values select the defaults.
type Options struct {
	Budget   int
	Envelope int
}

func (o Options) withDefaults() Options {
	if o.Budget <= 0 {
		o.Budget = DefaultBudget
	}
	if o.Envelope < DefaultEnvelope {
		o.Envelope = DefaultEnvelope
	}
	return o
}

// EntrySize is the planned cost of one entry inside the urls array.
func EntrySize(d string) int {
	return quotedLen(d) + entryOverhead
}

// EncodedSize is the length of set encoded as a bare JSON array.
func EncodedSize(set []string) int {
	n := 2
	for i, d := range set {
		if i > 0 {
			n++
		}
		n += quotedLen(d)
	}
	return n
}

func quotedLen(s string) int {
	b, err := json.Marshal(s)
	if err != nil {
		// Strings always marshal; keep a safe upper bound regardless.
		return 6*len(s) + 2
	}
	return len(b)
}

// Plan splits set into ordered chunks. Concatenating the chunks yields set
// exactly. An empty set yields no chunks.
func Plan(set domain.DomainSet, opts Options) []domain.Chunk {
	opts = opts.withDefaults()

	var chunks []domain.Chunk
	start, size := 0, opts.Envelope
	for i, d := range set {
		es := EntrySize(d)
		if i > start && size+es > opts.Budget {
			chunks = append(chunks, domain.Chunk{URLs: set[start:i:i], Size: size})
			start, size = i, opts.Envelope
		}
		size += es
	}
	if start < len(set) {
		chunks = append(chunks, domain.Chunk{URLs: set[start:len(set):len(set)], Size: size})
	}
	return chunks
}
