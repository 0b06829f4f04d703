// Package chunk partitions a domain set into write requests that fit a
// byte budget.
//
// Plan is greedy. Each entry costs its exact JSON-encoded length plus two
// bytes for the separator and headroom, and every chunk starts at the
// envelope size. The estimate is never below the encoder's real output.
// An entry that exceeds the budget on its own still gets a chunk of its
// own; nothing is dropped.
package chunk
