// Package transfer drives the write sequence for one URL list.
//
// High-level flow:
//   - Resolve the list by name. A missing list is fatal unless creation
//     was requested; then chunk 1 seeds the new list and the rest are
//     appended.
//   - An existing list in append mode gets every chunk appended.
//   - An existing list in replace mode gets chunk 1 via PUT, which resets
//     its contents, and the rest appended.
//   - Read the entry count again and optionally deploy.
//
// Chunks are sent one at a time, in order. Retrying a single call is the
// transport's job; a chunk that still fails aborts the run. Chunks already
// sent stay on the remote side; rerunning in append mode is the recovery.
package transfer
