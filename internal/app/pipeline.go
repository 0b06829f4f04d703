package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"urllistsync/internal/chunk"
	"urllistsync/internal/digest"
	"urllistsync/internal/domain"
	"urllistsync/internal/domains"
	"urllistsync/internal/netskope"
	"urllistsync/internal/report"
	transfersvc "urllistsync/internal/services/transfer"
)

const mib = 1024 * 1024

// Plan is a loaded, deduplicated and chunked source.
type Plan struct {
	Source  string
	Raw     int
	Set     domain.DomainSet
	Digest  string
	Payload int // bytes of the set as one JSON array
	Chunks  []domain.Chunk
}

// PlanSource loads the configured source and splits it into chunks. It
// makes no API calls.
func (w *Wire) PlanSource(ctx context.Context) (Plan, error) {
	cfg := w.Config
	entries, err := w.Loader.Load(ctx, cfg.Source)
	if err != nil {
		return Plan{}, err
	}
	set := domains.NewSet(entries)
	w.Log.Info(fmt.Sprintf("%d domains (%d unique)", len(entries), set.Len()),
		zap.String("source", cfg.Source))

	p := Plan{
		Source:  cfg.Source,
		Raw:     len(entries),
		Set:     set,
		Digest:  digest.Fingerprint(set),
		Payload: chunk.EncodedSize(set),
	}
	p.Chunks = chunk.Plan(set, chunk.Options{
		Budget:   cfg.ChunkBudget,
		Envelope: netskope.EnvelopeSize(cfg.List),
	})
	w.Log.Info(fmt.Sprintf("payload %.2f MiB -> %d chunk(s)", float64(p.Payload)/mib, len(p.Chunks)),
		zap.String("digest", p.Digest))
	return p, nil
}

// Sync runs load, plan and transfer, and returns the summary of a
// completed run. Metrics are written whether or not the run succeeds.
func (w *Wire) Sync(ctx context.Context) (report.Summary, error) {
	s, err := w.sync(ctx)
	w.Metrics.Finish(err, w.now())
	if path := w.Config.MetricsFile; path != "" {
		if werr := w.Metrics.WriteTextfile(path); werr != nil {
			w.Log.Warn("could not write metrics file", zap.String("path", path), zap.Error(werr))
		}
	}
	return s, err
}

func (w *Wire) sync(ctx context.Context) (report.Summary, error) {
	cfg := w.Config
	plan, err := w.PlanSource(ctx)
	if err != nil {
		return report.Summary{}, err
	}
	w.Metrics.ObservePlan(plan.Set.Len(), len(plan.Chunks))

	out, err := w.Transfer.Run(ctx, transfersvc.Request{
		Name:   cfg.List,
		Mode:   cfg.Mode(),
		Create: cfg.Create,
		Deploy: cfg.Deploy,
	}, plan.Chunks)
	w.Metrics.ObserveOutcome(out)
	if err != nil {
		return report.Summary{}, err
	}
	return report.Build(out, report.Params{
		Source:     plan.Source,
		RawCount:   plan.Raw,
		Unique:     plan.Set.Len(),
		Digest:     plan.Digest,
		ChunkCount: len(plan.Chunks),
	}), nil
}

// ListNames returns the sorted names of the tenant's URL lists.
func (w *Wire) ListNames(ctx context.Context) ([]string, error) {
	return w.Lists.Available(ctx)
}

// Deploy triggers a deploy of pending changes.
func (w *Wire) Deploy(ctx context.Context) error {
	return w.Transfer.Deploy(ctx)
}
