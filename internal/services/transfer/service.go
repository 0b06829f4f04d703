package transfer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"urllistsync/internal/domain"
)

// Request describes one transfer.
type Request struct {
	Name   string
	Mode   domain.Mode
	Create bool
	Deploy bool
}

// Service sends planned chunks to the remote list.
type Service struct {
	api   domain.URLListAPI
	lists domain.Resolver
	log   *zap.Logger
}

// New returns a transfer service writing through api and resolving with
// lists.
func New(api domain.URLListAPI, lists domain.Resolver, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{api: api, lists: lists, log: log}
}

// Run resolves req.Name and sends chunks. On error the returned Outcome
// reflects what had been committed before the failure.
func (s *Service) Run(ctx context.Context, req Request, chunks []domain.Chunk) (domain.Outcome, error) {
	out := domain.Outcome{Mode: req.Mode}
	if out.Mode == "" {
		out.Mode = domain.ModeReplace
	}
	if len(chunks) == 0 {
		return out, domain.ErrNoDomains
	}

	h, found, err := s.lists.Find(ctx, req.Name)
	if err != nil {
		return out, err
	}

	switch {
	case !found && !req.Create:
		return out, fmt.Errorf("%q: %w", req.Name, domain.ErrListNotFound)

	case !found:
		h, err = s.lists.Create(ctx, req.Name, chunks[0])
		if err != nil {
			return out, err
		}
		out.Handle = h
		out.CreatedNew = true
		out.ChunksSent = 1
		if err := s.appendFrom(ctx, &out, chunks, 1); err != nil {
			return out, err
		}

	default:
		out.Handle = h
		if out.CountBefore, err = s.lists.Count(ctx, h); err != nil {
			return out, err
		}
		s.log.Info("current entry count", zap.String("list", h.Name), zap.Int("count", out.CountBefore))

		start := 0
		if out.Mode == domain.ModeReplace {
			s.log.Info("replace chunk",
				zap.Int("chunk", 1), zap.Int("chunks", len(chunks)), zap.Int("domains", len(chunks[0].URLs)))
			if err := s.api.Replace(ctx, h, chunks[0].URLs); err != nil {
				return out, s.aborted(out, len(chunks), fmt.Errorf("replace chunk 1: %w", err))
			}
			out.ChunksSent++
			start = 1
		}
		if err := s.appendFrom(ctx, &out, chunks, start); err != nil {
			return out, err
		}
	}

	if out.CountAfter, err = s.lists.Count(ctx, out.Handle); err != nil {
		return out, err
	}
	s.log.Info("transfer complete",
		zap.String("list", out.Handle.Name),
		zap.Int("chunks_sent", out.ChunksSent),
		zap.Int("count_before", out.CountBefore),
		zap.Int("count_after", out.CountAfter))

	if req.Deploy {
		if err := s.Deploy(ctx); err != nil {
			return out, err
		}
		out.Deployed = true
	}
	return out, nil
}

// Deploy activates pending list changes.
func (s *Service) Deploy(ctx context.Context) error {
	s.log.Info("deploying url list changes")
	if err := s.api.Deploy(ctx); err != nil {
		return err
	}
	s.log.Info("deploy ok")
	return nil
}

func (s *Service) appendFrom(ctx context.Context, out *domain.Outcome, chunks []domain.Chunk, start int) error {
	for i := start; i < len(chunks); i++ {
		c := chunks[i]
		s.log.Info("append chunk",
			zap.Int("chunk", i+1), zap.Int("chunks", len(chunks)), zap.Int("domains", len(c.URLs)))
		if err := s.api.Append(ctx, out.Handle, c.URLs); err != nil {
			return s.aborted(*out, len(chunks), fmt.Errorf("append chunk %d: %w", i+1, err))
		}
		out.ChunksSent++
	}
	return nil
}

func (s *Service) aborted(out domain.Outcome, total int, err error) error {
	s.log.Error("transfer aborted; chunks already sent remain on the list",
		zap.String("list", out.Handle.Name),
		zap.Int("chunks_sent", out.ChunksSent),
		zap.Int("chunks", total),
		zap.Error(err))
	return err
}
