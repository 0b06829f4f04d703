package resolver

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"urllistsync/internal/domain"
)

// Service resolves list names against the remote API.
type Service struct {
	api domain.URLListAPI
	log *zap.Logger
}

// New returns a resolver over api.
func New(api domain.URLListAPI, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{api: api, log: log}
}

var _ domain.Resolver = (*Service)(nil)

// Find returns the first list whose name matches exactly. When none does,
// the available names are logged so the operator can spot a typo.
func (s *Service) Find(ctx context.Context, name string) (domain.ListHandle, bool, error) {
	lists, err := s.api.ListAll(ctx)
	if err != nil {
		return domain.ListHandle{}, false, fmt.Errorf("list url lists: %w", err)
	}
	for _, l := range lists {
		if l.Name != name {
			continue
		}
		if l.ID == "" {
			return domain.ListHandle{}, false, fmt.Errorf("url list %q has no id: %w", name, domain.ErrMalformedResponse)
		}
		s.log.Info("found url list", zap.String("name", name), zap.String("id", l.ID))
		return domain.ListHandle{ID: l.ID, Name: l.Name}, true, nil
	}

	available := "(none)"
	if names := sortedNames(lists); len(names) > 0 {
		available = strings.Join(names, ", ")
	}
	s.log.Warn("url list does not exist", zap.String("name", name))
	s.log.Info("available url lists", zap.String("names", available))
	return domain.ListHandle{}, false, nil
}

// Create makes a new exact-match list seeded with first.
func (s *Service) Create(ctx context.Context, name string, first domain.Chunk) (domain.ListHandle, error) {
	s.log.Info("creating url list with first chunk", zap.String("name", name), zap.Int("domains", len(first.URLs)))
	h, err := s.api.Create(ctx, name, first.URLs)
	if err != nil {
		return domain.ListHandle{}, fmt.Errorf("create url list %q: %w", name, err)
	}
	s.log.Info("created url list",
		zap.String("name", h.Name), zap.String("id", h.ID), zap.Int("domains", len(first.URLs)))
	return h, nil
}

// Count returns the list's entry count. A malformed body counts as zero.
func (s *Service) Count(ctx context.Context, h domain.ListHandle) (int, error) {
	n, ok, err := s.api.Count(ctx, h)
	if err != nil {
		return 0, fmt.Errorf("count url list %q: %w", h.Name, err)
	}
	if !ok {
		s.log.Warn("could not read entry count; treating as 0", zap.String("id", h.ID))
		return 0, nil
	}
	return n, nil
}

// Available returns the sorted list names.
func (s *Service) Available(ctx context.Context) ([]string, error) {
	lists, err := s.api.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list url lists: %w", err)
	}
	return sortedNames(lists), nil
}

func sortedNames(lists []domain.ListSummary) []string {
	names := make([]string, 0, len(lists))
	for _, l := range lists {
		names = append(names, l.Name)
	}
	slices.Sort(names)
	return names
}
