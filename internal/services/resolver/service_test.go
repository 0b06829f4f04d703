package resolver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"urllistsync/internal/domain"
	"urllistsync/internal/services/resolver"
)

type stubAPI struct {
	domain.URLListAPI // unused methods panic

	lists   []domain.ListSummary
	listErr error
	count   int
	countOK bool
	created []string
}

func (s *stubAPI) ListAll(context.Context) ([]domain.ListSummary, error) { return s.lists, s.listErr }

func (s *stubAPI) Count(context.Context, domain.ListHandle) (int, bool, error) {
	return s.count, s.countOK, nil
}

func (s *stubAPI) Create(_ context.Context, name string, urls []string) (domain.ListHandle, error) {
	s.created = urls
	return domain.ListHandle{ID: "5", Name: name}, nil
}

func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestFind_ExactMatch(t *testing.T) {
	api := &stubAPI{lists: []domain.ListSummary{{ID: "1", Name: "ul"}, {ID: "2", Name: "UL"}, {ID: "3", Name: "UL"}}}
	h, found, err := resolver.New(api, nil).Find(context.Background(), "UL")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, domain.ListHandle{ID: "2", Name: "UL"}, h)
}

func TestFind_NotFoundLogsAvailable(t *testing.T) {
	log, logs := observed()
	api := &stubAPI{lists: []domain.ListSummary{{ID: "1", Name: "zeta"}, {ID: "2", Name: "alpha"}}}
	_, found, err := resolver.New(api, log).Find(context.Background(), "UL")
	require.NoError(t, err)
	assert.False(t, found)

	entries := logs.FilterMessage("available url lists").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "alpha, zeta", entries[0].ContextMap()["names"])
}

func TestFind_NoListsAtAll(t *testing.T) {
	log, logs := observed()
	_, found, err := resolver.New(&stubAPI{}, log).Find(context.Background(), "UL")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "(none)", logs.FilterMessage("available url lists").All()[0].ContextMap()["names"])
}

func TestFind_MatchWithoutID(t *testing.T) {
	api := &stubAPI{lists: []domain.ListSummary{{Name: "UL"}}}
	_, _, err := resolver.New(api, nil).Find(context.Background(), "UL")
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestFind_PropagatesError(t *testing.T) {
	api := &stubAPI{listErr: domain.ErrUnauthorized}
	_, _, err := resolver.New(api, nil).Find(context.Background(), "UL")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCount_MalformedIsZero(t *testing.T) {
	api := &stubAPI{count: 12, countOK: false}
	n, err := resolver.New(api, nil).Count(context.Background(), domain.ListHandle{ID: "1"})
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	api.countOK = true
	n, err = resolver.New(api, nil).Count(context.Background(), domain.ListHandle{ID: "1"})
	require.NoError(t, err)
	assert.Equal(t, 12, n)
}

func TestCreate_SeedsWithChunk(t *testing.T) {
	api := &stubAPI{}
	h, err := resolver.New(api, nil).Create(context.Background(), "UL", domain.Chunk{URLs: []string{"a.pl"}})
	require.NoError(t, err)
	assert.Equal(t, "5", h.ID)
	assert.Equal(t, []string{"a.pl"}, api.created)
}

func TestAvailable_Sorted(t *testing.T) {
	api := &stubAPI{lists: []domain.ListSummary{{Name: "b"}, {Name: "a"}}}
	names, err := resolver.New(api, nil).Available(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	_, err = resolver.New(&stubAPI{listErr: errors.New("x")}, nil).Available(context.Background())
	assert.Error(t, err)
}
