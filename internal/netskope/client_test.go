package netskope_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urllistsync/internal/domain"
	"urllistsync/internal/mockapi"
	"urllistsync/internal/netskope"
)

func newClient(t *testing.T, srv *mockapi.Server) *netskope.Client {
	t.Helper()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	tr, _ := newTransport(t, netskope.BaseURL(ts.URL))
	tr.Token = srv.Token
	return netskope.NewClient(tr)
}

func TestClient_ListAllShapes(t *testing.T) {
	for _, shape := range []mockapi.ListShape{mockapi.ListArray, mockapi.ListData, mockapi.ListURLLists} {
		srv := mockapi.New("tok")
		srv.ListShape = shape
		srv.Seed("UL-a", "a.pl")
		srv.Seed("UL-b")
		c := newClient(t, srv)

		got, err := c.ListAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []domain.ListSummary{{ID: "1", Name: "UL-a"}, {ID: "2", Name: "UL-b"}}, got)
	}
}

func TestClient_CreateShapes(t *testing.T) {
	for _, shape := range []mockapi.CreateShape{mockapi.CreateDirect, mockapi.CreateWrapped, mockapi.CreateListTail} {
		srv := mockapi.New("tok")
		srv.Seed("other")
		srv.CreateShape = shape
		c := newClient(t, srv)

		h, err := c.Create(context.Background(), "UL-new", []string{"a.pl", "b.pl"})
		require.NoError(t, err, "shape %d", shape)
		assert.Equal(t, domain.ListHandle{ID: "2", Name: "UL-new"}, h)

		l, ok := srv.Get("UL-new")
		require.True(t, ok)
		assert.Equal(t, []string{"a.pl", "b.pl"}, l.URLs)
		assert.Equal(t, "exact", l.Type)
	}
}

func TestClient_CreateWithoutIDIsMalformed(t *testing.T) {
	srv := mockapi.New("tok")
	srv.CreateShape = mockapi.CreateNoID
	c := newClient(t, srv)

	_, err := c.Create(context.Background(), "UL-new", []string{"a.pl"})
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestClient_ReplaceAppendCount(t *testing.T) {
	srv := mockapi.New("tok")
	id := srv.Seed("UL", "old.pl")
	require.Equal(t, 1, id)
	c := newClient(t, srv)
	ctx := context.Background()
	h := domain.ListHandle{ID: "1", Name: "UL"}

	n, ok, err := c.Count(ctx, h)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, n)

	require.NoError(t, c.Replace(ctx, h, []string{"a.pl"}))
	require.NoError(t, c.Append(ctx, h, []string{"b.pl", "a.pl"}))

	n, _, err = c.Count(ctx, h)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	calls := srv.Calls()
	require.Len(t, calls, 4)
	assert.Equal(t, mockapi.Call{Method: http.MethodPut, Path: "/api/v2/policy/urllist/1", URLs: 1}, calls[1])
	assert.Equal(t, mockapi.Call{Method: http.MethodPatch, Path: "/api/v2/policy/urllist/1/append", URLs: 2}, calls[2])
}

func TestClient_EmptyChunkEncodesArray(t *testing.T) {
	srv := mockapi.New("tok")
	srv.Seed("UL", "old.pl")
	c := newClient(t, srv)

	require.NoError(t, c.Replace(context.Background(), domain.ListHandle{ID: "1", Name: "UL"}, nil))
	l, _ := srv.Get("UL")
	assert.Empty(t, l.URLs)
}

func TestClient_Deploy(t *testing.T) {
	srv := mockapi.New("tok")
	c := newClient(t, srv)
	require.NoError(t, c.Deploy(context.Background()))
	assert.Equal(t, 1, srv.Deploys())
}

func TestClient_BadToken(t *testing.T) {
	srv := mockapi.New("tok")
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()
	tr, _ := newTransport(t, netskope.BaseURL(ts.URL))
	tr.Token = "wrong"

	_, err := netskope.NewClient(tr).ListAll(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
