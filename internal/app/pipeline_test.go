package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"urllistsync/internal/app"
	"urllistsync/internal/domain"
	"urllistsync/internal/mockapi"
	"urllistsync/internal/retry"
)

const (
	token    = "tok"
	listName = "UL-test"
	// 100-byte envelope plus two 17-byte entries: six domains plan as
	// three chunks.
	twoPerChunk = 134
)

var wantSet = []string{
	"d1.example.pl", "d2.example.pl", "d3.example.pl",
	"d4.example.pl", "d5.example.pl", "d6.example.pl",
}

const sourceCSV = "Lp;AdresDomeny;DataWpisu\n" +
	"1;https://D3.example.pl/;2024-01-01\n" +
	"2;d1.example.pl;2024-01-01\n" +
	"3;d2.example.pl;2024-01-01\n" +
	"4;d6.example.pl;2024-01-01\n" +
	"5;  ;2024-01-01\n" +
	"6;d4.example.pl;2024-01-01\n" +
	"7;http://d5.example.pl;2024-01-01\n" +
	"8;d1.example.pl;2024-01-02\n"

type harness struct {
	srv *mockapi.Server
	cfg app.Config
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	srv := mockapi.New(token)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	src := filepath.Join(t.TempDir(), "domains.csv")
	require.NoError(t, os.WriteFile(src, []byte(sourceCSV), 0o600))

	cfg := app.Default()
	cfg.Tenant = ts.URL
	cfg.Token = token
	cfg.List = listName
	cfg.Source = src
	cfg.ChunkBudget = twoPerChunk
	cfg.HTTP = ts.Client()
	cfg.Sleep = func(context.Context, time.Duration) error { return nil }
	return &harness{srv: srv, cfg: cfg}
}

func (h *harness) methods() []string {
	var out []string
	for _, c := range h.srv.Calls() {
		m := c.Method
		if strings.HasSuffix(c.Path, "/deploy") {
			m = "DEPLOY"
		}
		out = append(out, m)
	}
	return out
}

func TestPlanSource(t *testing.T) {
	h := newHarness(t)
	h.cfg.Tenant, h.cfg.Token = "", ""
	w, err := app.NewWire(h.cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	plan, err := w.PlanSource(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, plan.Raw)
	if diff := cmp.Diff(wantSet, []string(plan.Set)); diff != "" {
		t.Fatalf("set mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, plan.Chunks, 3)
	assert.Len(t, plan.Digest, 20)
	assert.Empty(t, h.srv.Calls())
}

func TestSync_Replace(t *testing.T) {
	h := newHarness(t)
	h.srv.Seed(listName, "old.example.pl", "d1.example.pl")

	w, err := app.NewWire(h.cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	s, err := w.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"GET", "GET", "PUT", "PATCH", "PATCH", "GET"}, h.methods())
	assert.Equal(t, "REPLACE", s.Mode)
	assert.Equal(t, 3, s.ChunksSent)
	assert.Equal(t, 2, s.CountBefore)
	assert.Equal(t, 6, s.CountAfter)
	assert.Equal(t, "+4", s.Delta)
	assert.Equal(t, 7, s.RawDomains)
	assert.Equal(t, 6, s.Domains)
	assert.Equal(t, "1", s.ListID)
	assert.False(t, s.Deployed)

	got, ok := h.srv.Get(listName)
	require.True(t, ok)
	assert.Equal(t, wantSet, got.URLs)
}

func TestSync_Append(t *testing.T) {
	h := newHarness(t)
	h.cfg.Append = true
	h.srv.Seed(listName, "old.example.pl")

	w, err := app.NewWire(h.cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	s, err := w.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"GET", "GET", "PATCH", "PATCH", "PATCH", "GET"}, h.methods())
	assert.Equal(t, "APPEND", s.Mode)
	assert.Equal(t, 1, s.CountBefore)
	assert.Equal(t, 7, s.CountAfter)
	assert.Equal(t, "+6", s.Delta)
}

func TestSync_MissingList(t *testing.T) {
	h := newHarness(t)
	h.srv.Seed("UL-other")

	w, err := app.NewWire(h.cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	s, err := w.Sync(context.Background())
	require.ErrorIs(t, err, domain.ErrListNotFound)
	assert.Equal(t, []string{"GET"}, h.methods())
	assert.Zero(t, s)
}

func TestSync_CreateAndDeploy(t *testing.T) {
	h := newHarness(t)
	h.cfg.Create = true
	h.cfg.Deploy = true

	w, err := app.NewWire(h.cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	s, err := w.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"GET", "POST", "PATCH", "PATCH", "GET", "DEPLOY"}, h.methods())
	assert.True(t, s.CreatedNew)
	assert.Equal(t, 0, s.CountBefore)
	assert.Equal(t, 6, s.CountAfter)
	assert.True(t, s.Deployed)
	assert.Equal(t, 1, h.srv.Deploys())
}

func TestSync_TransientErrorsRetried(t *testing.T) {
	h := newHarness(t)
	h.srv.Seed(listName)
	h.srv.FailNext(http.MethodPatch, http.StatusTooManyRequests, 2)

	w, err := app.NewWire(h.cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	s, err := w.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, s.CountAfter)
}

func TestSync_AlwaysUnavailable(t *testing.T) {
	h := newHarness(t)
	h.srv.Seed(listName)
	h.srv.FailNext("", http.StatusServiceUnavailable, 100)
	h.cfg.MetricsFile = filepath.Join(t.TempDir(), "urllistsync.prom")

	w, err := app.NewWire(h.cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	s, err := w.Sync(context.Background())
	require.ErrorIs(t, err, retry.ErrExhausted)
	assert.Zero(t, s)
	assert.Len(t, h.srv.Calls(), 0)

	prom, err := os.ReadFile(h.cfg.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `urllistsync_last_run_success{list="UL-test"} 0`)
	assert.Contains(t, string(prom), `urllistsync_api_requests_total{code="5xx",list="UL-test",method="GET"} 3`)
}

func TestSync_BadToken(t *testing.T) {
	h := newHarness(t)
	h.cfg.Token = "wrong"

	w, err := app.NewWire(h.cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	_, err = w.Sync(context.Background())
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestListNamesAndDeploy(t *testing.T) {
	h := newHarness(t)
	h.srv.Seed("UL-b")
	h.srv.Seed("UL-a")

	w, err := app.NewWire(h.cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	names, err := w.ListNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"UL-a", "UL-b"}, names)

	require.NoError(t, w.Deploy(context.Background()))
	assert.Equal(t, 1, h.srv.Deploys())
}
