package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"urllistsync/internal/mockapi"
)

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := accessLog(zap.New(core), mockapi.New("tok").Handler())

	req := httptest.NewRequest(http.MethodGet, "/api/v2/policy/urllist", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.EqualValues(t, http.StatusUnauthorized, fields["status"])
}

func TestServe_UnknownShape(t *testing.T) {
	createShape, listShape = "bogus", "array"
	t.Cleanup(func() { createShape = "direct" })
	err := serve(context.Background(), zaptest.NewLogger(t))
	require.Error(t, err)
}

func TestServe_StopsOnCancel(t *testing.T) {
	addr, createShape, listShape, seeds = "127.0.0.1:0", "direct", "array", []string{"UL-a"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, serve(ctx, zaptest.NewLogger(t)))
}
