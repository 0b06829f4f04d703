package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"urllistsync/internal/mockapi"
)

var (
	addr        string
	token       string
	seeds       []string
	createShape string
	listShape   string
)

var createShapes = map[string]mockapi.CreateShape{
	"direct":    mockapi.CreateDirect,
	"wrapped":   mockapi.CreateWrapped,
	"list-tail": mockapi.CreateListTail,
	"no-id":     mockapi.CreateNoID,
}

var listShapes = map[string]mockapi.ListShape{
	"array":    mockapi.ListArray,
	"data":     mockapi.ListData,
	"urllists": mockapi.ListURLLists,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "mockapi",
		Short:        "Serve an in-memory Netskope URL list API",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer func() { _ = log.Sync() }()
			return serve(cmd.Context(), log)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&token, "token", "dev-token", "bearer token to accept")
	cmd.Flags().StringSliceVar(&seeds, "seed", nil, "list names to create at startup")
	cmd.Flags().StringVar(&createShape, "create-shape", "direct", "create reply: direct, wrapped, list-tail or no-id")
	cmd.Flags().StringVar(&listShape, "list-shape", "array", "list-all reply: array, data or urllists")
	return cmd
}

func serve(ctx context.Context, log *zap.Logger) error {
	srv := mockapi.New(token)
	var ok bool
	if srv.CreateShape, ok = createShapes[createShape]; !ok {
		return fmt.Errorf("unknown --create-shape %q", createShape)
	}
	if srv.ListShape, ok = listShapes[listShape]; !ok {
		return fmt.Errorf("unknown --list-shape %q", listShape)
	}
	for _, name := range seeds {
		id := srv.Seed(name)
		log.Info("seeded url list", zap.String("name", name), zap.Int("id", id))
	}

	hs := &http.Server{
		Addr:              addr,
		Handler:           accessLog(log, srv.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- hs.ListenAndServe() }()
	log.Info("mock api listening", zap.String("addr", addr), zap.String("base", "/api/v2"))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("mock api stopped")
	return nil
}

func accessLog(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)))
	})
}
