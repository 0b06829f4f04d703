package domains

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"urllistsync/internal/domain"
	"urllistsync/internal/retry"
)

// Loader reads a domain source from disk or over HTTP.
type Loader struct {
	HTTP       *http.Client
	Policy     retry.Policy
	Normalizer Normalizer
	UserAgent  string
	Log        *zap.Logger
}

var _ domain.Source = (*Loader)(nil)

// IsURL reports whether source names an http(s) endpoint.
func IsURL(source string) bool {
	return stripScheme(source) != source
}

// Load returns the valid entries of source in order, duplicates included.
func (l *Loader) Load(ctx context.Context, source string) ([]string, error) {
	log := l.logger()
	var (
		out []string
		err error
	)
	if IsURL(source) {
		out, err = l.loadURL(ctx, source)
	} else {
		out, err = l.loadFile(source)
	}
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w in %s", domain.ErrNoDomains, source)
	}
	log.Debug("source loaded", zap.String("source", source), zap.Int("entries", len(out)))
	return out, nil
}

func (l *Loader) loadFile(path string) ([]string, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, path)
	}
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", domain.ErrSourceNotFound, path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := strings.ToValidUTF8(string(b), "\uFFFD")

	if out, ok := l.Normalizer.ParseTable(text); ok {
		return out, nil
	}
	l.logger().Warn("no "+DomainColumn+" column found; reading file as plain text, one domain per line",
		zap.String("path", path))
	return l.Normalizer.ParsePlain(text), nil
}

func (l *Loader) loadURL(ctx context.Context, url string) ([]string, error) {
	l.logger().Info("fetching domains", zap.String("url", url))
	client := l.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	p := l.policy()

	body, err := retry.Do(ctx, p, func(ctx context.Context, _ int) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		if l.UserAgent != "" {
			req.Header.Set("User-Agent", l.UserAgent)
		}
		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, retry.Retryable(fmt.Errorf("fetch %s: %w", url, err))
		}
		defer resp.Body.Close()
		if resp.StatusCode/100 != 2 {
			err := fmt.Errorf("fetch %s: %s", url, resp.Status)
			if p.IsRetryableStatus(resp.StatusCode) {
				return nil, retry.Retryable(err)
			}
			return nil, err
		}
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, retry.Retryable(fmt.Errorf("read %s: %w", url, err))
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return l.Normalizer.ParsePlain(strings.ToValidUTF8(string(body), "\uFFFD")), nil
}

func (l *Loader) policy() retry.Policy {
	p := l.Policy
	if p.MaxAttempts == 0 {
		p = retry.Default()
	}
	if p.OnRetry == nil {
		log := l.logger()
		p.OnRetry = func(attempt int, wait time.Duration, err error) {
			log.Warn("source fetch failed, retrying",
				zap.Int("attempt", attempt), zap.Duration("wait", wait), zap.Error(err))
		}
	}
	return p
}

func (l *Loader) logger() *zap.Logger {
	if l.Log == nil {
		return zap.NewNop()
	}
	return l.Log
}
