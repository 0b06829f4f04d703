package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"urllistsync/internal/chunk"
	"urllistsync/internal/domain"
	"urllistsync/internal/netskope"
	"urllistsync/internal/report"
	"urllistsync/internal/retry"
)

// Environment variables read by ApplyEnv.
const (
	EnvConfig  = "URLLISTSYNC_CONFIG"
	EnvToken   = "URLLISTSYNC_TOKEN"
	EnvTenant  = "URLLISTSYNC_TENANT"
	EnvList    = "URLLISTSYNC_LIST"
	EnvRetries = "URLLISTSYNC_MAX_ATTEMPTS"
)

// RetryConfig tunes the per-call retry policy.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	BaseDelay   time.Duration `yaml:"base_delay"`
}

// Config holds runtime options for one invocation.
type Config struct {
	Tenant string `yaml:"tenant"` // tenant host, e.g. acme.goskope.com
	Token  string `yaml:"token"`
	List   string `yaml:"list"`
	Source string `yaml:"source"` // file path or http(s) URL

	Append   bool `yaml:"append"`
	Create   bool `yaml:"create"`
	Deploy   bool `yaml:"deploy"`
	Punycode bool `yaml:"punycode"`

	ChunkBudget int           `yaml:"chunk_budget"`
	Timeout     time.Duration `yaml:"timeout"`
	Retry       RetryConfig   `yaml:"retry"`
	UserAgent   string        `yaml:"user_agent"`

	Output      string `yaml:"output"`
	MetricsFile string `yaml:"metrics_file"`

	HTTP *http.Client `yaml:"-"` // optional; built from Timeout when nil
	// Sleep replaces the retry wait. Tests use it to skip backoff.
	Sleep func(ctx context.Context, d time.Duration) error `yaml:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ChunkBudget: chunk.DefaultBudget,
		Timeout:     netskope.DefaultTimeout,
		Retry: RetryConfig{
			MaxAttempts: retry.DefaultMaxAttempts,
			BaseDelay:   retry.DefaultBaseDelay,
		},
		UserAgent: "urllistsync/1.0",
		Output:    string(report.FormatText),
	}
}

// LoadFile reads a YAML config over the defaults. An empty path returns the
// defaults unchanged. Unknown keys are rejected.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays non-empty environment values.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	c.Token = envOr(getenv, EnvToken, c.Token)
	c.Tenant = envOr(getenv, EnvTenant, c.Tenant)
	c.List = envOr(getenv, EnvList, c.List)
	if v := getenv(EnvRetries); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Retry.MaxAttempts = n
		}
	}
}

func envOr(getenv func(string) string, key, def string) string {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		return v
	}
	return def
}

// Mode maps the append flag to a transfer mode.
func (c Config) Mode() domain.Mode {
	if c.Append {
		return domain.ModeAppend
	}
	return domain.ModeReplace
}

// RetryPolicy builds the per-call policy.
func (c Config) RetryPolicy() retry.Policy {
	p := retry.Default()
	if c.Retry.MaxAttempts > 0 {
		p.MaxAttempts = c.Retry.MaxAttempts
	}
	if c.Retry.BaseDelay > 0 {
		p.BaseDelay = c.Retry.BaseDelay
	}
	if c.Sleep != nil {
		p.Sleep = c.Sleep
	}
	return p
}

// ValidateSource checks what the plan step needs.
func (c Config) ValidateSource() error {
	if strings.TrimSpace(c.Source) == "" {
		return errors.New("source required (-s)")
	}
	if c.ChunkBudget < 0 {
		return fmt.Errorf("chunk budget must be positive, got %d", c.ChunkBudget)
	}
	if _, err := report.ParseFormat(c.Output); err != nil {
		return err
	}
	return nil
}

// ValidateAPI checks what any API call needs.
func (c Config) ValidateAPI() error {
	var missing []string
	if strings.TrimSpace(c.Tenant) == "" {
		missing = append(missing, "tenant (-n)")
	}
	if strings.TrimSpace(c.Token) == "" {
		missing = append(missing, "token (-t or "+EnvToken+")")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateSync checks a full sync run.
func (c Config) ValidateSync() error {
	if err := c.ValidateSource(); err != nil {
		return err
	}
	if strings.TrimSpace(c.List) == "" {
		return errors.New("url list name required (-l)")
	}
	return c.ValidateAPI()
}
