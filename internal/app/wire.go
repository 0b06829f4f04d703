package app

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"urllistsync/internal/domains"
	"urllistsync/internal/metrics"
	"urllistsync/internal/netskope"
	resolversvc "urllistsync/internal/services/resolver"
	transfersvc "urllistsync/internal/services/transfer"
)

// Wire bundles the loader, API client, services and metrics for the CLI.
type Wire struct {
	Config    Config
	Log       *zap.Logger
	HTTP      *http.Client
	Loader    *domains.Loader
	Transport *netskope.Transport
	API       *netskope.Client
	Lists     *resolversvc.Service
	Transfer  *transfersvc.Service
	Metrics   *metrics.Run

	now func() time.Time
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config, log *zap.Logger) (*Wire, error) {
	if log == nil {
		log = zap.NewNop()
	}
	now := time.Now

	httpClient := cfg.HTTP
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = netskope.DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	policy := cfg.RetryPolicy()

	loader := &domains.Loader{
		HTTP:       httpClient,
		Policy:     policy,
		Normalizer: domains.Normalizer{Punycode: cfg.Punycode},
		UserAgent:  cfg.UserAgent,
		Log:        log.Named("source"),
	}

	run := metrics.New(cfg.List, now())

	tr := netskope.NewTransport(netskope.BaseURL(cfg.Tenant), cfg.Token, httpClient)
	tr.Policy = policy
	tr.Log = log.Named("api")
	tr.Observe = run.ObserveRequest

	api := netskope.NewClient(tr)
	lists := resolversvc.New(api, log.Named("resolver"))
	xfer := transfersvc.New(api, lists, log.Named("transfer"))

	return &Wire{
		Config:    cfg,
		Log:       log,
		HTTP:      httpClient,
		Loader:    loader,
		Transport: tr,
		API:       api,
		Lists:     lists,
		Transfer:  xfer,
		Metrics:   run,
		now:       now,
	}, nil
}
