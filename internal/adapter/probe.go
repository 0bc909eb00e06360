package adapter

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/anikeenko/psysync/internal/config"
)

// httpProbe checks reachability of the commit API with a HEAD request
// against its health endpoint. Any HTTP response at all counts as online;
// only transport-level failures count as offline.
type httpProbe struct {
	client *resty.Client
}

// NewHTTPProbe returns a [ConnectivityProbe] for the configured commit API.
func NewHTTPProbe(cfg config.ClientAdapter) ConnectivityProbe {
	timeout := cfg.RequestTimeout
	if timeout > 5*time.Second {
		// A hung probe must not stall the monitor tick.
		timeout = 5 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout)

	return &httpProbe{client: cli}
}

func (p *httpProbe) Online(ctx context.Context) bool {
	_, err := p.client.R().SetContext(ctx).Head("/api/health")
	return err == nil
}
