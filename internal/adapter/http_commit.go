package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/anikeenko/psysync/internal/config"
)

// Sync-item kinds produced by the platform UI and the commit endpoint each
// maps to. One endpoint per kind; the payload travels verbatim as the JSON
// body and any non-2xx response feeds the retry path.
const (
	KindTestResult     = "test-result"
	KindUserPreference = "user-preference"
	KindSessionAnswer  = "session-answer"
)

var kindEndpoints = map[string]string{
	KindTestResult:     "/api/results/",
	KindUserPreference: "/api/preferences/",
	KindSessionAnswer:  "/api/answers/",
}

// HTTPCommitAdapter owns the resty client shared by all per-kind handlers.
type HTTPCommitAdapter struct {
	client      *resty.Client
	bearerToken string
}

func NewHTTPCommitAdapter(cfg config.ClientAdapter) *HTTPCommitAdapter {
	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.RequestTimeout)

	return &HTTPCommitAdapter{client: cli, bearerToken: cfg.BearerToken}
}

// NewCommitRegistry builds a [Registry] with one HTTP commit handler per
// known kind.
func NewCommitRegistry(cfg config.ClientAdapter) *Registry {
	a := NewHTTPCommitAdapter(cfg)

	registry := NewRegistry()
	for kind, endpoint := range kindEndpoints {
		registry.Register(kind, a.Handler(endpoint))
	}
	return registry
}

// Handler returns a [CommitHandler] posting payloads to the given endpoint.
func (a *HTTPCommitAdapter) Handler(endpoint string) CommitHandler {
	return &httpCommitHandler{adapter: a, endpoint: endpoint}
}

type httpCommitHandler struct {
	adapter  *HTTPCommitAdapter
	endpoint string
}

func (h *httpCommitHandler) Commit(ctx context.Context, payload json.RawMessage) error {
	resp, err := h.adapter.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody([]byte(payload)).
		Post(h.endpoint)
	if err != nil {
		return fmt.Errorf("commit request %s: %w", h.endpoint, err)
	}

	return mapHTTPError(resp)
}

func (a *HTTPCommitAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := a.client.R().SetContext(ctx)
	if a.bearerToken != "" {
		req.SetHeader("Authorization", "Bearer "+a.bearerToken)
	}
	return req
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		return ErrUnauthorized
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
}
