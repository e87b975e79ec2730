package homeassistant

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/home-assistant-tools/automation-lint-go/internal/errors"
	"github.com/home-assistant-tools/automation-lint-go/internal/knowledge"
)

// RESTClient fetches the entity snapshot over the REST API. Used when a
// long-lived WebSocket connection is not wanted, such as one-shot CLI runs.
type RESTClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewREST creates a REST client with the given timeout.
func NewREST(baseURL, token string, timeout time.Duration) *RESTClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RESTClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchStates returns the current entity snapshot via GET /api/states.
func (c *RESTClient) FetchStates(ctx context.Context) ([]knowledge.EntityState, error) {
	var states []knowledge.EntityState
	if err := c.get(ctx, "/api/states", &states); err != nil {
		return nil, err
	}
	return states, nil
}

func (c *RESTClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return apperrors.Create(apperrors.CodeWebsocket).WithPath(path).WithCause(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return apperrors.Create(apperrors.CodeCapabilityUnavailable).WithPath(path).WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return apperrors.Create(apperrors.CodeAuthFailed).WithMessagef("HTTP %d from %s", resp.StatusCode, path)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return apperrors.ErrHTTPStatus(resp.StatusCode, fmt.Sprintf("%s: %s", path, strings.TrimSpace(string(body))))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Create(apperrors.CodeResponseJSON).WithPath(path).WithCause(err)
	}
	return nil
}
