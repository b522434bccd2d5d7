// Package peer talks to other gateway instances: the registration
// handshake and transaction relay.
package peer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/posbridge/moto-gateway/internal/application"
	"github.com/posbridge/moto-gateway/internal/config"
)

type Client struct {
	httpClient     *http.Client
	connectTimeout time.Duration
	relayTimeout   time.Duration
}

// NewClient uses per-call context deadlines instead of one client-wide
// timeout because the handshake and relay budgets differ.
func NewClient(cfg config.PeerConfig) *Client {
	return &Client{
		httpClient:     &http.Client{},
		connectTimeout: cfg.ConnectTimeout,
		relayTimeout:   cfg.RelayTimeout,
	}
}

// Connect announces this gateway at the peer's connect endpoint.
func (c *Client) Connect(ctx context.Context, baseURL string, hello application.PeerHello) error {
	ctx, cancel := context.WithTimeout(ctx, c.connectTimeout)
	defer cancel()

	body, err := json.Marshal(hello)
	if err != nil {
		return fmt.Errorf("encoding hello: %w", err)
	}

	url := fmt.Sprintf("%s/api/devices/connect", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating connect request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("calling peer: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("peer returned status %d", resp.StatusCode)
	}
	return nil
}

// Relay forwards a raw submission body to the peer's MOTO endpoint and
// returns the peer's raw response. A non-2xx reply counts as a relay
// failure: the peer either rejected or never recorded the transaction.
func (c *Client) Relay(ctx context.Context, baseURL string, submission []byte) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.relayTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/api/transaction/moto", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(submission))
	if err != nil {
		return nil, fmt.Errorf("creating relay request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling peer: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading peer response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("peer returned status %d", resp.StatusCode)
	}
	return raw, nil
}
