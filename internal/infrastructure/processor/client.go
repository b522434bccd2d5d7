// Package processor talks to the external payment-processing API.
package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/posbridge/moto-gateway/internal/application"
	"github.com/posbridge/moto-gateway/internal/config"
	"github.com/posbridge/moto-gateway/internal/domain"
)

type Client struct {
	httpClient *http.Client
}

func NewClient(cfg config.ProcessorConfig) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// processRequest is the full transaction plus the sending device's
// identity, flattened into one JSON object.
type processRequest struct {
	domain.Transaction
	DeviceID   string `json:"deviceId"`
	DeviceName string `json:"deviceName"`
}

// Process posts the transaction to the processor and reads its verdict.
// Any transport failure, timeout, or non-2xx reply is returned as an
// error; the caller turns that into a terminal status, never a retry.
func (c *Client) Process(ctx context.Context, endpoint application.ProcessorEndpoint, tx domain.Transaction, identity application.DeviceIdentity) (*application.ProcessorResult, error) {
	url := fmt.Sprintf("%s/api/transaction/process", endpoint.BaseURL)

	body, err := json.Marshal(processRequest{
		Transaction: tx,
		DeviceID:    identity.DeviceID,
		DeviceName:  identity.DeviceName,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding process request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating process request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if endpoint.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+endpoint.APIKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling processor: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading processor response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("processor returned status %d: %s", resp.StatusCode, truncate(raw))
	}

	var verdict struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(raw, &verdict); err != nil {
		return nil, fmt.Errorf("decoding processor response: %w", err)
	}

	return &application.ProcessorResult{Success: verdict.Success, Raw: raw}, nil
}

func truncate(body []byte) string {
	const max = 256
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
