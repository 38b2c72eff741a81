package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mikey/mailsift/internal/core"
	"go.uber.org/zap"
)

// Endpoints of the remote analysis service, relative to the versioned base URL.
const (
	epMessageEnrich  = "message/enrich"
	epMessageAnalyze = "message/analyze/multi"
	epModelAnalyze   = "model/analyze/multi"
)

// Client is an implementation of the AnalysisClient interface over the
// remote analysis service's HTTP API
type Client struct {
	baseURL    string
	apiVersion string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new analysis service client
func NewClient(
	baseURL string,
	apiVersion string,
	apiKey string,
	toolVersion string,
	timeout time.Duration,
	logger *zap.Logger,
) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiVersion: apiVersion,
		apiKey:     apiKey,
		userAgent:  fmt.Sprintf("mailsift/%s", toolVersion),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// EnrichMessage enriches a raw email message into a message data model
func (c *Client) EnrichMessage(ctx context.Context, message string) (core.Result, error) {
	body := map[string]interface{}{
		"message": message,
	}
	return c.post(ctx, epMessageEnrich, body)
}

// AnalyzeMessage evaluates a message against a set of detections. Raw
// messages go to the message endpoint, enriched data models to the model
// endpoint.
func (c *Client) AnalyzeMessage(ctx context.Context, req *core.AnalyzeRequest) (core.Result, error) {
	body := map[string]interface{}{
		"detections": req.Detections,
	}

	endpoint := epMessageAnalyze
	if req.DataModel != "" {
		var model interface{}
		if err := json.Unmarshal([]byte(req.DataModel), &model); err != nil {
			return nil, fmt.Errorf("invalid message data model: %w", err)
		}
		body["message_data_model"] = model
		endpoint = epModelAnalyze
	} else {
		body["message"] = req.Message
	}

	return c.post(ctx, endpoint, body)
}

// post sends one JSON request and decodes the JSON response
func (c *Client) post(ctx context.Context, endpoint string, body interface{}) (core.Result, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	url := strings.Join([]string{c.baseURL, c.apiVersion, endpoint}, "/")
	c.logger.Debug("Sending API request", zap.String("url", url))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request to analysis service failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, decodeError(resp.StatusCode, respBody)
	}

	var result core.Result
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("invalid response from analysis service: %w", err)
	}

	c.logger.Debug("API request succeeded",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode))

	return result, nil
}
