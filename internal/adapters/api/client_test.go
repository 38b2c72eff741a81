package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/mailsift/internal/core"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "v1", "test-key", "0.0.0-test", 5*time.Second, zap.NewNop())
	return client, server
}

func TestEnrichMessage(t *testing.T) {
	var gotPath, gotKey, gotAgent string
	var gotBody map[string]interface{}

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("Key")
		gotAgent = r.Header.Get("User-Agent")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"message_id": "m-1", "enriched": true})
	}))

	result, err := client.EnrichMessage(context.Background(), "From: a@b.c\r\n\r\nhello")
	require.NoError(t, err)

	assert.Equal(t, "/v1/message/enrich", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "mailsift/0.0.0-test", gotAgent)
	assert.Equal(t, "From: a@b.c\r\n\r\nhello", gotBody["message"])
	assert.Equal(t, core.Result{"message_id": "m-1", "enriched": true}, result)
}

func TestAnalyzeMessageRawGoesToMessageEndpoint(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"flagged": false})
	}))

	req := &core.AnalyzeRequest{
		Message:    "raw message",
		Detections: []core.Detection{{Detection: "subject contains 'invoice'"}},
	}
	result, err := client.AnalyzeMessage(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "/v1/message/analyze/multi", gotPath)
	assert.Equal(t, "raw message", gotBody["message"])
	assert.Len(t, gotBody["detections"], 1)
	assert.Equal(t, core.Result{"flagged": false}, result)
}

func TestAnalyzeMessageModelGoesToModelEndpoint(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"flagged": true})
	}))

	req := &core.AnalyzeRequest{
		DataModel:  `{"subject": "hi"}`,
		Detections: []core.Detection{{Detection: "true"}},
	}
	_, err := client.AnalyzeMessage(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "/v1/model/analyze/multi", gotPath)
	assert.Equal(t, map[string]interface{}{"subject": "hi"}, gotBody["message_data_model"])
	assert.NotContains(t, gotBody, "message")
}

func TestAnalyzeMessageRejectsInvalidModel(t *testing.T) {
	requested := false
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = true
	}))

	_, err := client.AnalyzeMessage(context.Background(), &core.AnalyzeRequest{DataModel: "not json"})
	assert.Error(t, err)
	assert.False(t, requested, "no request expected for an invalid data model")
}

func TestAPIErrorDetail(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "bad file"}`))
	}))

	_, err := client.EnrichMessage(context.Background(), "x")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "bad file", apiErr.Detail)
	assert.Contains(t, apiErr.Error(), "bad file")
}

func TestAPIErrorMessageFallback(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"message": "service exploded"}}`))
	}))

	_, err := client.EnrichMessage(context.Background(), "x")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "service exploded", apiErr.Detail)
}

func TestAPIErrorRawBodyFallback(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream timeout"))
	}))

	_, err := client.EnrichMessage(context.Background(), "x")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "upstream timeout", apiErr.Detail)
}

func TestTransportError(t *testing.T) {
	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := client.EnrichMessage(context.Background(), "x")
	require.Error(t, err)

	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr), "transport failures are not API errors")
}
