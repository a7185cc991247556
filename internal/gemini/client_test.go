package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name           string
		cfg            Config
		expectedModel  string
		expectedTemp   float64
		expectedConfig bool
	}{
		{
			name:           "with all parameters",
			cfg:            Config{APIKey: "test-key", Model: "gemini-2.0-pro", Temperature: 0.5},
			expectedModel:  "gemini-2.0-pro",
			expectedTemp:   0.5,
			expectedConfig: true,
		},
		{
			name:           "empty model uses default",
			cfg:            Config{APIKey: "test-key", Temperature: 0.3},
			expectedModel:  defaultModel,
			expectedTemp:   0.3,
			expectedConfig: true,
		},
		{
			name:           "zero temperature uses default",
			cfg:            Config{APIKey: "test-key", Model: "custom"},
			expectedModel:  "custom",
			expectedTemp:   0.7,
			expectedConfig: true,
		},
		{
			name:           "empty api key",
			cfg:            Config{Model: "some-model", Temperature: 0.2},
			expectedModel:  "some-model",
			expectedTemp:   0.2,
			expectedConfig: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(tt.cfg)

			require.NotNil(t, client)
			assert.Equal(t, tt.expectedModel, client.model)
			assert.Equal(t, tt.expectedTemp, client.temperature)
			assert.Equal(t, tt.expectedConfig, client.IsConfigured())
		})
	}
}

func newTestClient(serverURL string) *Client {
	loc, _ := time.LoadLocation("Asia/Jakarta")
	c := NewClient(Config{
		APIKey:   "test-api-key",
		Model:    "test-model",
		Timezone: "Asia/Jakarta",
		Location: loc,
	})
	c.apiBase = serverURL
	c.now = func() time.Time {
		return time.Date(2024, 6, 12, 10, 30, 0, 0, loc)
	}
	return c
}

func textResponse(text string) geminiResponse {
	var resp geminiResponse
	resp.Candidates = []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	}{
		{
			Content: geminiContent{
				Role:  "model",
				Parts: []geminiPart{{Text: text}},
			},
			FinishReason: "STOP",
		},
	}
	return resp
}

func TestReply_Success(t *testing.T) {
	var gotReq geminiRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "test-api-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "/test-model:generateContent", r.URL.Path)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(textResponse("Halo! Ada yang bisa saya bantu?"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	reply, err := client.Reply(context.Background(), 42, "halo")

	require.NoError(t, err)
	assert.Equal(t, "Halo! Ada yang bisa saya bantu?", reply)

	require.NotNil(t, gotReq.SystemInstruction)
	assert.Contains(t, gotReq.SystemInstruction.Parts[0].Text, "asisten pribadi")
	require.Len(t, gotReq.Contents, 1)
	assert.Equal(t, "user", gotReq.Contents[0].Role)
	assert.Contains(t, gotReq.Contents[0].Parts[0].Text, "halo")
	assert.Contains(t, gotReq.Contents[0].Parts[0].Text, "Asia/Jakarta")
	assert.Contains(t, gotReq.Contents[0].Parts[0].Text, "2024-06-12")
}

func TestReply_CarriesBoundedHistory(t *testing.T) {
	var lastContentCount int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		lastContentCount = len(req.Contents)

		json.NewEncoder(w).Encode(textResponse("ok"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.historySize = 4

	for i := 0; i < 5; i++ {
		_, err := client.Reply(context.Background(), 1, "pesan")
		require.NoError(t, err)
	}

	// History is capped at 4 entries (2 exchanges), plus the current turn.
	assert.Equal(t, 5, lastContentCount)
}

func TestReply_HistoryIsPerUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(textResponse("ok"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Reply(context.Background(), 1, "dari user satu")
	require.NoError(t, err)

	assert.Len(t, client.historyFor(1), 2)
	assert.Empty(t, client.historyFor(2))

	client.ClearHistory(1)
	assert.Empty(t, client.historyFor(1))
}

func TestReply_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"code": 500, "message": "Internal error", "status": "INTERNAL"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Reply(context.Background(), 1, "halo")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "API error")
	assert.Contains(t, err.Error(), "500")
}

func TestReply_ErrorBodyWithOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error": {"code": 429, "message": "Quota exceeded", "status": "RESOURCE_EXHAUSTED"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Reply(context.Background(), 1, "halo")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "RESOURCE_EXHAUSTED")
}

func TestReply_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Reply(context.Background(), 1, "halo")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func TestReply_FailedCallDoesNotPolluteHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Reply(context.Background(), 1, "halo")
	require.Error(t, err)

	assert.Empty(t, client.historyFor(1))
}
