package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

const (
	defaultAPIBase     = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultModel       = "gemini-2.5-flash"
	defaultMaxTokens   = 2048
	defaultHistorySize = 20
)

// Client is a Gemini API client for schedule extraction and assistant chat
type Client struct {
	apiKey      string
	model       string
	apiBase     string
	httpClient  *http.Client
	temperature float64
	timezone    string
	location    *time.Location
	now         func() time.Time

	// Per-user conversational memory, bounded and process-local.
	historyMu   sync.Mutex
	histories   map[int64][]geminiContent
	historySize int
}

// Config holds configuration for the Gemini client
type Config struct {
	APIKey      string
	Model       string
	Temperature float64
	Timezone    string
	Location    *time.Location
	HistorySize int
}

// NewClient creates a new Gemini API client
func NewClient(cfg Config) *Client {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = 0.7
	}
	historySize := cfg.HistorySize
	if historySize <= 0 {
		historySize = defaultHistorySize
	}
	location := cfg.Location
	if location == nil {
		location = time.UTC
	}

	return &Client{
		apiKey:      cfg.APIKey,
		model:       model,
		apiBase:     defaultAPIBase,
		temperature: temperature,
		timezone:    cfg.Timezone,
		location:    location,
		now:         time.Now,
		histories:   make(map[int64][]geminiContent),
		historySize: historySize,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// geminiRequest represents the generateContent request structure
type geminiRequest struct {
	SystemInstruction *geminiContent   `json:"system_instruction,omitempty"`
	Contents          []geminiContent  `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// geminiResponse represents the generateContent response structure
type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// Reply sends the user's message to Gemini together with the bounded chat
// history for that user and returns the raw reply text. The model decides
// whether to answer as an assistant or to emit a JSON schedule payload;
// classifying the reply is the caller's job.
func (c *Client) Reply(ctx context.Context, userID int64, text string) (string, error) {
	userTurn := geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: c.decorateMessage(text)}},
	}

	contents := append(c.historyFor(userID), userTurn)

	req := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: SystemPrompt}}},
		Contents:          contents,
		GenerationConfig: generationConfig{
			Temperature:     c.temperature,
			TopP:            0.95,
			TopK:            40,
			MaxOutputTokens: defaultMaxTokens,
		},
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent", c.apiBase, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp geminiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if apiResp.Error != nil {
		return "", fmt.Errorf("API error: %s - %s", apiResp.Error.Status, apiResp.Error.Message)
	}

	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from API")
	}

	reply := apiResp.Candidates[0].Content.Parts[0].Text

	c.rememberExchange(userID, text, reply)

	return reply, nil
}

// decorateMessage appends the timezone and current date reference the model
// needs to resolve relative dates in the user's text.
func (c *Client) decorateMessage(text string) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Pesan dari user: %q\n\n", text)
	if c.timezone != "" {
		fmt.Fprintf(&buf, "Gunakan timezone %s.\n", c.timezone)
	}
	fmt.Fprintf(&buf, "Tanggal hari ini: %s\n", c.now().In(c.location).Format("2006-01-02 15:04 (Monday)"))
	return buf.String()
}

// historyFor returns a copy of the user's stored exchanges.
func (c *Client) historyFor(userID int64) []geminiContent {
	c.historyMu.Lock()
	defer c.historyMu.Unlock()

	stored := c.histories[userID]
	out := make([]geminiContent, len(stored))
	copy(out, stored)
	return out
}

// rememberExchange appends a user/model pair and trims to the bounded size.
func (c *Client) rememberExchange(userID int64, userText, reply string) {
	c.historyMu.Lock()
	defer c.historyMu.Unlock()

	history := append(c.histories[userID],
		geminiContent{Role: "user", Parts: []geminiPart{{Text: userText}}},
		geminiContent{Role: "model", Parts: []geminiPart{{Text: reply}}},
	)
	if len(history) > c.historySize {
		history = history[len(history)-c.historySize:]
	}
	c.histories[userID] = history
}

// ClearHistory drops the stored chat history for a user
func (c *Client) ClearHistory(userID int64) {
	c.historyMu.Lock()
	defer c.historyMu.Unlock()
	delete(c.histories, userID)
}

// IsConfigured returns true if the client has an API key
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}
