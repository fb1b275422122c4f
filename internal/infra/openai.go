package infra

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"
)

// OpenAIClient talks to the OpenAI Responses API. It is constructed once at
// startup and injected into the oracle services — there is no package-level
// client and no hidden environment lookup.
type OpenAIClient struct {
	baseURL    string
	apiKey     string
	model      string
	maxRetries int
	httpClient *http.Client
	cb         *CircuitBreaker
}

// OpenAIOptions configures the client.
type OpenAIOptions struct {
	BaseURL    string
	APIKey     string
	Model      string
	Timeout    time.Duration // per-attempt timeout
	MaxRetries int           // additional attempts after the first
}

func NewOpenAIClient(opts OpenAIOptions, cb *CircuitBreaker) *OpenAIClient {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	return &OpenAIClient{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		model:      opts.Model,
		maxRetries: opts.MaxRetries,
		httpClient: &http.Client{Timeout: opts.Timeout},
		cb:         cb,
	}
}

// Breaker exposes the circuit breaker state for the health endpoint.
func (c *OpenAIClient) Breaker() *CircuitBreaker { return c.cb }

// JSONSchemaFormat asks the model for output conforming to a JSON schema.
type JSONSchemaFormat struct {
	Name   string
	Schema json.RawMessage
}

// ── Wire types (Responses API) ───────────────────────────────────────────────

type contentPart struct {
	Type     string `json:"type"` // input_text | input_file
	Text     string `json:"text,omitempty"`
	Filename string `json:"filename,omitempty"`
	FileData string `json:"file_data,omitempty"`
}

type inputMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type textFormat struct {
	Type   string          `json:"type"` // json_schema
	Name   string          `json:"name,omitempty"`
	Schema json.RawMessage `json:"schema,omitempty"`
	Strict bool            `json:"strict,omitempty"`
}

type textOptions struct {
	Format *textFormat `json:"format,omitempty"`
}

type responsesRequest struct {
	Model        string         `json:"model"`
	Instructions string         `json:"instructions,omitempty"`
	Input        []inputMessage `json:"input"`
	Text         *textOptions   `json:"text,omitempty"`
	Store        bool           `json:"store"`
}

type responsesResponse struct {
	Output []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (r *responsesResponse) outputText() (string, error) {
	for _, out := range r.Output {
		if out.Type != "message" {
			continue
		}
		for _, part := range out.Content {
			if part.Type == "output_text" {
				return strings.TrimSpace(part.Text), nil
			}
		}
	}
	return "", errors.New("openai: response contains no output text")
}

// HTTPStatusError is a non-2xx answer from the AI service.
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("openai: status %d", e.StatusCode)
	}
	return fmt.Sprintf("openai: status %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// ── Public calls ─────────────────────────────────────────────────────────────

// RespondWithFile sends a document plus a text instruction and returns the
// model's output text. When format is non-nil the model is constrained to
// that JSON schema.
func (c *OpenAIClient) RespondWithFile(ctx context.Context, filename string, data []byte, instruction string, format *JSONSchemaFormat) (string, error) {
	encoded := base64.StdEncoding.EncodeToString(data)
	req := responsesRequest{
		Model: c.model,
		Input: []inputMessage{{
			Role: "user",
			Content: []contentPart{
				{
					Type:     "input_file",
					Filename: filename,
					FileData: "data:application/pdf;base64," + encoded,
				},
				{Type: "input_text", Text: instruction},
			},
		}},
	}
	if format != nil {
		req.Text = &textOptions{Format: &textFormat{
			Type:   "json_schema",
			Name:   format.Name,
			Schema: format.Schema,
			Strict: true,
		}}
	}
	return c.respond(ctx, req)
}

// RespondText sends a plain text prompt with system-level instructions and
// returns the model's output text.
func (c *OpenAIClient) RespondText(ctx context.Context, instructions, input string) (string, error) {
	req := responsesRequest{
		Model:        c.model,
		Instructions: instructions,
		Input: []inputMessage{{
			Role:    "user",
			Content: []contentPart{{Type: "input_text", Text: input}},
		}},
	}
	return c.respond(ctx, req)
}

// respond runs the call through the circuit breaker with bounded retries on
// transient failures. Non-retryable errors surface immediately.
func (c *OpenAIClient) respond(ctx context.Context, req responsesRequest) (string, error) {
	var text string
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Linear backoff between attempts; abort on cancellation.
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}

		lastErr = c.cb.Execute(func() error {
			var err error
			text, err = c.post(ctx, req)
			return err
		})
		if lastErr == nil {
			return text, nil
		}
		if !isRetryable(lastErr) {
			return "", lastErr
		}
	}
	return "", lastErr
}

func (c *OpenAIClient) post(ctx context.Context, payload responsesRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("openai: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/responses", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("openai: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai: service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return "", &HTTPStatusError{StatusCode: resp.StatusCode, Body: buf.String()}
	}

	var result responsesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("openai: decode response: %w", err)
	}
	if result.Error != nil {
		return "", fmt.Errorf("openai: service error: %s", result.Error.Message)
	}
	return result.outputText()
}

// isRetryable classifies transient failures worth another attempt: timeouts,
// connection errors, and throttling/server-side statuses. Context
// cancellation and an open breaker are terminal for the current call.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrCircuitOpen) {
		return false
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusRequestTimeout, http.StatusTooManyRequests,
			http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	// Client.Do errors wrap url.Error; treat generic transport failures as
	// transient.
	return strings.Contains(err.Error(), "service unreachable")
}
