package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/fitsuggest/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGeminiModel   = "gemini-2.5-flash"

	structuredMimeType = "application/json"
	maxResponseBytes   = 8 << 20
)

var (
	ErrEmptyResponse = errors.New("inference returned no content")
	ErrBlocked       = errors.New("inference blocked the request")
)

// APIError is a non-200 answer from the generateContent endpoint.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gemini api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("gemini api: status %d %s: %s", e.StatusCode, e.Status, e.Message)
}

type geminiPayload struct {
	Contents         []geminiContent   `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMimeType string        `json:"responseMimeType"`
	ResponseSchema   *GeminiSchema `json:"responseSchema,omitempty"`
	Temperature      *float64      `json:"temperature,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

type geminiErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

type GeminiClientParams struct {
	BaseURL      string
	APIKey       string
	DefaultModel string
	// Timeout bounds a single generate call; zero leaves it to the context.
	Timeout     time.Duration
	Temperature *float64
	HTTPClient  *http.Client
}

// GeminiClient calls generateContent with a JSON response schema.
type GeminiClient struct {
	baseURL      string
	apiKey       string
	defaultModel string
	timeout      time.Duration
	temperature  *float64
	httpClient   *http.Client
}

var _ Client = (*GeminiClient)(nil)

func NewGeminiClient(params GeminiClientParams) *GeminiClient {
	c := &GeminiClient{
		baseURL:      strings.TrimSuffix(params.BaseURL, "/"),
		apiKey:       params.APIKey,
		defaultModel: params.DefaultModel,
		timeout:      params.Timeout,
		temperature:  params.Temperature,
		httpClient:   params.HTTPClient,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultGeminiBaseURL
	}
	if c.defaultModel == "" {
		c.defaultModel = DefaultGeminiModel
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	return c
}

func (c *GeminiClient) Generate(ctx context.Context, req Request) (_ json.RawMessage, err error) {
	model := req.Model
	if model == "" {
		model = c.defaultModel
	}

	ctx, span := tracing.GlobalTracer.Start(ctx, "gemini.generate")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(
		attribute.String("flow", req.Flow),
		attribute.String("model", model),
	)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload := c.buildPayload(req)
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	log.Debugf("gemini: calling model %s for flow %s, payload %d bytes", model, req.Flow, len(payloadBytes))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Warnf("gemini: close response body: %s", err)
		}
	}()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
		var body geminiErrorBody
		if json.Unmarshal(respBytes, &body) == nil && body.Error.Message != "" {
			apiErr.Status = body.Error.Status
			apiErr.Message = body.Error.Message
		}
		return nil, apiErr
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(respBytes, &geminiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if fb := geminiResp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return nil, fmt.Errorf("%w: %s", ErrBlocked, fb.BlockReason)
	}
	if len(geminiResp.Candidates) == 0 {
		return nil, ErrEmptyResponse
	}

	candidate := geminiResp.Candidates[0]
	var sb strings.Builder
	for _, p := range candidate.Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		if candidate.FinishReason != "" && candidate.FinishReason != "STOP" {
			return nil, fmt.Errorf("%w: finish reason %s", ErrEmptyResponse, candidate.FinishReason)
		}
		return nil, ErrEmptyResponse
	}
	span.SetAttributes(attribute.String("finish_reason", candidate.FinishReason))

	return json.RawMessage(text), nil
}

func (c *GeminiClient) buildPayload(req Request) geminiPayload {
	parts := make([]geminiPart, 0, len(req.Parts))
	for _, p := range req.Parts {
		if p.IsMedia() {
			parts = append(parts, geminiPart{InlineData: &inlineData{
				MimeType: p.Media.MIMEType,
				Data:     p.Media.Data,
			}})
			continue
		}
		parts = append(parts, geminiPart{Text: p.Text})
	}

	cfg := &generationConfig{
		ResponseMimeType: structuredMimeType,
		Temperature:      c.temperature,
	}
	if req.OutputSchema != nil {
		cfg.ResponseSchema = ToGeminiSchema(req.OutputSchema)
	}

	return geminiPayload{
		Contents:         []geminiContent{{Role: "user", Parts: parts}},
		GenerationConfig: cfg,
	}
}
