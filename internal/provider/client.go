// Package provider talks to the Mistral HTTP API for OCR, chat
// completion, and audio transcription. Every call is synchronous within
// the request's lifetime; failures surface directly with the upstream
// status and detail, with no retry or fallback.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/apperr"
	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/metrics"
)

const (
	ChatTimeout       = 60 * time.Second
	OCRTimeout        = 120 * time.Second
	TranscribeTimeout = 180 * time.Second

	defaultTemperature = 0.2
	defaultMaxTokens   = 800
)

// Sentinel strings distinguish "call succeeded but found nothing" from
// an error for downstream consumers.
const (
	NoTextExtracted = "(No text extracted.)"
	NoTranscript    = "(No transcript returned.)"
)

// Options configures a Client. APIKey may be empty: its absence fails
// the individual call, not construction.
type Options struct {
	BaseURL         string
	APIKey          string
	OCRModel        string
	ChatModel       string
	TranscribeModel string
}

// Client is the AI provider proxy. It holds one http.Client per
// capability because the acceptable latency differs by an order of
// magnitude between chat and audio transcription.
type Client struct {
	opts        Options
	chatClient  *http.Client
	ocrClient   *http.Client
	audioClient *http.Client
}

// NewClient creates a provider client.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.mistral.ai"
	}
	return &Client{
		opts:        opts,
		chatClient:  &http.Client{Timeout: ChatTimeout},
		ocrClient:   &http.Client{Timeout: OCRTimeout},
		audioClient: &http.Client{Timeout: TranscribeTimeout},
	}
}

func (c *Client) requireKey() error {
	if c.opts.APIKey == "" {
		return apperr.Config("MISTRAL_API_KEY is not set")
	}
	return nil
}

// OCR sends an inline document or image for text extraction and joins
// the per-page markdown with blank-line separators. Pages counts the
// non-empty pages.
func (c *Client) OCR(ctx context.Context, doc DocumentSource) (OCRResult, error) {
	if err := c.requireKey(); err != nil {
		return OCRResult{}, err
	}

	body, err := c.postJSON(ctx, c.ocrClient, "/v1/ocr", ocrRequest{
		Model:    c.opts.OCRModel,
		Document: doc,
	}, "Mistral OCR API")
	if err != nil {
		return OCRResult{}, err
	}

	var out ocrResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return OCRResult{}, apperr.Internal(err, "decode OCR response")
	}

	nonEmpty := 0
	parts := make([]string, 0, len(out.Pages))
	for _, p := range out.Pages {
		md := strings.TrimSpace(p.Markdown)
		if md != "" {
			nonEmpty++
		}
		parts = append(parts, md)
	}

	markdown := strings.TrimSpace(strings.Join(parts, "\n\n"))
	if markdown == "" {
		markdown = NoTextExtracted
	}

	return OCRResult{Pages: nonEmpty, Markdown: markdown}, nil
}

// Chat forwards the ordered message list as-is and returns the first
// completion's text content, unmodified.
func (c *Client) Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error) {
	if err := c.requireKey(); err != nil {
		return "", err
	}

	if opts.Temperature == 0 {
		opts.Temperature = defaultTemperature
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = defaultMaxTokens
	}

	body, err := c.postJSON(ctx, c.chatClient, "/v1/chat/completions", chatRequest{
		Model:       c.opts.ChatModel,
		Messages:    messages,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}, "Mistral Chat API")
	if err != nil {
		return "", err
	}

	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", apperr.Internal(err, "decode chat response")
	}
	if len(out.Choices) == 0 {
		return "", apperr.Internal(nil, "chat response has no choices")
	}
	return out.Choices[0].Message.Content, nil
}

// Transcribe uploads audio as multipart form data and returns the
// transcript text, substituting the NoTranscript sentinel when the
// provider returns an empty transcript.
func (c *Client) Transcribe(ctx context.Context, audio []byte, filename, contentType string, opts TranscriptionOptions) (string, error) {
	if err := c.requireKey(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("model", c.opts.TranscribeModel); err != nil {
		return "", apperr.Internal(err, "build transcription request")
	}
	if opts.Language != "" {
		if err := mw.WriteField("language", opts.Language); err != nil {
			return "", apperr.Internal(err, "build transcription request")
		}
	}
	if opts.Diarize {
		if err := mw.WriteField("diarize", "true"); err != nil {
			return "", apperr.Internal(err, "build transcription request")
		}
	}
	if len(opts.TimestampGranularities) > 0 {
		enc, err := json.Marshal(opts.TimestampGranularities)
		if err != nil {
			return "", apperr.Internal(err, "build transcription request")
		}
		if err := mw.WriteField("timestamp_granularities", string(enc)); err != nil {
			return "", apperr.Internal(err, "build transcription request")
		}
	}

	if filename == "" {
		filename = "audio"
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	part, err := createFilePart(mw, "file", filename, contentType)
	if err != nil {
		return "", apperr.Internal(err, "build transcription request")
	}
	if _, err := part.Write(audio); err != nil {
		return "", apperr.Internal(err, "build transcription request")
	}
	if err := mw.Close(); err != nil {
		return "", apperr.Internal(err, "build transcription request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/v1/audio/transcriptions", &buf)
	if err != nil {
		return "", apperr.Internal(err, "create request")
	}
	req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	req.Header.Set("Accept", "application/json")
	// Content-Type carries the multipart boundary; never set it by hand.
	req.Header.Set("Content-Type", mw.FormDataContentType())

	body, err := c.do(c.audioClient, req, "Mistral Audio Transcription API")
	if err != nil {
		return "", err
	}

	var out transcriptionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", apperr.Internal(err, "decode transcription response")
	}

	text := strings.TrimSpace(out.Text)
	if text == "" {
		text = NoTranscript
	}
	return text, nil
}

func (c *Client) postJSON(ctx context.Context, hc *http.Client, path string, payload any, api string) ([]byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, apperr.Internal(err, "encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, apperr.Internal(err, "create request")
	}
	req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(hc, req, api)
}

// do executes the request and translates any non-success status into an
// upstream error carrying the status code and whatever detail the
// provider returned.
func (c *Client) do(hc *http.Client, req *http.Request, api string) ([]byte, error) {
	start := time.Now()
	body, err := c.roundTrip(hc, req, api)
	metrics.RecordProviderCall(time.Since(start), err)
	return body, err
}

func (c *Client) roundTrip(hc *http.Client, req *http.Request, api string) ([]byte, error) {
	resp, err := hc.Do(req)
	if err != nil {
		return nil, apperr.Internal(err, fmt.Sprintf("%s request failed", api))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Internal(err, "read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperr.Upstream(api, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

func createFilePart(mw *multipart.Writer, field, filename, contentType string) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	h.Set("Content-Type", contentType)
	return mw.CreatePart(h)
}
