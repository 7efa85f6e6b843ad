package provider

import "encoding/base64"

// Role tags a chat message turn.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// ChatMessage is one ordered turn in a chat completion request.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// DocumentSource is the tagged OCR input variant: either an inline PDF
// (document_url) or an inline image (image_url), both as data URLs.
type DocumentSource struct {
	Type        string `json:"type"`
	DocumentURL string `json:"document_url,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// PDFSource wraps raw PDF bytes as an inline document source.
func PDFSource(raw []byte) DocumentSource {
	return DocumentSource{
		Type:        "document_url",
		DocumentURL: "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(raw),
	}
}

// ImageSource wraps raw image bytes as an inline image source.
func ImageSource(contentType string, raw []byte) DocumentSource {
	return DocumentSource{
		Type:     "image_url",
		ImageURL: "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(raw),
	}
}

// OCRResult is the normalized OCR proxy response: the number of
// non-empty pages and the page markdown joined with blank lines. An
// empty document yields the NoTextExtracted sentinel, never "".
type OCRResult struct {
	Pages    int
	Markdown string
}

// ChatOptions tunes a chat completion call. Zero values fall back to the
// service defaults (temperature 0.2, 800 max tokens).
type ChatOptions struct {
	Temperature float64
	MaxTokens   int
}

// TranscriptionOptions tunes an audio transcription call.
type TranscriptionOptions struct {
	Language string
	Diarize  bool
	// TimestampGranularities holds "segment" and/or "word".
	TimestampGranularities []string
}

type ocrRequest struct {
	Model    string         `json:"model"`
	Document DocumentSource `json:"document"`
}

type ocrPage struct {
	Markdown string `json:"markdown"`
}

type ocrResponse struct {
	Pages []ocrPage `json:"pages"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type transcriptionResponse struct {
	Text string `json:"text"`
}
