// Package voicechat implements the voice intelligence surface:
// transcription of uploaded audio, grounded question answering over the
// transcript, and a sentiment/risk analysis variant.
package voicechat

import (
	"context"
	"fmt"

	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/provider"
)

const (
	groundingPrompt = "You are a voice intelligence assistant. " +
		"Answer using only the transcript content. " +
		"If the answer is not in the transcript, say you cannot find it."

	analysisPrompt = "You are an expert conversation analyst. " +
		"Stay grounded in the transcript; do not invent details."

	// defaultSentimentPrompt is used when the client does not override it.
	defaultSentimentPrompt = "Analyze the transcript for sentiment and safety signals. " +
		"Provide: overall sentiment, tone progression, emotions, escalation, abusive language, risk flags, " +
		"and an actionable summary. Use only evidence from the transcript."
)

type Service struct {
	provider *provider.Client
}

func NewService(p *provider.Client) *Service {
	return &Service{provider: p}
}

// Transcribe runs speech-to-text on one audio upload.
func (s *Service) Transcribe(ctx context.Context, audio []byte, filename, contentType string) (string, error) {
	return s.provider.Transcribe(ctx, audio, filename, contentType, provider.TranscriptionOptions{})
}

// Answer asks the chat model a question constrained to the transcript.
func (s *Service) Answer(ctx context.Context, transcript, question string) (string, error) {
	messages := []provider.ChatMessage{
		{Role: provider.RoleSystem, Content: groundingPrompt},
		{Role: provider.RoleUser, Content: fmt.Sprintf("TRANSCRIPT:\n\n%s\n\nQUESTION:\n%s", transcript, question)},
	}
	return s.provider.Chat(ctx, messages, provider.ChatOptions{})
}

// Analyze runs the sentiment/risk analysis over the transcript. An empty
// prompt falls back to the default analysis instructions.
func (s *Service) Analyze(ctx context.Context, transcript, prompt string) (string, error) {
	if prompt == "" {
		prompt = defaultSentimentPrompt
	}

	messages := []provider.ChatMessage{
		{Role: provider.RoleSystem, Content: analysisPrompt},
		{Role: provider.RoleUser, Content: fmt.Sprintf("%s\n\nTRANSCRIPT:\n\n%s", prompt, transcript)},
	}
	return s.provider.Chat(ctx, messages, provider.ChatOptions{MaxTokens: 900})
}
