// Package docchat implements the document intelligence surface: OCR of
// uploaded PDFs and images, and grounded question answering over the
// extracted markdown.
package docchat

import (
	"context"
	"fmt"

	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/apperr"
	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/imaging"
	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/provider"
	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/upload"
)

const groundingPrompt = "You are a document intelligence assistant. " +
	"Answer using only the document content. " +
	"If the answer is not in the document, say you cannot find it."

type Service struct {
	provider *provider.Client
}

func NewService(p *provider.Client) *Service {
	return &Service{provider: p}
}

// ExtractMarkdown runs OCR on one upload. PDFs are forwarded unmodified;
// images are preprocessed first and forwarded as clean PNG.
func (s *Service) ExtractMarkdown(ctx context.Context, raw []byte, filename, contentType string) (provider.OCRResult, error) {
	ctype := upload.GuessContentType(filename, contentType)

	var src provider.DocumentSource
	switch {
	case upload.IsPDF(filename, ctype):
		src = provider.PDFSource(raw)
	case upload.IsImage(filename, ctype):
		cleaned, err := imaging.Normalize(raw)
		if err != nil {
			return provider.OCRResult{}, apperr.Internal(err, fmt.Sprintf("preprocess %s: %v", filename, err))
		}
		src = provider.ImageSource(imaging.NormalizedContentType, cleaned)
	default:
		return provider.OCRResult{}, apperr.Validation("Only PDF or image files are allowed for OCR.")
	}

	return s.provider.OCR(ctx, src)
}

// Answer asks the chat model a question constrained to the supplied
// document markdown.
func (s *Service) Answer(ctx context.Context, markdown, question string) (string, error) {
	messages := []provider.ChatMessage{
		{Role: provider.RoleSystem, Content: groundingPrompt},
		{Role: provider.RoleUser, Content: fmt.Sprintf("DOCUMENT:\n\n%s\n\nQUESTION:\n%s", markdown, question)},
	}
	return s.provider.Chat(ctx, messages, provider.ChatOptions{})
}
