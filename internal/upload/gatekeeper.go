// Package upload pre-filters incoming files by declared metadata before
// any processing. This is a cheap allow-list check, not a content-sniffing
// guarantee: no payload byte is inspected.
package upload

import (
	"mime"
	"path/filepath"
	"strings"
)

// Kind selects which allow-list applies to an upload.
type Kind int

const (
	// KindDocument covers OCR inputs: PDFs and raster images.
	KindDocument Kind = iota
	// KindImage covers clipboard screenshot captures: images only.
	KindImage
	// KindAudio covers transcription inputs.
	KindAudio
)

var (
	documentExts = map[string]bool{".pdf": true, ".png": true, ".jpg": true, ".jpeg": true}
	imageExts    = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}
	audioExts    = map[string]bool{".mp3": true, ".wav": true, ".m4a": true, ".aac": true, ".flac": true, ".ogg": true, ".webm": true}
)

// IsAllowed reports whether a file with the given name and declared
// content type passes the allow-list for kind. The checks short-circuit:
// a recognized extension wins regardless of the declared MIME type.
func IsAllowed(filename, contentType string, kind Kind) bool {
	ext := Ext(filename)
	ctype := strings.ToLower(strings.TrimSpace(contentType))

	switch kind {
	case KindDocument:
		if documentExts[ext] {
			return true
		}
		if ctype == "application/pdf" {
			return true
		}
		return strings.HasPrefix(ctype, "image/")
	case KindImage:
		if imageExts[ext] {
			return true
		}
		return strings.HasPrefix(ctype, "image/")
	case KindAudio:
		if audioExts[ext] {
			return true
		}
		return strings.HasPrefix(ctype, "audio/")
	default:
		return false
	}
}

// Ext returns the lower-cased extension of the final path segment,
// including the dot, or "" when there is none.
func Ext(filename string) string {
	name := strings.ToLower(strings.TrimSpace(filename))
	if name == "" {
		return ""
	}
	return filepath.Ext(filepath.Base(name))
}

// IsPDF reports whether the declared metadata identifies a PDF. Used by
// the OCR path to decide between document and image forwarding.
func IsPDF(filename, contentType string) bool {
	return strings.ToLower(strings.TrimSpace(contentType)) == "application/pdf" ||
		strings.HasSuffix(strings.ToLower(filename), ".pdf")
}

// IsImage reports whether the declared metadata identifies a raster
// image eligible for preprocessing.
func IsImage(filename, contentType string) bool {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/") {
		return true
	}
	return imageExts[Ext(filename)]
}

// GuessContentType fills in a missing declared content type from the
// filename, falling back to application/octet-stream.
func GuessContentType(filename, declared string) string {
	ctype := strings.ToLower(strings.TrimSpace(declared))
	if ctype != "" {
		return ctype
	}
	if guessed := mime.TypeByExtension(Ext(filename)); guessed != "" {
		return guessed
	}
	return "application/octet-stream"
}
