package docchat

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	httpapi "github.com/riaz-codebi/CPCG-Tech-Studio/internal/api/http"
	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/apperr"
	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/logging"
	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/provider"
	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/upload"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/api/docchat")
	api.POST("/upload", h.Upload)
	api.POST("/upload_clipboard", h.UploadClipboard)
	api.POST("/query", h.Query)
	api.POST("/clear/:doc_id", h.Clear)
}

// Upload accepts one PDF or image and returns its OCR markdown. The
// returned doc_id identifies the artifact for this exchange only;
// nothing is stored server-side.
func (h *Handler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		httpapi.Error(c, apperr.Validation("file is required"))
		return
	}

	if !upload.IsAllowed(file.Filename, file.Header.Get("Content-Type"), upload.KindDocument) {
		httpapi.Error(c, apperr.Validation("Only PDF or image files are allowed."))
		return
	}

	raw, err := readUpload(file)
	if err != nil {
		httpapi.Error(c, apperr.Internal(err, "read upload"))
		return
	}

	docID := uuid.New().String()

	res, err := h.svc.ExtractMarkdown(c.Request.Context(), raw, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		logging.New(c.Request.Context()).Error("docchat_upload", err)
		httpapi.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"doc_id": docID, "pages": res.Pages, "markdown": res.Markdown})
}

// UploadClipboard accepts multiple screenshot images from the clipboard
// capture flow and combines their OCR markdown into one document, in the
// order sent. Every item must pass the image predicate before any item
// is processed.
func (h *Handler) UploadClipboard(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		httpapi.Error(c, apperr.Validation("At least one image is required."))
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		httpapi.Error(c, apperr.Validation("At least one image is required."))
		return
	}

	for _, f := range files {
		if !upload.IsAllowed(f.Filename, f.Header.Get("Content-Type"), upload.KindImage) {
			httpapi.Error(c, apperr.Validation("Only image files are allowed for on-screen capture."))
			return
		}
	}

	docID := uuid.New().String()

	totalPages := 0
	var parts []string

	for idx, f := range files {
		raw, err := readUpload(f)
		if err != nil {
			httpapi.Error(c, apperr.Internal(err, "read upload"))
			return
		}

		filename := f.Filename
		if filename == "" {
			filename = fmt.Sprintf("snip_%d.png", idx+1)
		}

		res, err := h.svc.ExtractMarkdown(c.Request.Context(), raw, filename, f.Header.Get("Content-Type"))
		if err != nil {
			logging.New(c.Request.Context()).Error("docchat_upload_clipboard", err)
			httpapi.Error(c, err)
			return
		}

		// A screenshot always counts as at least one page.
		totalPages += max(res.Pages, 1)
		parts = append(parts, fmt.Sprintf("\n\n---\n\n# Screenshot %d\n\n%s\n", idx+1, strings.TrimSpace(res.Markdown)))
	}

	combined := strings.TrimSpace(strings.Join(parts, "\n"))
	if combined == "" {
		combined = provider.NoTextExtracted
	}

	c.JSON(http.StatusOK, gin.H{"doc_id": docID, "pages": totalPages, "markdown": combined})
}

type queryRequest struct {
	DocID    string `json:"doc_id"`
	Question string `json:"question"`
	// Markdown is round-tripped through the client: there is no
	// server-side document store keyed by doc_id.
	Markdown string `json:"markdown"`
}

// Query answers a question grounded in the supplied document markdown.
func (h *Handler) Query(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, apperr.Validation("invalid json body"))
		return
	}

	question := strings.TrimSpace(req.Question)
	markdown := strings.TrimSpace(req.Markdown)

	if question == "" {
		httpapi.Error(c, apperr.Validation("Question is required."))
		return
	}
	if markdown == "" {
		httpapi.Error(c, apperr.Validation("Document content is missing."))
		return
	}

	answer, err := h.svc.Answer(c.Request.Context(), markdown, question)
	if err != nil {
		logging.New(c.Request.Context()).Error("docchat_query", err)
		httpapi.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

// Clear acknowledges the client dropping a document. There is no
// server-side state keyed by doc_id to delete.
func (h *Handler) Clear(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "doc_id": c.Param("doc_id")})
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
