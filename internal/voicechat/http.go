package voicechat

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	httpapi "github.com/riaz-codebi/CPCG-Tech-Studio/internal/api/http"
	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/apperr"
	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/logging"
	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/upload"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/api/voice")
	api.POST("/upload", h.Upload)
	api.POST("/query", h.Query)
	api.POST("/sentiment", h.Sentiment)
	api.POST("/clear/:audio_id", h.Clear)
}

// Upload accepts one audio file and returns its transcript. The
// audio_id identifies the artifact for this exchange only; the
// transcript is round-tripped through the client on later calls.
func (h *Handler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		httpapi.Error(c, apperr.Validation("file is required"))
		return
	}

	if !upload.IsAllowed(file.Filename, file.Header.Get("Content-Type"), upload.KindAudio) {
		httpapi.Error(c, apperr.Validation("Only audio files are allowed."))
		return
	}

	f, err := file.Open()
	if err != nil {
		httpapi.Error(c, apperr.Internal(err, "read upload"))
		return
	}
	raw, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		httpapi.Error(c, apperr.Internal(err, "read upload"))
		return
	}

	audioID := uuid.New().String()

	transcript, err := h.svc.Transcribe(c.Request.Context(), raw, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		logging.New(c.Request.Context()).Error("voice_upload", err)
		httpapi.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"audio_id": audioID, "transcript": transcript})
}

type queryRequest struct {
	AudioID    string `json:"audio_id"`
	Question   string `json:"question"`
	Transcript string `json:"transcript"`
}

// Query answers a question grounded in the supplied transcript.
func (h *Handler) Query(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, apperr.Validation("invalid json body"))
		return
	}

	question := strings.TrimSpace(req.Question)
	transcript := strings.TrimSpace(req.Transcript)

	if question == "" {
		httpapi.Error(c, apperr.Validation("Question is required."))
		return
	}
	if transcript == "" {
		httpapi.Error(c, apperr.Validation("Transcript content is missing."))
		return
	}

	answer, err := h.svc.Answer(c.Request.Context(), transcript, question)
	if err != nil {
		logging.New(c.Request.Context()).Error("voice_query", err)
		httpapi.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

type sentimentRequest struct {
	AudioID    string `json:"audio_id"`
	Transcript string `json:"transcript"`
	// Prompt optionally overrides the default analysis instructions.
	Prompt string `json:"prompt"`
}

// Sentiment runs the sentiment/risk analysis over the transcript.
func (h *Handler) Sentiment(c *gin.Context) {
	var req sentimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, apperr.Validation("invalid json body"))
		return
	}

	transcript := strings.TrimSpace(req.Transcript)
	if transcript == "" {
		httpapi.Error(c, apperr.Validation("Transcript content is missing."))
		return
	}

	analysis, err := h.svc.Analyze(c.Request.Context(), transcript, strings.TrimSpace(req.Prompt))
	if err != nil {
		logging.New(c.Request.Context()).Error("voice_sentiment", err)
		httpapi.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}

// Clear acknowledges the client dropping an audio artifact. There is no
// server-side state keyed by audio_id to delete.
func (h *Handler) Clear(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "audio_id": c.Param("audio_id")})
}
