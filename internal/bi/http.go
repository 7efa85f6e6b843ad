package bi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/session"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/tools/bi", h.Portfolio)
}

// Portfolio lists the dashboard registry with its derived category list.
func (h *Handler) Portfolio(c *gin.Context) {
	reports := Reports()

	c.JSON(http.StatusOK, gin.H{
		"title":      "Business Intelligence",
		"user":       session.CurrentUser(c),
		"reports":    reports,
		"categories": Categories(reports),
	})
}
