package http

import (
	"github.com/gin-gonic/gin"

	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/apperr"
)

// Error writes err with its mapped status: 400 for validation failures,
// 500 for upstream and internal ones. The detail string is surfaced
// verbatim.
func Error(c *gin.Context, err error) {
	c.JSON(apperr.Status(err), gin.H{"ok": false, "error": apperr.Detail(err)})
}
