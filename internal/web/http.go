// Package web serves the browser-facing entry pages.
package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/session"
)

type Handler struct {
	appName string
}

func NewHandler(appName string) *Handler {
	return &Handler{appName: appName}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.Home)
	r.GET("/studio", session.RequireLogin(), h.Studio)
}

// Home is the public entry point.
func (h *Handler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"app_name": h.appName,
		"login":    "/auth/google/login",
	})
}

// Studio is the authenticated landing page.
func (h *Handler) Studio(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title":      h.appName,
		"page_title": "Studio Home",
		"user":       session.CurrentUser(c),
	})
}
