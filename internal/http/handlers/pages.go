package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed pages/*.html
var pagesFS embed.FS

// Templates parses the embedded chat and dashboard pages.
func Templates() *template.Template {
	return template.Must(template.ParseFS(pagesFS, "pages/*.html"))
}

type PageHandler struct {
	pollSeconds int
}

func NewPageHandler(pollSeconds int) *PageHandler {
	if pollSeconds <= 0 {
		pollSeconds = 5
	}
	return &PageHandler{pollSeconds: pollSeconds}
}

// GET /
func (h *PageHandler) Chat(c *gin.Context) {
	c.HTML(http.StatusOK, "chat.html", nil)
}

// GET /dashboard
func (h *PageHandler) Dashboard(c *gin.Context) {
	c.HTML(http.StatusOK, "dashboard.html", gin.H{"PollMillis": h.pollSeconds * 1000})
}
