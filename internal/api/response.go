package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"parlamentodb/internal/config"
)

// Pagination mirrors the limit/offset the caller sent plus the total match
// count before the window was cut.
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

type Meta struct {
	Version      string   `json:"version"`
	Timestamp    string   `json:"timestamp"`
	Legislaturas []string `json:"legislaturas"`
}

// Envelope is the response shape of every list endpoint.
type Envelope struct {
	Data       any         `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Meta       Meta        `json:"meta"`
}

func (h *Handlers) respond(c *gin.Context, data any, p *Pagination) {
	c.JSON(http.StatusOK, Envelope{
		Data:       data,
		Pagination: p,
		Meta: Meta{
			Version:      config.Version,
			Timestamp:    time.Now().UTC().Format(time.RFC3339),
			Legislaturas: h.store.Legislaturas(),
		},
	})
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}
