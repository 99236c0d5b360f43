package handlers

import (
	"net/http"
	"time"

	"github.com/agentstation/strainmap/internal/server/response"
)

// HandleHealth handles GET /health.
// @Summary Health check
// @Description Liveness probe with LLM availability
// @Tags health
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Router /health [get].
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "strainmap-api",
		"llm":     h.importer.LLMEnabled(),
		"uptime":  time.Since(h.startTime).Round(time.Second).String(),
	})
}
