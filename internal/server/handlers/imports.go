package handlers

import (
	"net/http"
	"strings"

	"github.com/agentstation/strainmap/internal/server/response"
	"github.com/agentstation/strainmap/pkg/importer"
	"github.com/agentstation/strainmap/pkg/reconciler"
	"github.com/agentstation/strainmap/pkg/template"
)

// importRequest is the body of POST /api/import. A missing useLlm uses the
// server default.
type importRequest struct {
	Text   string `json:"text"`
	UseLLM *bool  `json:"useLlm"`
}

// reviewRequest is the body of POST /api/review.
type reviewRequest struct {
	Local   map[string]any `json:"local"`
	LLM     map[string]any `json:"llm"`
	Merged  map[string]any `json:"merged"`
	UsedLLM bool           `json:"usedLlm"`
}

// researchRequest is the body of POST /api/research. Names and free-form
// input are combined.
type researchRequest struct {
	Names []string `json:"names"`
	Input string   `json:"input"`
}

// HandleImport handles POST /api/import.
// @Summary Import strain text
// @Description Runs the local parser and, when enabled, the LLM; returns candidates, merged profile and review rows
// @Tags import
// @Accept json
// @Produce json
// @Success 200 {object} response.Response{data=importer.Result}
// @Failure 400 {object} response.Response{error=response.Error}
// @Router /api/import [post].
func (h *Handlers) HandleImport(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}

	var (
		result *importer.Result
		err    error
	)
	if req.UseLLM != nil && !*req.UseLLM {
		result, err = h.importer.ImportLocal(r.Context(), req.Text)
	} else {
		result, err = h.importer.Import(r.Context(), req.Text)
	}
	if err != nil {
		fail(w, r, err)
		return
	}
	response.OK(w, result)
}

// HandleValidate handles POST /api/template/validate.
// @Summary Validate import text
// @Tags import
// @Accept json
// @Produce json
// @Success 200 {object} response.Response{data=template.Validation}
// @Router /api/template/validate [post].
func (h *Handlers) HandleValidate(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	response.OK(w, template.Validate(req.Text))
}

// HandleReview handles POST /api/review.
// @Summary Score a merged profile
// @Description Recomputes review rows, e.g. after the merged profile was edited
// @Tags import
// @Accept json
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Router /api/review [post].
func (h *Handlers) HandleReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}

	rows := reconciler.Review(req.Local, req.LLM, req.Merged, req.UsedLLM)
	response.OK(w, map[string]any{
		"rows":           rows,
		"summary":        reconciler.Summarize(rows),
		"needsAttention": reconciler.NeedsAttention(rows),
	})
}

// HandleResearch handles POST /api/research.
// @Summary Research strains
// @Description Looks up strain names with the LLM and web search. Results are cached.
// @Tags research
// @Accept json
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Failure 400 {object} response.Response{error=response.Error}
// @Failure 502 {object} response.Response{error=response.Error}
// @Router /api/research [post].
func (h *Handlers) HandleResearch(w http.ResponseWriter, r *http.Request) {
	var req researchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}

	input := strings.Join(append(req.Names, req.Input), "\n")
	names := importer.ParseResearchInput(input)

	if cached, found := h.cache.Research(names); found && len(names) > 0 {
		response.OK(w, map[string]any{"profiles": cached, "cached": true})
		return
	}

	profiles, err := h.importer.Research(r.Context(), strings.Join(names, "\n"))
	if err != nil {
		fail(w, r, err)
		return
	}
	h.cache.SetResearch(names, profiles)
	response.OK(w, map[string]any{"profiles": profiles, "cached": false})
}
