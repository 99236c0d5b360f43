package handlers

import (
	"net/http"

	"github.com/agentstation/strainmap/internal/server/response"
	"github.com/agentstation/strainmap/pkg/errors"
	"github.com/agentstation/strainmap/pkg/labels"
	"github.com/agentstation/strainmap/pkg/library"
	"github.com/agentstation/strainmap/pkg/strains"
	"github.com/agentstation/strainmap/pkg/template"
)

// saveDocumentRequest is the body of POST /api/strains.
type saveDocumentRequest struct {
	Strains []map[string]any `json:"strains"`
}

// HandleGetDocument handles GET /api/strains.
// @Summary Get library document
// @Description Returns the stored document. Query filters narrow the strain list.
// @Tags strains
// @Produce json
// @Param search query string false "Name substring"
// @Param manufacturer query string false "Exact manufacturer"
// @Param effect query string false "Effect substring"
// @Param medical query string false "Medical application substring"
// @Success 200 {object} response.Response{data=library.Document}
// @Router /api/strains [get].
func (h *Handlers) HandleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.store.Document(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}

	q := r.URL.Query()
	filter := library.Filter{
		Search:       q.Get("search"),
		Manufacturer: q.Get("manufacturer"),
		Effect:       q.Get("effect"),
		Medical:      q.Get("medical"),
	}
	if filter != (library.Filter{}) {
		doc.Strains = filter.Apply(doc.Strains)
	}
	response.OK(w, doc)
}

// HandleSaveDocument handles POST /api/strains.
// @Summary Replace library document
// @Description Normalizes and stores the given strain list
// @Tags strains
// @Accept json
// @Produce json
// @Success 200 {object} response.Response{data=library.Document}
// @Failure 400 {object} response.Response{error=response.Error}
// @Router /api/strains [post].
func (h *Handlers) HandleSaveDocument(w http.ResponseWriter, r *http.Request) {
	var req saveDocumentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	if req.Strains == nil {
		fail(w, r, errors.NewValidationError("strains", nil, "must be an array"))
		return
	}

	profiles := make([]strains.Profile, 0, len(req.Strains))
	for _, raw := range req.Strains {
		profiles = append(profiles, strains.Normalize(raw))
	}

	doc, err := h.store.Save(r.Context(), profiles)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.OK(w, doc)
}

// HandleGetStrain handles GET /api/strains/{id}.
// @Summary Get strain
// @Tags strains
// @Produce json
// @Param id path string true "Strain ID"
// @Success 200 {object} response.Response{data=strains.Profile}
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /api/strains/{id} [get].
func (h *Handlers) HandleGetStrain(w http.ResponseWriter, r *http.Request, id string) {
	profile, err := h.store.Get(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.OK(w, profile)
}

// HandlePutStrain handles PUT /api/strains/{id}.
// @Summary Store one strain
// @Description Normalizes the body and replaces or prepends the entry with the path id
// @Tags strains
// @Accept json
// @Produce json
// @Param id path string true "Strain ID"
// @Success 200 {object} response.Response{data=strains.Profile}
// @Router /api/strains/{id} [put].
func (h *Handlers) HandlePutStrain(w http.ResponseWriter, r *http.Request, id string) {
	var raw map[string]any
	if err := decodeJSON(w, r, &raw); err != nil {
		fail(w, r, err)
		return
	}

	profile := strains.Normalize(raw, strains.WithoutTimestamp())
	profile.ID = id

	stored, err := h.store.Upsert(r.Context(), profile)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.OK(w, stored)
}

// HandleDeleteStrain handles DELETE /api/strains/{id}.
// @Summary Delete strain
// @Tags strains
// @Produce json
// @Param id path string true "Strain ID"
// @Success 200 {object} response.Response{data=object}
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /api/strains/{id} [delete].
func (h *Handlers) HandleDeleteStrain(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Delete(r.Context(), id); err != nil {
		fail(w, r, err)
		return
	}
	response.OK(w, map[string]any{"deleted": id})
}

// HandleFacets handles GET /api/facets.
// @Summary Filter values
// @Description Distinct manufacturers, effects, medical applications and terpenes of the library
// @Tags strains
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Router /api/facets [get].
func (h *Handlers) HandleFacets(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.store.Load(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	response.OK(w, map[string]any{
		"manufacturers": library.UniqueValues(profiles, labels.Manufacturer),
		"effects":       library.UniqueValues(profiles, labels.Effects),
		"medical":       library.UniqueValues(profiles, labels.MedicalApplications),
		"terpenes":      library.UniqueValues(profiles, labels.Terpenes),
	})
}

// HandleTemplate handles GET /api/template.
// @Summary Import template
// @Tags import
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Router /api/template [get].
func (h *Handlers) HandleTemplate(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"template":       template.Template,
		"requiredLabels": template.RequiredLabels,
	})
}
