// Package handlers provides HTTP request handlers for the strainmap API.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/agentstation/strainmap/internal/server/cache"
	"github.com/agentstation/strainmap/internal/server/response"
	"github.com/agentstation/strainmap/pkg/constants"
	"github.com/agentstation/strainmap/pkg/errors"
	"github.com/agentstation/strainmap/pkg/importer"
	"github.com/agentstation/strainmap/pkg/library"
	"github.com/agentstation/strainmap/pkg/logging"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	store     *library.Store
	importer  *importer.Importer
	cache     *cache.Cache
	startTime time.Time
}

// New creates a new Handlers instance.
func New(store *library.Store, imp *importer.Importer, c *cache.Cache, startTime time.Time) *Handlers {
	return &Handlers{
		store:     store,
		importer:  imp,
		cache:     c,
		startTime: startTime,
	}
}

// decodeJSON reads a size-limited JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, constants.MaxRequestBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return errors.NewValidationError("body", nil, "invalid JSON request body: "+err.Error())
	}
	return nil
}

// fail logs err with the request logger and writes the mapped response.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	logging.FromContext(r.Context()).Warn().Err(err).Msg("Request failed")
	response.ErrorFromType(w, err)
}
