package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shindelr/Session-Logger-API/pkg/application"
	"github.com/shindelr/Session-Logger-API/pkg/sessions"
	traits "github.com/shindelr/Session-Logger-API/pkg/traits/controller-traits"

	"github.com/julienschmidt/httprouter"
)

// Create ingests a complete observation: the caller supplies every
// environmental reading itself.
func Create(app *application.Application) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		var obs sessions.Observation
		if err := json.NewDecoder(r.Body).Decode(&obs); err != nil {
			traits.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}

		sessionID, err := app.Ingestor.Ingest(r.Context(), obs)
		if err != nil {
			writeIngestError(w, err)
			return
		}

		traits.WriteResponseWithStatus(w, http.StatusCreated, map[string]interface{}{
			"session_id": sessionID,
		})
	}
}

// writeIngestError maps the ingestion error taxonomy onto HTTP statuses.
// Reference resolution misses are distinct from storage failures.
func writeIngestError(w http.ResponseWriter, err error) {
	var validationErr *sessions.ValidationError

	switch {
	case errors.Is(err, sessions.ErrUnknownLocation), errors.Is(err, sessions.ErrUnknownUser):
		traits.WriteErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.As(err, &validationErr):
		traits.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		traits.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
	}
}
