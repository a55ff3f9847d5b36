package api

import (
	"net/http"

	"github.com/phrazzld/scent-api/internal/api/shared"
)

// decodeAndValidate decodes the JSON body into req and validates it,
// writing a 400 response on failure. It reports whether the handler
// should continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}
