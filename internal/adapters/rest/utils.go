package rest

import (
	"net/http"

	"github.com/go-chi/render"
)

// RespondWithJSON writes payload with the given status code.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, code int, payload any) {
	render.Status(r, code)
	render.JSON(w, r, payload)
}

func WriteJSONError(w http.ResponseWriter, r *http.Request, code int, message string) {
	RespondWithJSON(w, r, code, ErrorResponse{Error: message})
}

// WriteRetryableError is used when the upstream property list could not be
// fetched and the client may try again.
func WriteRetryableError(w http.ResponseWriter, r *http.Request, code int, message string) {
	RespondWithJSON(w, r, code, ErrorResponse{Error: message, Retryable: true})
}
