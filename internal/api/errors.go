package api

import (
	"net/http"

	"github.com/phrazzld/repetify-api/internal/api/shared"
	"github.com/phrazzld/repetify-api/internal/result"
)

// StatusCodeForResult maps a service outcome status to the HTTP status
// code the API reports for it.
func StatusCodeForResult(status result.Status) int {
	switch status {
	case result.StatusSuccess:
		return http.StatusOK
	case result.StatusNotFound:
		return http.StatusNotFound
	case result.StatusConflict:
		return http.StatusConflict
	case result.StatusInvalidArguments:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithResultError writes the error response for a failed service
// outcome. The outcome's message is already sanitized by the service
// layer, so it is safe to hand to the client as-is.
func RespondWithResultError[T any](w http.ResponseWriter, r *http.Request, res result.Result[T]) {
	message := res.Message
	if message == "" {
		message = "An unexpected error occurred"
	}
	shared.RespondWithError(w, r, StatusCodeForResult(res.Status), message)
}
