package http

import (
	"net/http"

	"github.com/easyhrhq/easyhr/pkg/httpx"
)

// Response is the envelope every endpoint answers with. Data carries the
// payload on success; Errors carries field-level validation messages.
type Response struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func writeSuccess(w http.ResponseWriter, code int, message string, data any) {
	httpx.WriteJSON(w, code, Response{Success: true, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, code int, message string) {
	httpx.WriteJSON(w, code, Response{Success: false, Message: message})
}

// writeValidationErrors returns every failed field at once, so the client
// can render the whole form's problems in one round trip.
func writeValidationErrors(w http.ResponseWriter, errs map[string]string) {
	httpx.WriteJSON(w, http.StatusBadRequest, Response{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}
