package api

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/hubrank/pkg/errors"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError writes err with the status derived from its code. Internal
// errors are logged and their details withheld.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	msg := errors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
		msg = http.StatusText(status)
	}
	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Code:    string(errors.GetCode(err)),
		Message: msg,
	})
}
