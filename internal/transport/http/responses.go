package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "meetsched/pkg/domain-errors"
)

// errorResponse is the JSON error envelope every endpoint shares.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// writeError centralizes domain error translation to HTTP responses so
// every handler emits the same envelope.
func writeError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	body := errorResponse{Error: string(code)}
	var de *dErrors.Error
	if errors.As(err, &de) {
		body.Message = de.Message
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(dErrors.ToHTTPStatus(code))
	_ = json.NewEncoder(w).Encode(body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
