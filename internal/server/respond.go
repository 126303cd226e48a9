package server

import (
	"encoding/json"
	"net/http"

	"github.com/KI-IAN/llm-web-scrapper/internal/model"
)

type errorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	ErrorKind string `json:"error_kind"`
}

// kindStatus maps a domain error kind to an HTTP status code.
func kindStatus(kind model.Kind) int {
	switch kind {
	case model.EINVALID:
		return http.StatusBadRequest
	case model.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	case model.ENETWORK:
		return http.StatusGatewayTimeout
	case model.EUPSTREAM, model.EMALFORMED:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	kind := model.ErrorKind(err)
	writeJSON(w, kindStatus(kind), errorResponse{
		Success:   false,
		Error:     model.ErrorMessage(err),
		ErrorKind: string(kind),
	})
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return model.WrapError(model.EINVALID, err, "invalid request body")
	}
	return nil
}
