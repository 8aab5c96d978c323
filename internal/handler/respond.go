package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/fyzahq/fyza/internal/ctxkeys"
	"github.com/fyzahq/fyza/internal/repository"
	"github.com/fyzahq/fyza/internal/service"
	"github.com/fyzahq/fyza/internal/validation"
)

const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail})
}

// writeError maps domain errors to status codes; anything unknown is a 500
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case validation.IsValidationError(err):
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, repository.ErrGoalNotFound):
		writeDetail(w, http.StatusNotFound, "Financial goal not found")
	case errors.Is(err, repository.ErrProfileNotFound):
		writeDetail(w, http.StatusNotFound, "User profile not found")
	case errors.Is(err, service.ErrUnknownUser):
		writeDetail(w, http.StatusNotFound, "User profile not found")
	default:
		ctxkeys.Logger(r.Context()).Error("request failed", "error", err, "method", r.Method, "path", r.URL.Path)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeJSON reads a JSON body into dst. Unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil {
		return &validation.Error{Field: "body", Message: fmt.Sprintf("is not valid JSON: %v", err)}
	}
	return nil
}

func pathInt64(r *http.Request, name string) (int64, error) {
	v, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || v <= 0 {
		return 0, &validation.Error{Field: name, Message: "must be a positive integer"}
	}
	return v, nil
}
