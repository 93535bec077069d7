// Package handler holds helpers shared by the HTTP handler packages.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/lvargas/dulceria/internal/domain"
	"github.com/lvargas/dulceria/internal/middleware"
)

// RespondJSON writes v as a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// RespondError maps a domain error to an HTTP status and JSON body.
// Field-level validation errors include the per-field messages; internal
// errors are logged with their cause and reported generically.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	if fields := domain.GetValidationFields(err); fields != nil {
		RespondJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "Validation failed",
			Fields: fields,
		})
		return
	}

	code := errorCode(err)
	status := statusFromCode(code)
	if status == http.StatusInternalServerError {
		middleware.GetLogger(r.Context()).Error("request failed", "error", err)
	}

	message := domain.ErrorMessage(err)
	if _, ok := err.(coder); ok && code != domain.EINTERNAL {
		message = err.Error()
	}

	RespondJSON(w, status, errorResponse{Error: message})
}

// coder is implemented by error types outside the domain package (e.g.,
// storage errors) that still carry a domain-style code.
type coder interface {
	ErrorCode() string
}

func errorCode(err error) string {
	if c, ok := err.(coder); ok {
		return c.ErrorCode()
	}
	return domain.ErrorCode(err)
}

func statusFromCode(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
