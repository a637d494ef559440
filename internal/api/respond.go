package api

import (
	"encoding/json"
	"net/http"

	nferrors "github.com/parametriclab/nodeflow/pkg/errors"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string        `json:"error"`
	Code  nferrors.Code `json:"code,omitempty"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	code := nferrors.GetCode(err)
	s.respondJSON(w, statusFor(code), errorResponse{
		Error: nferrors.UserMessage(err),
		Code:  code,
	})
}

// statusFor maps error codes onto HTTP status codes. Unknown and internal
// codes map to 500.
func statusFor(code nferrors.Code) int {
	switch code {
	case nferrors.ErrCodeInvalidInput, nferrors.ErrCodeInvalidName,
		nferrors.ErrCodeInvalidDocument, nferrors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case nferrors.ErrCodeNotFound, nferrors.ErrCodeGraphNotFound, nferrors.ErrCodeUnknownType:
		return http.StatusNotFound
	case nferrors.ErrCodeAlreadyExists:
		return http.StatusConflict
	case nferrors.ErrCodeGraphInvalid, nferrors.ErrCodeGraphCycle, nferrors.ErrCodeExecutionFailed:
		return http.StatusUnprocessableEntity
	case nferrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
