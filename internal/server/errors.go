package server

import (
	stderrors "errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/matzehuels/nestedheaders/pkg/errors"
	"github.com/matzehuels/nestedheaders/pkg/observability"
)

// ErrorResponse is the body of every failed API response.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidHeader, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

// fail reports err to the HTTP hooks and writes it as an ErrorResponse.
// Internal errors are logged and their message is not exposed.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if isTooLarge(err) {
		writeError(w, r, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE", "request body too large")
		return
	}

	code := errors.GetCode(err)
	status := statusFor(code)
	observability.HTTP().OnError(r.Context(), r.Method, routePattern(r), err)

	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err, "request_id", getRequestID(r.Context()))
		code = errors.ErrCodeInternal
		msg = "internal server error"
	}
	writeError(w, r, status, string(code), msg)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{
		Code:      code,
		Message:   msg,
		RequestID: getRequestID(r.Context()),
	})
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return stderrors.As(err, &maxErr)
}
