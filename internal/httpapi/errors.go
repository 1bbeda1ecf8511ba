package httpapi

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/example/vocabquiz/internal/apperr"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// MessageResponse is the body of requests that only confirm an action
type MessageResponse struct {
	Message string `json:"message"`
}

var statusByKind = map[string]int{
	apperr.KindValidation:      http.StatusBadRequest,
	apperr.KindNotFound:        http.StatusNotFound,
	apperr.KindForbidden:       http.StatusForbidden,
	apperr.KindPersistence:     http.StatusInternalServerError,
	apperr.KindDegenerateInput: http.StatusUnprocessableEntity,
	apperr.KindUnauthenticated: http.StatusUnauthorized,
	apperr.KindConflict:        http.StatusConflict,
	apperr.KindInternal:        http.StatusInternalServerError,
}

// respondError writes err as an ErrorResponse. Store and unexpected failures are logged with op
// and answered with a generic message.
func respondError(c *gin.Context, op string, err error) {
	kind := apperr.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	message := userMessage(err)
	if status == http.StatusInternalServerError {
		log.Printf("Error in %s: %v", op, err)
		message = "an internal error occurred, please try again later"
	}

	c.AbortWithStatusJSON(status, ErrorResponse{Error: kind, Message: message})
}

// userMessage drops the sentinel prefix ("validation error: ...") from an error message
func userMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{
		apperr.ErrValidation,
		apperr.ErrNotFound,
		apperr.ErrForbidden,
		apperr.ErrDegenerateInput,
		apperr.ErrUnauthenticated,
		apperr.ErrConflict,
	} {
		if errors.Is(err, sentinel) {
			return strings.TrimPrefix(msg, sentinel.Error()+": ")
		}
	}
	return msg
}
