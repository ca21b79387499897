package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/Deepak1230987/Conference-Management-Application-sub001/internal/pkg/errors"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/platform/apierr"
)

// MapError translates service errors into an HTTP status and machine code.
// Unknown errors map to 500 so nothing leaks a fake success.
func MapError(err error) (int, string) {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) && apiErr.Status != 0 {
		return apiErr.Status, apiErr.Code
	}
	switch {
	case errors.Is(err, pkgerrors.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, pkgerrors.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, pkgerrors.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, pkgerrors.ErrValidation):
		return http.StatusBadRequest, "validation_failed"
	case errors.Is(err, pkgerrors.ErrInvalidTransition):
		return http.StatusConflict, "invalid_transition"
	case errors.Is(err, pkgerrors.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, pkgerrors.ErrNoCurrentEntry):
		return http.StatusConflict, "no_current_entry"
	}
	return http.StatusInternalServerError, "internal_error"
}

func RespondFromError(c *gin.Context, err error) {
	status, code := MapError(err)
	RespondError(c, status, code, err)
}

// RespondBadRequest is the short path for request-shape failures in handlers.
func RespondBadRequest(c *gin.Context, err error) {
	RespondFromError(c, apierr.BadRequest(err))
}
