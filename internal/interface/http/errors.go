package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/promisor/internal/application"
	"github.com/oksasatya/promisor/pkg/response"
)

// statusFor maps service errors to HTTP statuses. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, app.ErrInvalidEmail), errors.Is(err, app.ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, app.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, app.ErrAccessDenied), errors.Is(err, app.ErrEmailNotVerified):
		return http.StatusForbidden
	case errors.Is(err, app.ErrMemberNotFound), errors.Is(err, app.ErrTokenNotFound), errors.Is(err, app.ErrBanDateNotFound):
		return http.StatusNotFound
	case errors.Is(err, app.ErrDuplicateEmail), errors.Is(err, app.ErrDuplicateRelation),
		errors.Is(err, app.ErrAlreadyConfirmed), errors.Is(err, app.ErrDuplicateBanDate):
		return http.StatusConflict
	case errors.Is(err, app.ErrTokenExpired):
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("request failed")
		}
		response.Error[any](c, status, "internal error", nil)
		return
	}
	response.Error[any](c, status, err.Error(), nil)
}
