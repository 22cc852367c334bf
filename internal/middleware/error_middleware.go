package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/traineehub/internal/app/models/dto"
	"github.com/yigit/traineehub/internal/pkg/apperrors"
	"github.com/yigit/traineehub/internal/pkg/logger"
)

type errorMapping struct {
	targets []error
	status  int
	code    dto.ErrorCode
	message string
}

func mapErrors(status int, code dto.ErrorCode, message string, targets ...error) errorMapping {
	return errorMapping{targets: targets, status: status, code: code, message: message}
}

// errorMappings is checked in order; the first match wins.
var errorMappings = []errorMapping{
	mapErrors(http.StatusInternalServerError, dto.ErrorCodeDatabaseError, "Failed to load alerts",
		apperrors.ErrAlertsUnavailable),
	mapErrors(http.StatusInternalServerError, dto.ErrorCodeDatabaseError, "Failed to load statistics",
		apperrors.ErrStatsUnavailable),
	mapErrors(http.StatusInternalServerError, dto.ErrorCodeDatabaseError, "Failed to load recent activities",
		apperrors.ErrActivitiesUnavailable),
	mapErrors(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found",
		apperrors.ErrResourceNotFound, apperrors.ErrUserNotFound, apperrors.ErrTraineeNotFound,
		apperrors.ErrCertificateNotFound, apperrors.ErrHealthRecordNotFound, apperrors.ErrSkillNotFound,
		apperrors.ErrEvaluationNotFound, apperrors.ErrInterviewNotFound, apperrors.ErrOJTRecordNotFound,
		apperrors.ErrDevelopmentPlanNotFound, apperrors.ErrNotificationNotFound),
	mapErrors(http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists",
		apperrors.ErrResourceAlreadyExists, apperrors.ErrEmailAlreadyExists,
		apperrors.ErrTraineeCodeAlreadyExists, apperrors.ErrSkillAlreadyExists),
	mapErrors(http.StatusConflict, dto.ErrorCodeConflict, "Conflict",
		apperrors.ErrConflict),
	mapErrors(http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied",
		apperrors.ErrPermissionDenied, apperrors.ErrInvalidScope),
	mapErrors(http.StatusForbidden, dto.ErrorCodeAccountDisabled, "Account is disabled",
		apperrors.ErrAccountDisabled),
	mapErrors(http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid email or password",
		apperrors.ErrInvalidCredentials),
	mapErrors(http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired",
		apperrors.ErrTokenExpired),
	mapErrors(http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token",
		apperrors.ErrTokenInvalid),
	mapErrors(http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found",
		apperrors.ErrTokenNotFound),
	mapErrors(http.StatusBadRequest, dto.ErrorCodeInvalidPassword, "Invalid password",
		apperrors.ErrInvalidPassword),
	mapErrors(http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed",
		apperrors.ErrValidationFailed),
	mapErrors(http.StatusBadRequest, dto.ErrorCodeBadRequest, "Bad request",
		apperrors.ErrBadRequest),
}

// resolveError maps err onto a status and error detail. A CustomError message
// replaces the generic one for client errors; server errors stay opaque.
func resolveError(err error) (int, *dto.ErrorDetail) {
	status, code, message := http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"
	for _, m := range errorMappings {
		if apperrors.Is(err, m.targets[0], m.targets[1:]...) {
			status, code, message = m.status, m.code, m.message
			break
		}
	}

	detail := dto.NewErrorDetail(code, message)

	var customErr *apperrors.CustomError
	if status < http.StatusInternalServerError && errors.As(err, &customErr) {
		if customErr.Message != "" {
			detail.Message = customErr.Message
		}
		if customErr.Details != nil {
			detail.Details = customErr.Details
		}
	}
	return status, detail
}

// HandleAPIError writes the error response for err
func HandleAPIError(c *gin.Context, err error) {
	status, detail := resolveError(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Str("code", string(detail.Code)).
			Msg("Request failed")
	}
	c.JSON(status, dto.NewFailureResponse(detail))
}

// AbortWithAPIError writes the error response and stops the handler chain
func AbortWithAPIError(c *gin.Context, err error) {
	HandleAPIError(c, err)
	c.Abort()
}
