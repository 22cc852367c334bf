package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidScope     = errors.New("role has no dashboard scope")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Trainee record errors
var (
	ErrTraineeNotFound          = errors.New("trainee not found")
	ErrTraineeCodeAlreadyExists = errors.New("trainee code already exists")
	ErrCertificateNotFound      = errors.New("certificate not found")
	ErrHealthRecordNotFound     = errors.New("health record not found")
	ErrSkillNotFound            = errors.New("skill not found")
	ErrSkillAlreadyExists       = errors.New("skill with this name already exists")
	ErrEvaluationNotFound       = errors.New("evaluation not found")
	ErrInterviewNotFound        = errors.New("interview not found")
	ErrOJTRecordNotFound        = errors.New("ojt record not found")
	ErrDevelopmentPlanNotFound  = errors.New("development plan not found")
	ErrNotificationNotFound     = errors.New("notification not found")
)

// Dashboard errors. Each one means the whole response is unavailable; partial
// results are never returned.
var (
	ErrAlertsUnavailable     = errors.New("alerts unavailable")
	ErrStatsUnavailable      = errors.New("statistics unavailable")
	ErrActivitiesUnavailable = errors.New("recent activities unavailable")
)

// NewForbiddenError wraps ErrPermissionDenied with a caller facing message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewBadRequestError wraps ErrBadRequest with a caller facing message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}

// Is reports whether err matches target or any of errList.
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// CustomError attaches a client message and optional details to a sentinel.
// errors.Is still matches the sentinel through Unwrap.
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{Err: err, Message: message}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
