// Package apperror defines the error taxonomy shared by services and handlers.
// Every error that reaches a client carries a Kind (which picks the HTTP
// status) and a stable machine-readable Code.
package apperror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
)

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Status returns the HTTP status code for the error's kind.
func (e *Error) Status() int {
	return StatusOf(e.Kind)
}

func StatusOf(k Kind) int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func Validation(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func NotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func Forbidden(code, message string) *Error {
	return &Error{Kind: KindAuthorization, Code: code, Message: message}
}

func Conflict(code, message string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: message}
}

var (
	ErrUnauthenticated = &Error{Kind: KindAuthentication, Code: "UNAUTHENTICATED", Message: "Unauthorized: invalid or expired token"}
	ErrInternal        = &Error{Kind: KindInternal, Code: "INTERNAL_ERROR", Message: "Internal server error"}

	ErrSelfReport       = Forbidden("SELF_REPORT", "you cannot report your own content")
	ErrDuplicatePending = Conflict("DUPLICATE_PENDING", "you already have a pending report for this content")
	ErrReportNotFound   = NotFound("REPORT_NOT_FOUND", "report not found")
	ErrInvalidStatus    = Validation("INVALID_STATUS", "status must be RESOLVED or DISMISSED")

	ErrForbidden        = Forbidden("FORBIDDEN", "your role does not allow acting on this user")
	ErrSelfAction       = Forbidden("SELF_ACTION", "you cannot take moderation action against yourself")
	ErrOperatorRequired = Forbidden("OPERATOR_REQUIRED", "admin access required")
	ErrUserBanned       = Forbidden("USER_BANNED", "your account is currently banned")
	ErrInvalidDuration  = Validation("INVALID_DURATION", "duration_days must be a positive number of days for TEMP_BAN")
	ErrPenaltyNotFound  = NotFound("PENALTY_NOT_FOUND", "penalty not found")
	ErrUserNotFound     = NotFound("USER_NOT_FOUND", "user not found")

	ErrContentNotFound       = NotFound("CONTENT_NOT_FOUND", "target content not found")
	ErrCannotHonorOwnContent = Forbidden("CANNOT_HONOR_OWN_CONTENT", "you cannot honor your own comment")
	ErrToggleConflict        = Conflict("TOGGLE_CONFLICT", "concurrent update, please retry")
)

// From classifies err. Anything that is not already an *Error is internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternal
}
