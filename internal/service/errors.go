package service

import (
	"errors"

	"Team_Social/internal/repository"
)

type ErrorKind string

const (
	KindValidation   ErrorKind = "VALIDATION"
	KindAuthRequired ErrorKind = "AUTHENTICATION_REQUIRED"
	KindForbidden    ErrorKind = "FORBIDDEN"
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindConflict     ErrorKind = "CONFLICT"
	KindSelfRef      ErrorKind = "SELF_REFERENCE"
	KindBackend      ErrorKind = "BACKEND"
)

// ActionError 展示给用户的错误，Message 可直接渲染
type ActionError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *ActionError) Error() string { return e.Message }

func (e *ActionError) Unwrap() error { return e.Cause }

func newError(kind ErrorKind, msg string, cause error) *ActionError {
	return &ActionError{Kind: kind, Message: msg, Cause: cause}
}

func validationError(msg string) error { return newError(KindValidation, msg, nil) }

func authRequired(msg string) error { return newError(KindAuthRequired, msg, nil) }

// KindOf 非 ActionError 一律视为后端错误
func KindOf(err error) ErrorKind {
	var ae *ActionError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindBackend
}

// classify 把仓储层的哨兵错误翻译成用户可读的消息
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ae *ActionError
	if errors.As(err, &ae) {
		return ae
	}
	switch {
	case errors.Is(err, repository.ErrDuplicateMembership):
		return newError(KindConflict, "You are already a member of a team", err)
	case errors.Is(err, repository.ErrDuplicateFollow):
		return newError(KindConflict, "Already following this team", err)
	case errors.Is(err, repository.ErrDuplicateHandle):
		return newError(KindConflict, "That team handle is already taken", err)
	case errors.Is(err, repository.ErrDuplicateEmail):
		return newError(KindConflict, "An account with this email already exists", err)
	case errors.Is(err, repository.ErrIdentityConflict):
		return newError(KindConflict, "This email is already linked to a different sign-in", err)
	case errors.Is(err, repository.ErrInviteCodeExhausted):
		return newError(KindConflict, "Could not generate a new invite code, please try again", err)
	case errors.Is(err, repository.ErrInvalidInviteCode):
		return newError(KindValidation, "Invalid invite code", err)
	case errors.Is(err, repository.ErrSelfFollow):
		return newError(KindSelfRef, "Cannot follow your own team", err)
	case errors.Is(err, repository.ErrNotFound):
		return newError(KindNotFound, "Team not found", err)
	default:
		return newError(KindBackend, err.Error(), err)
	}
}
