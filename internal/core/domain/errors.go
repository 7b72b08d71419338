package domain

import "errors"

// ErrorKind classifies a domain error for transport mapping.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindConflict
	KindAuth
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error is a user-facing failure. Message is returned to clients verbatim.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Registration / login.
var (
	ErrMissingFields      = newError(KindValidation, "All fields are required")
	ErrUserExists         = newError(KindConflict, "User already exists")
	ErrInvalidCredentials = newError(KindAuth, "Invalid email or password")
)

// Session guard.
var (
	ErrNoToken      = newError(KindAuth, "Not authorized, no token provided")
	ErrTokenRevoked = newError(KindAuth, "Token has been revoked. Please log in again.")
	ErrTokenExpired = newError(KindAuth, "Session expired, please log in again.")
	ErrInvalidToken = newError(KindAuth, "Invalid token, please log in again.")
	ErrUserNotFound = newError(KindNotFound, "User not found, please log in again.")
)

// Analysis.
var (
	ErrPromptRequired  = newError(KindValidation, "Prompt is required")
	ErrEmptyGeneration = newError(KindInternal, "analysis provider returned an empty response")
	ErrUnscoredReport  = newError(KindInternal, "analysis response did not contain a numeric score")
	ErrUnknownProfile  = newError(KindValidation, "unknown analysis profile")
)

// KindOf reports the kind of err, or KindInternal when err carries no
// domain error.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
