package errs

import (
	"errors"
	"net/http"
)

// Kind groups errors by how they are reported to the caller.
type Kind int

const (
	KindInternal Kind = iota
	KindBad
	KindUnauthorized
	KindNotFound
)

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindBad:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Kind Kind
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

func bad(msg string) *Error          { return &Error{Kind: KindBad, msg: msg} }
func unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, msg: msg} }
func notFound(msg string) *Error     { return &Error{Kind: KindNotFound, msg: msg} }
func internal(msg string) *Error     { return &Error{Kind: KindInternal, msg: msg} }

var (
	ErrEmailRequired          = bad("E0001: email is required")
	ErrPasswordRequired       = bad("E0002: password is required")
	ErrIncorrectPassword      = bad("E0003: incorrect password")
	ErrDatabase               = internal("E0004: database error")
	ErrCryptographic          = internal("E0005: cryptographic failure")
	ErrJWT                    = internal("E0006: JWT failure")
	ErrPasswordTooShort       = bad("E0007: password must be 6 or more characters")
	ErrEmailAddressFormat     = bad("E0008: email address format incorrect")
	ErrRegistrationClosed     = bad("E0009: registration is closed")
	ErrAlreadyExists          = bad("E0010: an account with that email already exists")
	ErrUnknownAccount         = bad("E0011: unknown account")
	ErrUnauthorized           = unauthorized("E0012: unauthorized")
	ErrUserNotFound           = notFound("E0013: user not found")
	ErrNotFound               = notFound("E0014: not found")
	ErrInvalidID              = bad("E0015: invalid ID")
	ErrBadToken               = bad("E0016: bad token")
	ErrAlreadyVerified        = bad("E0017: user is already verified")
	ErrMail                   = internal("E0018: error sending email")
	ErrTokenRequired          = bad("E0019: token is required")
	ErrProjectExists          = bad("E0020: you already have a project, edit or delete your existing project")
	ErrNotTeamMember          = bad("E0021: you can only create projects for your team")
	ErrInvalidProjectOrPrize  = bad("E0022: invalid project or prize ID")
	ErrPrizeIDRequired        = bad("E0023: prize ID is required")
	ErrNameRequired           = bad("E0024: name is required")
	ErrTeamRequired           = bad("E0025: team is required")
	ErrNoTeam                 = bad("E0026: user does not have a team")
	ErrInvalidBody            = bad("E0027: invalid request body")
	ErrConfirmationClosed     = bad("E0028: confirmation is closed")
	ErrNotAdmitted            = bad("E0029: user has not been admitted")
	ErrNoEvent                = internal("E0030: current event is not configured")
	ErrCheckinParamsRequired  = bad("E0031: checkInItemID and userID are required")
	ErrMissingAccessToken     = unauthorized("E0032: missing access token")
	ErrInvalidUpdate          = bad("E0033: invalid update")
	ErrAlreadyCheckedIn       = bad("E0034: user already checked in for this item")
	ErrInvalidTime            = bad("E0036: invalid time")
	ErrCheckinItemNotFound    = notFound("E0037: check-in item not found")
	ErrTeamNotFound           = notFound("E0038: team not found")
	ErrProjectNotFound        = notFound("E0039: project not found")
	ErrPrizeNotFound          = notFound("E0040: prize not found")
	ErrSettingsNotInitialized = internal("E0041: settings not initialized")
	ErrPasswordTooLong        = bad("E0042: password must be at most 72 bytes")
)

// KindOf reports the kind of err. Errors outside this package are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindInternal
}
