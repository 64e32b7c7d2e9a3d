// Package apierr turns DataCite MDS error responses into typed errors.
//
// Connection-level failures (no response at all) surface as *TransportError;
// MDS responses with a failing status code are classified into an *Error
// carrying a Kind (the exact variant) and a Family (request vs. server), so
// callers can branch without parsing message text.
package apierr

import (
	"errors"
)

// Family groups error kinds by what the caller should do about them.
type Family int

const (
	// FamilyRequest: the request itself was wrong (4xx-style, plus 204).
	// Retrying without changing the request won't help.
	FamilyRequest Family = iota + 1
	// FamilyServer: something went wrong on the MDS end. Worth a retry later.
	FamilyServer
)

func (f Family) String() string {
	switch f {
	case FamilyRequest:
		return "request"
	case FamilyServer:
		return "server"
	}
	return "unknown"
}

// Kind identifies the exact error variant for a classified MDS response.
type Kind int

const (
	// KindServer is the fallback for any status code not explicitly mapped.
	KindServer Kind = iota
	// KindNoContent: the DOI is known to MDS but currently not resolvable
	// (e.g. handle system latency).
	KindNoContent
	// KindBadRequest: malformed request body, invalid XML, wrong prefix.
	KindBadRequest
	// KindUnauthorized: bad username or password.
	KindUnauthorized
	// KindForbidden: dataset belongs to another party or quota exceeded.
	KindForbidden
	// KindNotFound: the DOI does not exist in the database.
	KindNotFound
	// KindGone: the dataset was marked inactive.
	KindGone
	// KindPrecondition: metadata must be uploaded first.
	KindPrecondition
)

func (k Kind) String() string {
	switch k {
	case KindNoContent:
		return "no content"
	case KindBadRequest:
		return "bad request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not found"
	case KindGone:
		return "gone"
	case KindPrecondition:
		return "precondition failed"
	case KindServer:
		return "server error"
	}
	return "unknown"
}

// Family reports the family the kind belongs to. Only the fallback server
// kind is in FamilyServer; everything explicitly mapped is a caller mistake.
func (k Kind) Family() Family {
	if k == KindServer {
		return FamilyServer
	}
	return FamilyRequest
}

// Error is a classified MDS error response. Values are immutable after
// construction by Classify.
type Error struct {
	Kind   Kind
	Family Family
	Code   string // HTTP status code, verbatim as classified
	Data   string // raw response body
}

// Error returns "{code}: {data}". Downstream tooling parses this shape, so
// it must stay exactly code, colon, space, body.
func (e *Error) Error() string {
	return e.Code + ": " + e.Data
}

// TransportError wraps a failure where no MDS response was obtained at all
// (connection refused, timeout, DNS). It is never produced by Classify.
type TransportError struct {
	Op  string // what was being attempted, e.g. "GET doi/10.5072/x"
	Err error
}

func (e *TransportError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsRequestError reports whether err is (or wraps) a classified error in the
// request family.
func IsRequestError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Family == FamilyRequest
}

// IsServerError reports whether err is (or wraps) a classified error in the
// server family.
func IsServerError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Family == FamilyServer
}
