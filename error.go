package pageblocks

import (
	"crypto/x509"
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL     = "internal"
	EINVALID      = "invalid"
	ENOTFOUND     = "not_found"
	EFETCH        = "fetch_failed"
	EUNRECOGNIZED = "unrecognized_type"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("pageblocks error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// A FetchError is always EFETCH, whatever its cause.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	var fe *FetchError
	if err == nil {
		return ""
	} else if errors.As(err, &fe) {
		return EFETCH
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	var fe *FetchError
	if err == nil {
		return ""
	} else if errors.As(err, &fe) {
		return fe.Error()
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// FetchError reports a failed page or image retrieval.
// Either StatusCode is set (the server answered with something other than
// 200) or Err holds the transport failure.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Hint returns a suggested remediation for the failure.
func (e *FetchError) Hint() string {
	var unknownAuthority x509.UnknownAuthorityError
	var hostname x509.HostnameError
	var invalid x509.CertificateInvalidError
	if errors.As(e.Err, &unknownAuthority) || errors.As(e.Err, &hostname) || errors.As(e.Err, &invalid) {
		return "update the certificate store of this machine, or retry with certificate verification disabled (--insecure)"
	}
	if e.StatusCode != 0 {
		return "the site may be restricted and rejecting automated requests"
	}
	return "the site may not exist or may be unreachable; if it uses a private certificate, retry with --insecure"
}
