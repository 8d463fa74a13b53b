package session

// Numeric error codes surfaced to callers. The ranges are part of the
// wire contract and must stay stable:
//
//	1000-1999 request/validation errors
//	2000-2999 session operation errors
//	3000-3999 database errors
const (
	CodeInvalidRequest     = 1000
	CodeMissingRequestBody = 1001
	CodeMissingUserID      = 1002
	CodeMissingSessionID   = 1003
	CodeInvalidAction      = 1004

	CodeSessionNotFound          = 2000
	CodeSessionExpired           = 2001
	CodeSessionAlreadyTerminated = 2002

	CodeExtendSessionNotFound = 2020
	CodeExtendSessionExpired  = 2021

	CodeValidateSessionError  = 2030
	CodeTerminateSessionError = 2040

	CodeDatabaseError           = 3000
	CodeDatabaseConnectionError = 3001
	CodeDatabaseQueryError      = 3002
)

// OpError is a failed lifecycle outcome: a caller-facing message plus a
// stable numeric code. Domain outcomes (not-found, expired) are OpErrors,
// not panics or transport faults.
type OpError struct {
	Code    int
	Message string
}

func (e *OpError) Error() string { return e.Message }
