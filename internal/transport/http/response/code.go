package response

import "bookswap/internal/apperr"

// Business codes follow HTTP semantics; the transport status itself stays 200.
const (
	CodeOK           = 0
	CodeBadRequest   = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeConflict     = 409
	CodeServerError  = 500
)

var CodeMsgMap = map[int]string{
	CodeOK:           "OK",
	CodeBadRequest:   "Bad Request",
	CodeUnauthorized: "Unauthorized",
	CodeForbidden:    "Forbidden",
	CodeNotFound:     "Not Found",
	CodeConflict:     "Conflict",
	CodeServerError:  "Internal Server Error",
}

// CodeFor maps an error kind to its business code. This is the single place
// where the taxonomy meets transport codes.
func CodeFor(k apperr.Kind) int {
	switch k {
	case apperr.KindValidation:
		return CodeBadRequest
	case apperr.KindUnauthorized:
		return CodeUnauthorized
	case apperr.KindForbidden:
		return CodeForbidden
	case apperr.KindNotFound:
		return CodeNotFound
	case apperr.KindInvalidState, apperr.KindCapacity:
		return CodeConflict
	default:
		return CodeServerError
	}
}
