package errors

import "net/http"

// Messages carried in the error envelope, keyed by status code.
const (
	MsgBadRequest          = "Bad request"
	MsgNotFound            = "Resource not found"
	MsgMethodNotAllowed    = "Method not allowed"
	MsgPreconditionFailed  = "Precondition failed"
	MsgUnprocessable       = "request cant be processed"
	MsgInternalServerError = "Internal server error"
	MsgBadGateway          = "Upstream dependency unavailable"
	MsgNotImplemented      = "Not implemented"
)

// MessageFor returns the envelope message for status.
func MessageFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return MsgBadRequest
	case http.StatusNotFound:
		return MsgNotFound
	case http.StatusMethodNotAllowed:
		return MsgMethodNotAllowed
	case http.StatusPreconditionFailed:
		return MsgPreconditionFailed
	case http.StatusUnprocessableEntity:
		return MsgUnprocessable
	case http.StatusBadGateway:
		return MsgBadGateway
	case http.StatusNotImplemented:
		return MsgNotImplemented
	default:
		return MsgInternalServerError
	}
}
