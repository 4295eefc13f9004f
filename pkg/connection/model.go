package connection

import (
	"github.com/goccy/go-json"

	"github.com/studioerp/odoo.go/pkg/constants"
)

// RPCRequest is the JSON-RPC envelope both dialects share.
type RPCRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      any    `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

// RPCResponse is the envelope of a backend reply. Result stays raw until the
// caller knows its shape.
type RPCResponse struct {
	JSONRPC string          `json:"jsonrpc,omitempty"`
	ID      any             `json:"id,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
}

// RPCError is the application-level error object the backend embeds in an
// otherwise successful reply.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (r *RPCError) Error() string {
	return r.Message
}

// OperationError is the one error shape consumers handle. Code follows the
// taxonomy in pkg/constants; Data carries whatever detail the backend
// attached, opaque to this layer.
type OperationError struct {
	Code    int
	Message string
	Data    json.RawMessage
}

func (e *OperationError) Error() string {
	return e.Message
}

// Unwrap maps the code onto the sentinel errors so callers can use
// errors.Is against pkg/constants without inspecting codes.
func (e *OperationError) Unwrap() error {
	switch e.Code {
	case constants.CodeUnauthorized:
		return constants.ErrUnauthorized
	case constants.CodeServiceUnavailable:
		return constants.ErrServiceUnavailable
	}
	return nil
}

func unauthorized(message string) *OperationError {
	if message == "" {
		message = constants.ErrUnauthorized.Error()
	}
	return &OperationError{Code: constants.CodeUnauthorized, Message: message}
}

func unavailable() *OperationError {
	return &OperationError{Code: constants.CodeServiceUnavailable, Message: constants.ErrServiceUnavailable.Error()}
}

// AuthResult is the payload of a successful credential exchange. UserID is
// mandatory; SessionToken is empty on transports without cookie sessions.
type AuthResult struct {
	UserID       int64  `json:"uid"`
	SessionToken string `json:"session_id,omitempty"`
	Username     string `json:"username,omitempty"`
	Database     string `json:"db,omitempty"`
	DisplayName  string `json:"name,omitempty"`
	PartnerID    int64  `json:"partner_id,omitempty"`
}
