package constants

import "time"

const (
	// RequestIDLength size of the id attached to every RPC envelope
	RequestIDLength = 16
	// DefaultLimit is the pagination ceiling applied when a query does not
	// set one. Callers page past it with Offset; it is not a hard cap.
	DefaultLimit = 80
	// DefaultTimeout is the fixed per-call network timeout
	DefaultTimeout = 10 * time.Second
)

// Endpoint paths for the web (dataset/call_kw) transport
const (
	EndpointAuthenticate = "/web/session/authenticate"
	EndpointDestroy      = "/web/session/destroy"
	EndpointSearchRead   = "/web/dataset/search_read"
	EndpointCallKW       = "/web/dataset/call_kw"
	// EndpointJSONRPC is the single endpoint of the legacy service/execute transport
	EndpointJSONRPC = "/jsonrpc"
)

const (
	// SnapshotKey is the fixed key the session snapshot is stored under
	SnapshotKey = "odoo_session"
	// SessionCookie is the cookie name carrying the web session token
	SessionCookie = "session_id"
)
