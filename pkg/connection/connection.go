// Package connection implements the transport layer of the client: it turns
// logical operations (authenticate, search-read, generic model calls) into
// single HTTP requests against the backend, and turns every outcome into
// either a typed payload or an *OperationError. No raw transport error
// escapes this package.
//
// Two historically observed envelope dialects are supported behind one
// interface: the web dialect (session cookie, /web/session and /web/dataset
// endpoints) and the legacy jsonrpc dialect (single /jsonrpc endpoint,
// service/method/args envelopes, uid+password on every object call).
package connection

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/studioerp/odoo.go/pkg/models"
)

// Connection is one transport to the backend.
type Connection interface {
	// Connect verifies the backend is reachable. It does not authenticate.
	Connect(ctx context.Context) error
	Close() error

	// Authenticate exchanges credentials for a session. A reachable backend
	// answering without a user id is an authentication failure, not a
	// success.
	Authenticate(ctx context.Context, login, password string) (*AuthResult, error)
	// Destroy invalidates the remote session. Transports without remote
	// session state treat it as a no-op.
	Destroy(ctx context.Context) error

	// SearchRead runs a filtered, projected, paginated read and returns the
	// raw records plus the server-side total count.
	SearchRead(ctx context.Context, model string, q models.Query) (*RawRecordSet, error)
	// CallKW invokes an arbitrary model method (create, write, unlink, ...).
	CallKW(ctx context.Context, model, method string, args []any, kwargs map[string]any) (json.RawMessage, error)
}

// SessionState is the slice of the session store the transport needs: read
// credentials to attach to outgoing requests, and invalidate the session
// when the backend rejects them.
type SessionState interface {
	Token() string
	UserID() int64
	Invalidate()
}

// RawRecordSet is a RecordSet before entity decoding.
type RawRecordSet struct {
	Records    []json.RawMessage
	TotalCount int
}

type NewConnectionParams struct {
	BaseURL  string
	Database string
	Timeout  time.Duration
	Logger   zerolog.Logger
}
