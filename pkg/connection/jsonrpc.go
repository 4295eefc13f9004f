package connection

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/studioerp/odoo.go/internal/rand"
	"github.com/studioerp/odoo.go/pkg/constants"
	"github.com/studioerp/odoo.go/pkg/models"
)

// JSONRPCConnection speaks the legacy dialect: every operation goes to the
// single /jsonrpc endpoint with a service/method/args envelope, and object
// calls carry db, uid and password instead of a session cookie. There is no
// remote session to destroy; Destroy only drops the held credentials.
type JSONRPCConnection struct {
	baseURL    string
	database   string
	httpClient *http.Client
	session    SessionState
	log        zerolog.Logger

	// captured by Authenticate; the legacy envelope re-sends them per call.
	// The mutex keeps a Destroy racing an in-flight call well-defined: the
	// call either carries the old credentials or none at all.
	mu       sync.RWMutex
	uid      int64
	password string
}

func NewJSONRPC(p NewConnectionParams) *JSONRPCConnection {
	timeout := p.Timeout
	if timeout == 0 {
		timeout = constants.DefaultTimeout
	}
	return &JSONRPCConnection{
		baseURL:    strings.TrimRight(p.BaseURL, "/"),
		database:   p.Database,
		httpClient: &http.Client{Timeout: timeout},
		log:        p.Logger,
	}
}

func (c *JSONRPCConnection) BindSession(s SessionState) *JSONRPCConnection {
	c.session = s
	return c
}

func (c *JSONRPCConnection) SetHTTPClient(client *http.Client) *JSONRPCConnection {
	c.httpClient = client
	return c
}

func (c *JSONRPCConnection) SetTimeout(timeout time.Duration) *JSONRPCConnection {
	c.httpClient.Timeout = timeout
	return c
}

func (c *JSONRPCConnection) Connect(ctx context.Context) error {
	if c.baseURL == "" {
		return constants.ErrNoBaseURL
	}
	if c.database == "" {
		return constants.ErrNoDatabase
	}
	_, err := c.call(ctx, "common", "version", []any{})
	return err
}

func (c *JSONRPCConnection) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *JSONRPCConnection) Authenticate(ctx context.Context, login, password string) (*AuthResult, error) {
	result, err := c.call(ctx, "common", "login", []any{c.database, login, password})
	if err != nil {
		return nil, err
	}

	// the common service answers the bare uid, or false on rejection
	var uid int64
	if err := json.Unmarshal(result, &uid); err != nil || uid == 0 {
		return nil, unauthorized("invalid credentials")
	}

	c.mu.Lock()
	c.uid = uid
	c.password = password
	c.mu.Unlock()
	return &AuthResult{UserID: uid, Username: login, Database: c.database}, nil
}

func (c *JSONRPCConnection) Destroy(ctx context.Context) error {
	c.mu.Lock()
	c.uid = 0
	c.password = ""
	c.mu.Unlock()
	return nil
}

// SearchRead needs two calls on this dialect: the legacy execute_kw
// search_read answers a bare array without the matching total, so the total
// comes from a follow-up search_count over the same domain.
func (c *JSONRPCConnection) SearchRead(ctx context.Context, model string, q models.Query) (*RawRecordSet, error) {
	kwargs := map[string]any{
		"fields": nonNilFields(q.Fields),
		"limit":  q.Limit,
		"offset": q.Offset,
	}
	if q.Order != "" {
		kwargs["order"] = q.Order
	}

	result, err := c.execute(ctx, model, "search_read", []any{nonNilDomain(q.Domain)}, kwargs)
	if err != nil {
		return nil, err
	}
	set, err := normalizeRecords(result)
	if err != nil {
		return nil, err
	}

	countRaw, err := c.execute(ctx, model, "search_count", []any{nonNilDomain(q.Domain)}, nil)
	if err != nil {
		return nil, err
	}
	var total int
	if err := json.Unmarshal(countRaw, &total); err == nil {
		set.TotalCount = total
	}
	return set, nil
}

func (c *JSONRPCConnection) CallKW(ctx context.Context, model, method string, args []any, kwargs map[string]any) (json.RawMessage, error) {
	return c.execute(ctx, model, method, args, kwargs)
}

func (c *JSONRPCConnection) execute(ctx context.Context, model, method string, args []any, kwargs map[string]any) (json.RawMessage, error) {
	c.mu.RLock()
	uid, password := c.uid, c.password
	c.mu.RUnlock()
	if uid == 0 && c.session != nil {
		uid = c.session.UserID()
	}
	if uid == 0 {
		return nil, unauthorized(constants.ErrNoSession.Error())
	}
	if args == nil {
		args = []any{}
	}
	if kwargs == nil {
		kwargs = map[string]any{}
	}
	return c.call(ctx, "object", "execute_kw",
		[]any{c.database, uid, password, model, method, args, kwargs})
}

func (c *JSONRPCConnection) call(ctx context.Context, service, method string, args []any) (json.RawMessage, error) {
	rpcReq := &RPCRequest{
		JSONRPC: "2.0",
		ID:      rand.String(constants.RequestIDLength),
		Method:  "call",
		Params: map[string]any{
			"service": service,
			"method":  method,
			"args":    args,
		},
	}
	reqBody, err := json.Marshal(rpcReq)
	if err != nil {
		return nil, &OperationError{Code: constants.CodeBadRequest, Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+constants.EndpointJSONRPC, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, &OperationError{Code: constants.CodeBadRequest, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("service", service).Str("method", method).Msg("backend unreachable")
		return nil, unavailable()
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, unavailable()
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.invalidate()
		return nil, unauthorized("")
	}

	var rpcResp RPCResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, &OperationError{Code: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return nil, &OperationError{Code: constants.CodeOperationFailed, Message: constants.ErrInvalidResponse.Error()}
	}

	if rpcResp.Error != nil {
		if isAccessDenied(rpcResp.Error) {
			c.invalidate()
			return nil, unauthorized(rpcResp.Error.Message)
		}
		code := constants.CodeBadRequest
		if resp.StatusCode >= http.StatusBadRequest {
			code = resp.StatusCode
		}
		return nil, &OperationError{Code: code, Message: rpcResp.Error.Message, Data: rpcResp.Error.Data}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &OperationError{Code: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	return rpcResp.Result, nil
}

func (c *JSONRPCConnection) invalidate() {
	c.mu.Lock()
	c.uid = 0
	c.password = ""
	c.mu.Unlock()
	if c.session != nil {
		c.session.Invalidate()
	}
}

// The legacy dialect reports rejected credentials on object calls as an
// AccessDenied fault inside a 200 reply.
func isAccessDenied(rpcErr *RPCError) bool {
	return strings.Contains(strings.ToLower(rpcErr.Message), "access denied")
}
