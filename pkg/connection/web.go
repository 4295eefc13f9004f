package connection

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/studioerp/odoo.go/pkg/constants"
	"github.com/studioerp/odoo.go/pkg/models"
)

// WebConnection speaks the web dialect: cookie-based sessions established at
// /web/session/authenticate and generic operations at the /web/dataset
// endpoints. This is the transport a browser frontend proxies to.
type WebConnection struct {
	baseURL    string
	database   string
	httpClient *http.Client
	session    SessionState
	log        zerolog.Logger
}

func NewWeb(p NewConnectionParams) *WebConnection {
	timeout := p.Timeout
	if timeout == 0 {
		timeout = constants.DefaultTimeout
	}
	return &WebConnection{
		baseURL:    strings.TrimRight(p.BaseURL, "/"),
		database:   p.Database,
		httpClient: &http.Client{Timeout: timeout},
		log:        p.Logger,
	}
}

// BindSession attaches the session store whose credentials ride on every
// request and which gets invalidated on a 401-equivalent reply.
func (w *WebConnection) BindSession(s SessionState) *WebConnection {
	w.session = s
	return w
}

func (w *WebConnection) SetHTTPClient(client *http.Client) *WebConnection {
	w.httpClient = client
	return w
}

func (w *WebConnection) SetTimeout(timeout time.Duration) *WebConnection {
	w.httpClient.Timeout = timeout
	return w
}

func (w *WebConnection) Connect(ctx context.Context) error {
	if w.baseURL == "" {
		return constants.ErrNoBaseURL
	}
	if w.database == "" {
		return constants.ErrNoDatabase
	}
	_, err := w.call(ctx, "/web/webclient/version_info", map[string]any{})
	return err
}

func (w *WebConnection) Close() error {
	w.httpClient.CloseIdleConnections()
	return nil
}

func (w *WebConnection) Authenticate(ctx context.Context, login, password string) (*AuthResult, error) {
	result, err := w.call(ctx, constants.EndpointAuthenticate, map[string]any{
		"db":       w.database,
		"login":    login,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	return parseAuthResult(result, w.database)
}

func (w *WebConnection) Destroy(ctx context.Context) error {
	_, err := w.call(ctx, constants.EndpointDestroy, map[string]any{})
	return err
}

func (w *WebConnection) SearchRead(ctx context.Context, model string, q models.Query) (*RawRecordSet, error) {
	result, err := w.call(ctx, constants.EndpointSearchRead, map[string]any{
		"model":  model,
		"domain": nonNilDomain(q.Domain),
		"fields": nonNilFields(q.Fields),
		"limit":  q.Limit,
		"offset": q.Offset,
		"sort":   q.Order,
	})
	if err != nil {
		return nil, err
	}
	return normalizeRecords(result)
}

func (w *WebConnection) CallKW(ctx context.Context, model, method string, args []any, kwargs map[string]any) (json.RawMessage, error) {
	if args == nil {
		args = []any{}
	}
	if kwargs == nil {
		kwargs = map[string]any{}
	}
	return w.call(ctx, constants.EndpointCallKW, map[string]any{
		"model":  model,
		"method": method,
		"args":   args,
		"kwargs": kwargs,
	})
}

// call performs one enveloped request and classifies its outcome. It is the
// only place a raw HTTP response is inspected.
func (w *WebConnection) call(ctx context.Context, path string, params any) (json.RawMessage, error) {
	rpcReq := &RPCRequest{
		JSONRPC: "2.0",
		ID:      uuid.NewString(),
		Method:  "call",
		Params:  params,
	}
	reqBody, err := json.Marshal(rpcReq)
	if err != nil {
		return nil, &OperationError{Code: constants.CodeBadRequest, Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.baseURL+path, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, &OperationError{Code: constants.CodeBadRequest, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if w.session != nil {
		if token := w.session.Token(); token != "" {
			req.AddCookie(&http.Cookie{Name: constants.SessionCookie, Value: token})
		}
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		w.log.Warn().Err(err).Str("path", path).Msg("backend unreachable")
		return nil, unavailable()
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, unavailable()
	}

	if resp.StatusCode == http.StatusUnauthorized {
		w.invalidate()
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
		if isSessionExpired(rpcResp.Error) {
			w.invalidate()
			return nil, unauthorized(rpcResp.Error.Message)
		}
		code := constants.CodeBadRequest
		if resp.StatusCode >= http.StatusBadRequest {
			code = resp.StatusCode
		}
		w.log.Debug().Int("code", code).Str("path", path).Str("message", rpcResp.Error.Message).Msg("backend rejected operation")
		return nil, &OperationError{Code: code, Message: rpcResp.Error.Message, Data: rpcResp.Error.Data}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &OperationError{Code: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	return rpcResp.Result, nil
}

func (w *WebConnection) invalidate() {
	if w.session != nil {
		w.session.Invalidate()
	}
}

// The backend reports an expired or missing session as an application-level
// error inside a 200 reply; code 100 is its SessionExpiredException.
func isSessionExpired(rpcErr *RPCError) bool {
	if rpcErr.Code == 100 {
		return true
	}
	return strings.Contains(strings.ToLower(rpcErr.Message), "session expired")
}

// parseAuthResult pulls the session fields out of a login reply. The uid is
// mandatory; the backend answers uid=false for rejected credentials while
// still returning HTTP 200, and that must read as Unauthorized.
func parseAuthResult(result json.RawMessage, database string) (*AuthResult, error) {
	uid, err := jsonparser.GetInt(result, "uid")
	if err != nil || uid == 0 {
		return nil, unauthorized("invalid credentials")
	}

	auth := &AuthResult{UserID: uid, Database: database}
	if v, err := jsonparser.GetString(result, "session_id"); err == nil {
		auth.SessionToken = v
	}
	if v, err := jsonparser.GetString(result, "username"); err == nil {
		auth.Username = v
	}
	if v, err := jsonparser.GetString(result, "db"); err == nil {
		auth.Database = v
	}
	if v, err := jsonparser.GetString(result, "name"); err == nil {
		auth.DisplayName = v
	}
	if v, err := jsonparser.GetInt(result, "partner_id"); err == nil {
		auth.PartnerID = v
	}
	return auth, nil
}

func nonNilDomain(d models.Domain) models.Domain {
	if d == nil {
		return models.Domain{}
	}
	return d
}

func nonNilFields(f []string) []string {
	if f == nil {
		return []string{}
	}
	return f
}
