// Package fakeodoo is an in-process fake of the backend for tests. It speaks
// both RPC dialects over plain HTTP, keeps per-model record stores, scripts
// credentials, and injects failures: arbitrary status codes, application
// errors, malformed bodies, and each of the three historically observed
// search_read result shapes.
package fakeodoo

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"

	"github.com/goccy/go-json"

	"github.com/studioerp/odoo.go/internal/rand"
)

// Shape selects which of the three search_read result envelopes the server
// answers with.
type Shape int

const (
	// ShapeWrapped is the canonical {records, length} wrapper
	ShapeWrapped Shape = iota
	// ShapeBare is a bare array of records
	ShapeBare
	// ShapeDouble is the {records: {records, length}} double wrapper some
	// proxy versions produced
	ShapeDouble
)

type rpcEnvelope struct {
	ID     any            `json:"id"`
	Method string         `json:"method"`
	Params map[string]any `json:"params"`
}

type Server struct {
	mu sync.Mutex

	users    map[string]string
	uids     map[string]int64
	sessions map[string]int64
	models   map[string][]map[string]any
	nextID   int64

	shape          Shape
	requireSession bool
	failStatus     int
	failMessage    string
	rawBody        string

	httpServer *httptest.Server
}

func New() *Server {
	s := &Server{
		users:    map[string]string{},
		uids:     map[string]int64{},
		sessions: map[string]int64{},
		models:   map[string][]map[string]any{},
		nextID:   1000,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/web/session/authenticate", s.handleAuthenticate)
	mux.HandleFunc("/web/session/destroy", s.handleDestroy)
	mux.HandleFunc("/web/dataset/search_read", s.handleSearchRead)
	mux.HandleFunc("/web/dataset/call_kw", s.handleCallKW)
	mux.HandleFunc("/web/webclient/version_info", s.handleVersion)
	mux.HandleFunc("/jsonrpc", s.handleJSONRPC)
	s.httpServer = httptest.NewServer(mux)
	return s
}

func (s *Server) URL() string { return s.httpServer.URL }
func (s *Server) Close()      { s.httpServer.Close() }

func (s *Server) AddUser(login, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[login] = password
	if _, ok := s.uids[login]; !ok {
		s.uids[login] = int64(len(s.uids)) + 1
	}
}

// Seed replaces the record store of one model. Records without an id get one
// assigned.
func (s *Server) Seed(model string, records []map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range records {
		if _, ok := rec["id"]; !ok {
			s.nextID++
			rec["id"] = s.nextID
		}
	}
	s.models[model] = records
}

func (s *Server) SetShape(shape Shape) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shape = shape
}

// RequireSession makes dataset endpoints demand a known session cookie and
// answer the backend's expired-session fault without one.
func (s *Server) RequireSession(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requireSession = on
}

// FailNext makes the next request answer with the given HTTP status and an
// error message in the RPC envelope.
func (s *Server) FailNext(status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
	s.failMessage = message
}

// RawBodyNext makes the next request answer 200 with the given raw body,
// for malformed-envelope cases.
func (s *Server) RawBodyNext(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rawBody = body
}

func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) takeInjection(w http.ResponseWriter) bool {
	if s.rawBody != "" {
		body := s.rawBody
		s.rawBody = ""
		_, _ = w.Write([]byte(body))
		return true
	}
	if s.failStatus != 0 {
		status, message := s.failStatus, s.failMessage
		s.failStatus, s.failMessage = 0, ""
		w.WriteHeader(status)
		writeJSON(w, map[string]any{
			"jsonrpc": "2.0",
			"error":   map[string]any{"code": status, "message": message},
		})
		return true
	}
	return false
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeResult(w, map[string]any{"server_version": "17.0"})
}

func (s *Server) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.takeInjection(w) {
		return
	}

	var env rpcEnvelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	login, _ := env.Params["login"].(string)
	password, _ := env.Params["password"].(string)
	db, _ := env.Params["db"].(string)

	if expected, ok := s.users[login]; !ok || expected != password {
		// rejected credentials still answer 200, uid=false
		writeResult(w, map[string]any{"uid": false})
		return
	}

	token := rand.String(24)
	uid := s.uids[login]
	s.sessions[token] = uid
	writeResult(w, map[string]any{
		"uid":        uid,
		"session_id": token,
		"username":   login,
		"db":         db,
		"name":       strings.ToUpper(login[:1]) + login[1:],
		"partner_id": uid + 100,
	})
}

func (s *Server) handleDestroy(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.takeInjection(w) {
		return
	}
	if cookie, err := r.Cookie("session_id"); err == nil {
		delete(s.sessions, cookie.Value)
	}
	writeResult(w, true)
}

func (s *Server) checkSession(w http.ResponseWriter, r *http.Request) bool {
	if !s.requireSession {
		return true
	}
	cookie, err := r.Cookie("session_id")
	if err == nil {
		if _, ok := s.sessions[cookie.Value]; ok {
			return true
		}
	}
	writeJSON(w, map[string]any{
		"jsonrpc": "2.0",
		"error":   map[string]any{"code": 100, "message": "Odoo Session Expired"},
	})
	return false
}

func (s *Server) handleSearchRead(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.takeInjection(w) {
		return
	}
	if !s.checkSession(w, r) {
		return
	}

	var env rpcEnvelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	model, _ := env.Params["model"].(string)
	domain, _ := env.Params["domain"].([]any)
	fields := stringSlice(env.Params["fields"])
	limit := intValue(env.Params["limit"])
	offset := intValue(env.Params["offset"])
	order, _ := env.Params["sort"].(string)

	records, total := s.query(model, domain, fields, limit, offset, order)

	switch s.shape {
	case ShapeBare:
		writeResult(w, records)
	case ShapeDouble:
		writeResult(w, map[string]any{
			"records": map[string]any{"records": records, "length": total},
		})
	default:
		writeResult(w, map[string]any{"records": records, "length": total})
	}
}

func (s *Server) handleCallKW(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.takeInjection(w) {
		return
	}
	if !s.checkSession(w, r) {
		return
	}

	var env rpcEnvelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	model, _ := env.Params["model"].(string)
	method, _ := env.Params["method"].(string)
	args, _ := env.Params["args"].([]any)

	result, rpcErr := s.dispatch(model, method, args)
	if rpcErr != nil {
		writeJSON(w, map[string]any{"jsonrpc": "2.0", "error": rpcErr})
		return
	}
	writeResult(w, result)
}

func (s *Server) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.takeInjection(w) {
		return
	}

	var env rpcEnvelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	service, _ := env.Params["service"].(string)
	method, _ := env.Params["method"].(string)
	args, _ := env.Params["args"].([]any)

	switch {
	case service == "common" && method == "version":
		writeResult(w, map[string]any{"server_version": "17.0"})
	case service == "common" && method == "login":
		if len(args) != 3 {
			writeResult(w, false)
			return
		}
		login, _ := args[1].(string)
		password, _ := args[2].(string)
		if expected, ok := s.users[login]; !ok || expected != password {
			writeResult(w, false)
			return
		}
		writeResult(w, s.uids[login])
	case service == "object" && method == "execute_kw":
		if len(args) < 6 {
			writeJSON(w, map[string]any{"jsonrpc": "2.0",
				"error": map[string]any{"code": 400, "message": "malformed execute_kw"}})
			return
		}
		model, _ := args[3].(string)
		objMethod, _ := args[4].(string)
		objArgs, _ := args[5].([]any)
		if objMethod == "search_read" {
			var kwargs map[string]any
			if len(args) > 6 {
				kwargs, _ = args[6].(map[string]any)
			}
			var domain []any
			if len(objArgs) > 0 {
				domain, _ = objArgs[0].([]any)
			}
			records, _ := s.query(model, domain, stringSlice(kwargs["fields"]),
				intValue(kwargs["limit"]), intValue(kwargs["offset"]), stringValue(kwargs["order"]))
			writeResult(w, records)
			return
		}
		result, rpcErr := s.dispatch(model, objMethod, objArgs)
		if rpcErr != nil {
			writeJSON(w, map[string]any{"jsonrpc": "2.0", "error": rpcErr})
			return
		}
		writeResult(w, result)
	default:
		writeJSON(w, map[string]any{"jsonrpc": "2.0",
			"error": map[string]any{"code": 404, "message": fmt.Sprintf("unknown service %s.%s", service, method)}})
	}
}

func (s *Server) dispatch(model, method string, args []any) (any, map[string]any) {
	switch method {
	case "create":
		if len(args) == 0 {
			return nil, map[string]any{"code": 400, "message": "create needs values"}
		}
		values, _ := args[0].(map[string]any)
		s.nextID++
		rec := map[string]any{"id": s.nextID}
		for k, v := range values {
			rec[k] = v
		}
		s.models[model] = append(s.models[model], rec)
		return s.nextID, nil
	case "write":
		ids := idList(args)
		if len(args) < 2 {
			return nil, map[string]any{"code": 400, "message": "write needs values"}
		}
		values, _ := args[1].(map[string]any)
		touched := false
		for _, rec := range s.models[model] {
			if containsID(ids, rec["id"]) {
				for k, v := range values {
					rec[k] = v
				}
				touched = true
			}
		}
		return touched, nil
	case "unlink":
		ids := idList(args)
		kept := s.models[model][:0]
		removed := false
		for _, rec := range s.models[model] {
			if containsID(ids, rec["id"]) {
				removed = true
				continue
			}
			kept = append(kept, rec)
		}
		s.models[model] = kept
		return removed, nil
	case "search_count":
		var domain []any
		if len(args) > 0 {
			domain, _ = args[0].([]any)
		}
		count := 0
		for _, rec := range s.models[model] {
			if matchDomain(domain, rec) {
				count++
			}
		}
		return count, nil
	}
	return nil, map[string]any{"code": 400, "message": fmt.Sprintf("unknown method %s on %s", method, model)}
}

func (s *Server) query(model string, domain []any, fields []string, limit, offset int, order string) ([]map[string]any, int) {
	matched := make([]map[string]any, 0)
	for _, rec := range s.models[model] {
		if matchDomain(domain, rec) {
			matched = append(matched, rec)
		}
	}
	total := len(matched)

	if field, desc, ok := parseOrder(order); ok {
		sort.SliceStable(matched, func(i, j int) bool {
			less := compareValues(matched[i][field], matched[j][field])
			if desc {
				return !less
			}
			return less
		})
	}

	if offset > len(matched) {
		offset = len(matched)
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}

	out := make([]map[string]any, 0, len(matched))
	for _, rec := range matched {
		out = append(out, project(rec, fields))
	}
	return out, total
}

func writeResult(w http.ResponseWriter, result any) {
	writeJSON(w, map[string]any{"jsonrpc": "2.0", "id": nil, "result": result})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
