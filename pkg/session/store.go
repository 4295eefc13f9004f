package session

import (
	"context"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/studioerp/odoo.go/pkg/connection"
	"github.com/studioerp/odoo.go/pkg/constants"
)

// Authenticator is the slice of the transport the store drives: credential
// exchange and best-effort remote invalidation.
type Authenticator interface {
	Authenticate(ctx context.Context, login, password string) (*connection.AuthResult, error)
	Destroy(ctx context.Context) error
}

// Store holds the current session. It is constructed explicitly and passed
// to whatever composes the entity services; there is no package-level
// instance. Reads are safe from any goroutine. A login or logout racing an
// in-flight data call may let that call finish on just-invalidated
// credentials; the store does not serialize against data calls.
type Store struct {
	mu            sync.RWMutex
	authenticated bool
	current       *Session

	auth Authenticator
	snap Snapshot
	log  zerolog.Logger

	// requireToken marks the cookie-session transport, where a session
	// without a token cannot authenticate requests. The legacy transport
	// authenticates by uid alone.
	requireToken bool
}

type Option func(*Store)

func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// RequireToken makes IsAuthenticated demand a session token in addition to
// a user id. Set it when the bound transport uses cookie sessions.
func RequireToken() Option {
	return func(s *Store) { s.requireToken = true }
}

func NewStore(auth Authenticator, snap Snapshot, opts ...Option) *Store {
	s := &Store{
		auth: auth,
		snap: snap,
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login exchanges credentials for a session. On success the session is held
// in memory and mirrored to the snapshot. On any failure the store is left
// exactly as it was: a failed re-login does not destroy a prior valid
// session.
func (s *Store) Login(ctx context.Context, username, password string) (*Session, error) {
	if username == "" || password == "" {
		return nil, &connection.OperationError{
			Code:    constants.CodeBadRequest,
			Message: constants.ErrEmptyCredentials.Error(),
		}
	}

	res, err := s.auth.Authenticate(ctx, username, password)
	if err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("login failed")
		return nil, err
	}

	sess := fromAuthResult(res)

	s.mu.Lock()
	s.current = sess
	s.authenticated = true
	s.mu.Unlock()

	s.persist(sess)
	s.log.Info().Int64("uid", sess.UserID).Str("username", sess.Username).Msg("login succeeded")
	return sess, nil
}

// Logout invalidates the remote session best-effort and clears local state
// unconditionally. It never fails and is safe to call repeatedly; after it
// returns, CheckAuth reports false.
func (s *Store) Logout(ctx context.Context) {
	if err := s.auth.Destroy(ctx); err != nil {
		s.log.Warn().Err(err).Msg("remote session destroy failed")
	}

	s.Invalidate()
	if err := s.snap.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("snapshot clear failed")
	}
	s.log.Info().Msg("logged out")
}

// CheckAuth reports whether a session is held. When the in-memory state says
// no, one restore attempt is made from the durable snapshot before
// answering: the store may be a fresh instance while the snapshot still
// holds a prior session.
func (s *Store) CheckAuth() bool {
	s.mu.RLock()
	ok := s.authenticated
	s.mu.RUnlock()
	if ok {
		return true
	}
	return s.restore()
}

// Current returns the held session, or nil.
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.authenticated || s.current == nil {
		return nil
	}
	copied := *s.current
	return &copied
}

// Token implements connection.SessionState.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.SessionToken
}

// UserID implements connection.SessionState.
func (s *Store) UserID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return 0
	}
	return s.current.UserID
}

// Invalidate implements connection.SessionState. The transport calls it when
// the backend rejects the held credentials; the snapshot is cleared too so a
// later restore cannot resurrect the dead session.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.authenticated = false
	s.current = nil
	s.mu.Unlock()
	if err := s.snap.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("snapshot clear failed")
	}
}

func (s *Store) persist(sess *Session) {
	data, err := json.Marshal(snapshotPayload{
		SessionToken: sess.SessionToken,
		UserID:       sess.UserID,
		Username:     sess.Username,
		Database:     sess.Database,
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("snapshot encode failed")
		return
	}
	if err := s.snap.Store(data); err != nil {
		s.log.Warn().Err(err).Msg("snapshot write failed")
	}
}

func (s *Store) restore() bool {
	data, err := s.snap.Load()
	if err != nil {
		s.log.Warn().Err(err).Msg("snapshot read failed")
		return false
	}
	if data == nil {
		return false
	}

	var payload snapshotPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		s.log.Warn().Err(err).Msg("snapshot malformed, treating as no session")
		return false
	}
	if payload.UserID == 0 {
		return false
	}
	if s.requireToken && payload.SessionToken == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.authenticated {
		return true
	}
	s.current = &Session{
		UserID:       payload.UserID,
		SessionToken: payload.SessionToken,
		Username:     payload.Username,
		Database:     payload.Database,
	}
	s.authenticated = true
	s.log.Info().Int64("uid", payload.UserID).Str("username", payload.Username).Msg("session restored from snapshot")
	return true
}
