package odoo

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/studioerp/odoo.go/pkg/config"
	"github.com/studioerp/odoo.go/pkg/connection"
	"github.com/studioerp/odoo.go/pkg/constants"
	"github.com/studioerp/odoo.go/pkg/models"
	"github.com/studioerp/odoo.go/pkg/session"
)

// Client is the model-agnostic record API every entity service is built on.
// It does not cache records; every read goes to the backend.
type Client struct {
	conn connection.Connection
	sess *session.Store
	log  zerolog.Logger
}

// New wires a client from configuration: transport dialect, snapshot
// location and timeout all come from cfg.
func New(cfg *config.Config) (*Client, error) {
	params := connection.NewConnectionParams{
		BaseURL:  cfg.BaseURL,
		Database: cfg.Database,
		Timeout:  cfg.Timeout(),
		Logger:   cfg.Logger().Component("connection"),
	}

	var snap session.Snapshot
	if cfg.SnapshotPath == "" {
		snap = session.NewMemorySnapshot()
	} else {
		snap = session.NewFileSnapshot(cfg.SnapshotPath)
	}

	switch cfg.Transport {
	case config.TransportWeb:
		conn := connection.NewWeb(params)
		sess := session.NewStore(conn, snap,
			session.WithLogger(cfg.Logger().Component("session")),
			session.RequireToken(),
		)
		conn.BindSession(sess)
		return FromConnection(conn, sess).WithLogger(cfg.Logger().Component("client")), nil
	case config.TransportJSONRPC:
		conn := connection.NewJSONRPC(params)
		sess := session.NewStore(conn, snap,
			session.WithLogger(cfg.Logger().Component("session")),
		)
		conn.BindSession(sess)
		return FromConnection(conn, sess).WithLogger(cfg.Logger().Component("client")), nil
	}
	return nil, fmt.Errorf("unknown transport %q", cfg.Transport)
}

// FromConnection builds a client over an already-wired transport and session
// store. Tests and custom compositions use this directly.
func FromConnection(conn connection.Connection, sess *session.Store) *Client {
	return &Client{conn: conn, sess: sess, log: zerolog.Nop()}
}

func (c *Client) WithLogger(log zerolog.Logger) *Client {
	c.log = log
	return c
}

func (c *Client) Session() *session.Store {
	return c.sess
}

func (c *Client) Connection() connection.Connection {
	return c.conn
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) Login(ctx context.Context, username, password string) (*session.Session, error) {
	return c.sess.Login(ctx, username, password)
}

func (c *Client) Logout(ctx context.Context) {
	c.sess.Logout(ctx)
}

func (c *Client) CheckAuth() bool {
	return c.sess.CheckAuth()
}

// SearchRead runs a filtered read and returns the raw record set. Query
// defaults are applied here: no domain, all fields, limit 80, offset 0,
// backend default order.
func (c *Client) SearchRead(ctx context.Context, model string, q models.Query) (*connection.RawRecordSet, error) {
	if q.Limit == 0 {
		q.Limit = constants.DefaultLimit
	}
	set, err := c.conn.SearchRead(ctx, model, q)
	if err != nil {
		return nil, err
	}
	c.log.Debug().Str("model", model).Int("limit", q.Limit).Int("offset", q.Offset).
		Int("records", len(set.Records)).Int("total", set.TotalCount).Msg("search_read")
	return set, nil
}

// Create inserts one record and returns the id the backend assigned. The
// full record is not returned; re-fetch it if needed.
func (c *Client) Create(ctx context.Context, model string, values map[string]any) (int64, error) {
	result, err := c.conn.CallKW(ctx, model, "create", []any{values}, nil)
	if err != nil {
		return 0, err
	}
	var id int64
	if err := json.Unmarshal(result, &id); err != nil {
		return 0, fmt.Errorf("%w: create returned %s", constants.ErrInvalidResponse, result)
	}
	c.log.Debug().Str("model", model).Int64("id", id).Msg("record created")
	return id, nil
}

// Update patches the supplied fields of one record; unsupplied fields are
// left untouched server-side.
func (c *Client) Update(ctx context.Context, model string, id int64, values map[string]any) (bool, error) {
	result, err := c.conn.CallKW(ctx, model, "write", []any{[]int64{id}, values}, nil)
	if err != nil {
		return false, err
	}
	ok := parseBool(result)
	c.log.Debug().Str("model", model).Int64("id", id).Bool("ok", ok).Msg("record updated")
	return ok, nil
}

func (c *Client) Delete(ctx context.Context, model string, id int64) (bool, error) {
	result, err := c.conn.CallKW(ctx, model, "unlink", []any{[]int64{id}}, nil)
	if err != nil {
		return false, err
	}
	ok := parseBool(result)
	c.log.Debug().Str("model", model).Int64("id", id).Bool("ok", ok).Msg("record deleted")
	return ok, nil
}

// SearchRead decodes the records of a search-read into T.
func SearchRead[T any](ctx context.Context, c *Client, model string, q models.Query) (*models.RecordSet[T], error) {
	raw, err := c.SearchRead(ctx, model, q)
	if err != nil {
		return nil, err
	}

	set := &models.RecordSet[T]{
		Records:    make([]T, 0, len(raw.Records)),
		TotalCount: raw.TotalCount,
	}
	for _, rec := range raw.Records {
		var item T
		if err := json.Unmarshal(rec, &item); err != nil {
			return nil, fmt.Errorf("%w: %v", constants.ErrInvalidResponse, err)
		}
		set.Records = append(set.Records, item)
	}
	return set, nil
}

// GetByID fetches one record by id, or nil when it does not exist. A missing
// record is a normal outcome, not an error.
func GetByID[T any](ctx context.Context, c *Client, model string, id int64, fields ...string) (*T, error) {
	set, err := SearchRead[T](ctx, c, model, models.Query{
		Domain: models.Domain{models.Cond("id", "=", id)},
		Fields: fields,
		Limit:  1,
	})
	if err != nil {
		return nil, err
	}
	if len(set.Records) == 0 {
		return nil, nil
	}
	return &set.Records[0], nil
}

func parseBool(result json.RawMessage) bool {
	var ok bool
	if err := json.Unmarshal(result, &ok); err != nil {
		// some backend versions answer the written ids instead of a bool
		var ids []int64
		if err := json.Unmarshal(result, &ids); err == nil {
			return len(ids) > 0
		}
		return false
	}
	return ok
}
