package odoo_test

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	odoo "github.com/studioerp/odoo.go"
	"github.com/studioerp/odoo.go/internal/fakeodoo"
	"github.com/studioerp/odoo.go/pkg/config"
	"github.com/studioerp/odoo.go/pkg/connection"
	"github.com/studioerp/odoo.go/pkg/constants"
	"github.com/studioerp/odoo.go/pkg/models"
	"github.com/studioerp/odoo.go/pkg/session"
)

func newTestClient(srv *fakeodoo.Server) *odoo.Client {
	conn := connection.NewWeb(connection.NewConnectionParams{
		BaseURL:  srv.URL(),
		Database: "school",
	})
	sess := session.NewStore(conn, session.NewMemorySnapshot(), session.RequireToken())
	conn.BindSession(sess)
	return odoo.FromConnection(conn, sess)
}

func seedPartners(srv *fakeodoo.Server, n int) {
	records := make([]map[string]any, 0, n)
	for i := 1; i <= n; i++ {
		records = append(records, map[string]any{
			"id":   int64(i),
			"name": fmt.Sprintf("Partner %03d", i),
		})
	}
	srv.Seed("res.partner", records)
}

func TestLoginLogoutFlow(t *testing.T) {
	srv := fakeodoo.New()
	defer srv.Close()
	srv.AddUser("registrar", "secret")

	client := newTestClient(srv)
	ctx := context.Background()

	_, err := client.Login(ctx, "registrar", "wrong")
	require.ErrorIs(t, err, constants.ErrUnauthorized)
	assert.False(t, client.CheckAuth())

	sess, err := client.Login(ctx, "registrar", "secret")
	require.NoError(t, err)
	assert.True(t, client.CheckAuth())
	assert.Equal(t, "registrar", sess.Username)
	assert.Equal(t, 1, srv.SessionCount())

	client.Logout(ctx)
	assert.False(t, client.CheckAuth())
	assert.Equal(t, 0, srv.SessionCount())
}

func TestNewFromConfig(t *testing.T) {
	srv := fakeodoo.New()
	defer srv.Close()
	srv.AddUser("registrar", "secret")

	t.Setenv("ODOO_BASE_URL", srv.URL())
	t.Setenv("ODOO_DATABASE", "school")
	cfg, err := config.Load("")
	require.NoError(t, err)

	client, err := odoo.New(cfg)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Connection().Connect(context.Background()))
	_, err = client.Login(context.Background(), "registrar", "secret")
	require.NoError(t, err)
	assert.True(t, client.CheckAuth())
}

// All three result envelopes the backend has historically produced decode to
// the same record set.
func TestSearchReadShapesAgree(t *testing.T) {
	srv := fakeodoo.New()
	defer srv.Close()
	srv.AddUser("registrar", "secret")
	seedPartners(srv, 3)

	client := newTestClient(srv)
	ctx := context.Background()
	_, err := client.Login(ctx, "registrar", "secret")
	require.NoError(t, err)

	var reference *models.RecordSet[models.Partner]
	for name, shape := range map[string]fakeodoo.Shape{
		"wrapped": fakeodoo.ShapeWrapped,
		"bare":    fakeodoo.ShapeBare,
		"double":  fakeodoo.ShapeDouble,
	} {
		srv.SetShape(shape)
		set, err := odoo.SearchRead[models.Partner](ctx, client, "res.partner", models.Query{Order: "name asc"})
		require.NoError(t, err, name)
		require.Len(t, set.Records, 3, name)
		if shape != fakeodoo.ShapeBare {
			assert.Equal(t, 3, set.TotalCount, name)
		}
		if reference == nil {
			reference = set
			continue
		}
		assert.Equal(t, reference.Records, set.Records, name)
	}
}

func TestSearchReadDefaultLimit(t *testing.T) {
	srv := fakeodoo.New()
	defer srv.Close()
	srv.AddUser("registrar", "secret")
	seedPartners(srv, 100)

	client := newTestClient(srv)
	ctx := context.Background()
	_, err := client.Login(ctx, "registrar", "secret")
	require.NoError(t, err)

	set, err := odoo.SearchRead[models.Partner](ctx, client, "res.partner", models.Query{})
	require.NoError(t, err)
	assert.Len(t, set.Records, constants.DefaultLimit)
	assert.Equal(t, 100, set.TotalCount)
}

func TestSearchReadPagination(t *testing.T) {
	srv := fakeodoo.New()
	defer srv.Close()
	srv.AddUser("registrar", "secret")
	seedPartners(srv, 5)

	client := newTestClient(srv)
	ctx := context.Background()
	_, err := client.Login(ctx, "registrar", "secret")
	require.NoError(t, err)

	set, err := odoo.SearchRead[models.Partner](ctx, client, "res.partner", models.Query{
		Limit:  2,
		Offset: 2,
		Order:  "name asc",
	})
	require.NoError(t, err)
	require.Len(t, set.Records, 2)
	assert.Equal(t, 5, set.TotalCount)
	assert.Equal(t, "Partner 003", set.Records[0].Name.String())
	assert.Equal(t, "Partner 004", set.Records[1].Name.String())
}

func TestGetByID(t *testing.T) {
	srv := fakeodoo.New()
	defer srv.Close()
	srv.AddUser("registrar", "secret")
	seedPartners(srv, 3)

	client := newTestClient(srv)
	ctx := context.Background()
	_, err := client.Login(ctx, "registrar", "secret")
	require.NoError(t, err)

	partner, err := odoo.GetByID[models.Partner](ctx, client, "res.partner", 2)
	require.NoError(t, err)
	require.NotNil(t, partner)
	assert.Equal(t, "Partner 002", partner.Name.String())

	// a missing id is a nil record, not an error
	missing, err := odoo.GetByID[models.Partner](ctx, client, "res.partner", 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCreateUpdateDelete(t *testing.T) {
	srv := fakeodoo.New()
	defer srv.Close()
	srv.AddUser("registrar", "secret")

	client := newTestClient(srv)
	ctx := context.Background()
	_, err := client.Login(ctx, "registrar", "secret")
	require.NoError(t, err)

	id, err := client.Create(ctx, "res.partner", map[string]any{
		"name":  "Ana Cruz",
		"email": "ana@example.com",
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	ok, err := client.Update(ctx, "res.partner", id, map[string]any{"phone": "0917-123-4567"})
	require.NoError(t, err)
	assert.True(t, ok)

	partner, err := odoo.GetByID[models.Partner](ctx, client, "res.partner", id)
	require.NoError(t, err)
	require.NotNil(t, partner)
	assert.Equal(t, "Ana Cruz", partner.Name.String())
	assert.Equal(t, "0917-123-4567", partner.Phone.String())

	ok, err = client.Delete(ctx, "res.partner", id)
	require.NoError(t, err)
	assert.True(t, ok)

	gone, err := odoo.GetByID[models.Partner](ctx, client, "res.partner", id)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestClientLogsOperations(t *testing.T) {
	srv := fakeodoo.New()
	defer srv.Close()
	srv.AddUser("registrar", "secret")

	var buf bytes.Buffer
	client := newTestClient(srv).WithLogger(zerolog.New(&buf))
	ctx := context.Background()
	_, err := client.Login(ctx, "registrar", "secret")
	require.NoError(t, err)

	id, err := client.Create(ctx, "res.partner", map[string]any{"name": "Ana Cruz"})
	require.NoError(t, err)
	_, err = client.SearchRead(ctx, "res.partner", models.Query{})
	require.NoError(t, err)
	_, err = client.Delete(ctx, "res.partner", id)
	require.NoError(t, err)

	logged := buf.String()
	assert.Contains(t, logged, "record created")
	assert.Contains(t, logged, "search_read")
	assert.Contains(t, logged, "record deleted")
	assert.Contains(t, logged, `"model":"res.partner"`)
}

// An expired-session fault from the backend drops the local session: the
// stale snapshot restores optimistically, the first data call gets rejected,
// and afterwards CheckAuth answers false.
func TestExpiredSessionDropsAuth(t *testing.T) {
	srv := fakeodoo.New()
	defer srv.Close()
	srv.AddUser("registrar", "secret")
	srv.RequireSession(true)
	seedPartners(srv, 1)

	snap := session.NewMemorySnapshot()
	require.NoError(t, snap.Store([]byte(`{"sessionId":"stale-token","uid":7,"username":"registrar","db":"school"}`)))

	conn := connection.NewWeb(connection.NewConnectionParams{
		BaseURL:  srv.URL(),
		Database: "school",
	})
	sess := session.NewStore(conn, snap, session.RequireToken())
	conn.BindSession(sess)
	client := odoo.FromConnection(conn, sess)

	assert.True(t, client.CheckAuth())

	_, err := client.SearchRead(context.Background(), "res.partner", models.Query{})
	require.ErrorIs(t, err, constants.ErrUnauthorized)
	assert.False(t, client.CheckAuth())
}

// A logout racing an in-flight read must never corrupt the store: whatever
// the read's outcome, once both settle CheckAuth answers false.
func TestConcurrentLogoutDuringSearchRead(t *testing.T) {
	srv := fakeodoo.New()
	defer srv.Close()
	srv.AddUser("registrar", "secret")
	seedPartners(srv, 10)

	client := newTestClient(srv)
	ctx := context.Background()
	_, err := client.Login(ctx, "registrar", "secret")
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		// may succeed or fail depending on the interleaving; both are fine
		_, _ = client.SearchRead(ctx, "res.partner", models.Query{})
	}()
	go func() {
		defer wg.Done()
		client.Logout(ctx)
	}()
	wg.Wait()

	assert.False(t, client.CheckAuth())
}

// Same race on the legacy dialect, which holds uid and password on the
// transport itself rather than in a cookie session.
func TestJSONRPCConcurrentLogoutDuringSearchRead(t *testing.T) {
	srv := fakeodoo.New()
	defer srv.Close()
	srv.AddUser("registrar", "secret")
	seedPartners(srv, 10)

	conn := connection.NewJSONRPC(connection.NewConnectionParams{
		BaseURL:  srv.URL(),
		Database: "school",
	})
	sess := session.NewStore(conn, session.NewMemorySnapshot())
	conn.BindSession(sess)
	client := odoo.FromConnection(conn, sess)
	ctx := context.Background()

	_, err := client.Login(ctx, "registrar", "secret")
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = client.SearchRead(ctx, "res.partner", models.Query{})
	}()
	go func() {
		defer wg.Done()
		client.Logout(ctx)
	}()
	wg.Wait()

	assert.False(t, client.CheckAuth())
	_, err = client.SearchRead(ctx, "res.partner", models.Query{})
	require.ErrorIs(t, err, constants.ErrUnauthorized)
}

// The legacy dialect reaches the same data through /jsonrpc, with the total
// fetched by a paired count call.
func TestJSONRPCTransportEndToEnd(t *testing.T) {
	srv := fakeodoo.New()
	defer srv.Close()
	srv.AddUser("registrar", "secret")
	seedPartners(srv, 5)

	conn := connection.NewJSONRPC(connection.NewConnectionParams{
		BaseURL:  srv.URL(),
		Database: "school",
	})
	sess := session.NewStore(conn, session.NewMemorySnapshot())
	conn.BindSession(sess)
	client := odoo.FromConnection(conn, sess)
	ctx := context.Background()

	_, err := client.Login(ctx, "registrar", "secret")
	require.NoError(t, err)
	assert.True(t, client.CheckAuth())

	set, err := odoo.SearchRead[models.Partner](ctx, client, "res.partner", models.Query{Limit: 2, Order: "name asc"})
	require.NoError(t, err)
	require.Len(t, set.Records, 2)
	assert.Equal(t, 5, set.TotalCount)

	client.Logout(ctx)
	assert.False(t, client.CheckAuth())
}
