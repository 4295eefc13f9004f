// Package odoo is a client SDK for an Odoo-backed school administration
// backend. It exposes a model-agnostic record API (search-read, create,
// write, unlink) over either of the backend's two JSON-RPC dialects, a
// session store with durable restore, and typed entity services for
// students, partners, courses, academic years and enrollments in package
// edu.
//
// A minimal session:
//
//	cfg, _ := config.Load("")
//	client, _ := odoo.New(cfg)
//	defer client.Close()
//
//	if _, err := client.Login(ctx, user, pass); err != nil {
//		// err is always an *connection.OperationError
//	}
//	students, _ := odoo.SearchRead[models.Student](ctx, client, "res.partner", models.Query{})
package odoo
