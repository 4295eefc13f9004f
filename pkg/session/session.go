// Package session is the single source of truth for "am I logged in, and as
// whom". It holds the current session in memory, mirrors it to a durable
// snapshot under one fixed key, and restores from that snapshot when a fresh
// store instance finds no in-memory state.
package session

import "github.com/studioerp/odoo.go/pkg/connection"

// Session is the authenticated identity held between login and
// logout/expiry. It is created whole by a successful login and never
// partially updated.
type Session struct {
	UserID       int64
	SessionToken string
	Username     string
	Database     string
	DisplayName  string
	PartnerID    int64
}

func fromAuthResult(res *connection.AuthResult) *Session {
	return &Session{
		UserID:       res.UserID,
		SessionToken: res.SessionToken,
		Username:     res.Username,
		Database:     res.Database,
		DisplayName:  res.DisplayName,
		PartnerID:    res.PartnerID,
	}
}

// snapshotPayload is the durable form, matching the fixed local-storage
// record shape. Absence or malformed content reads as "no session".
type snapshotPayload struct {
	SessionToken string `json:"sessionId,omitempty"`
	UserID       int64  `json:"uid"`
	Username     string `json:"username,omitempty"`
	Database     string `json:"db,omitempty"`
}
