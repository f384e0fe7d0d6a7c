package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// CookieName is the HTTP-only cookie carrying the opaque session id.
const CookieName = "journal_session"

// DefaultTTL is the session lifetime; the cookie max-age matches it.
const DefaultTTL = 7 * 24 * time.Hour

var ErrNotFound = errors.New("session not found")

// Store is the server-side session store. The payload is deliberately just
// the user id; everything else is re-read from the database per request.
type Store interface {
	// Create generates a fresh session id bound to userID.
	Create(ctx context.Context, userID uuid.UUID) (string, error)
	// Get resolves a session id to the user id it was issued for.
	// Returns ErrNotFound for unknown or expired sessions.
	Get(ctx context.Context, id string) (uuid.UUID, error)
	// Destroy invalidates a session. Destroying an unknown session is a no-op.
	Destroy(ctx context.Context, id string) error
}
