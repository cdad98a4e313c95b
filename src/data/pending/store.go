// Package pending holds proposals captured mid-wizard, before they are persisted.
// Entries expire after a TTL so abandoned wizards never accumulate.
package pending

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned for unknown or expired pending ids.
var ErrNotFound = errors.New("pending proposal not found")

// Proposal is the in-flight state of one wizard run.
type Proposal struct {
	ID          string    `json:"id"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Format      string    `json:"format,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Store is the keyed pending proposal store. Implementations must be safe for
// concurrent use; operations on different ids never interfere.
type Store interface {
	// Put stores a new entry and stamps its expiry.
	Put(ctx context.Context, p *Proposal) error
	// Get returns a copy of the entry.
	Get(ctx context.Context, id string) (*Proposal, error)
	// SetFormat records the chosen format and extends the entry's lifetime.
	SetFormat(ctx context.Context, id, format string) (*Proposal, error)
	// Take atomically returns and removes the entry.
	Take(ctx context.Context, id string) (*Proposal, error)
	// Delete removes the entry if present.
	Delete(ctx context.Context, id string) error
}
