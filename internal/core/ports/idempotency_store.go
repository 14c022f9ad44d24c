package ports

import (
	"context"
	"errors"
)

// ErrIdempotencyKeyInProgress is returned by Reserve when another request holds the key
// and has not finished yet.
var ErrIdempotencyKeyInProgress = errors.New("idempotency key is in progress")

// IdempotencyStore remembers the outcome of a request keyed by a client supplied token.
type IdempotencyStore interface {
	// Reserve claims key. It returns ("", true, nil) when the caller now owns the key,
	// (result, false, nil) when the key already completed, and ErrIdempotencyKeyInProgress
	// while another caller holds it.
	Reserve(ctx context.Context, key string) (result string, reserved bool, err error)

	// Complete stores the result for a reserved key.
	Complete(ctx context.Context, key, result string) error

	// Release drops a reservation so the request can be retried.
	Release(ctx context.Context, key string) error

	// Lookup returns the stored result of a completed key. Unknown and in-progress keys
	// report found == false.
	Lookup(ctx context.Context, key string) (result string, found bool, err error)
}
