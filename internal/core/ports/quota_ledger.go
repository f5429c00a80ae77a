package ports

import "context"

// QuotaLedger owns the persistent per-account generation-credit counter.
// TryConsumeOne is the sole serialization point for concurrent generation
// requests: callers must never compose a read with a separate write.
type QuotaLedger interface {
	// EnsureInitialized sets the starting allotment for a never-before-seen
	// account and returns the stored balance. It is idempotent and never
	// overwrites an existing balance, including zero.
	EnsureInitialized(ctx context.Context, accountID string) (int, error)

	// TryConsumeOne atomically decrements the balance by one when it is
	// positive and returns the post-decrement value. ok is false when the
	// balance is already zero; state is left untouched in that case. A
	// non-nil error means the store could not be reached and it is unknown
	// whether a credit was consumed; callers must fail closed.
	TryConsumeOne(ctx context.Context, accountID string) (remaining int, ok bool, err error)
}
