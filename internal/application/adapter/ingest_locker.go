package adapter

import "context"

// IngestLocker serializes writers that share a key: the duplicate-check key
// for ingestion, so two concurrent ingestions of the same event cannot both
// insert, and the (user, bank) pair for settings find-or-create.
type IngestLocker interface {
	// Lock blocks until the key is held or ctx is done. The returned func releases it.
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
