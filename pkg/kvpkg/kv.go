// Package kvpkg provides the versioned key-value store the ledger is built on.
//
// The store keeps opaque values under (namespace, key) pairs and assigns every
// key a version token that changes on each write. Writers commit groups of
// writes conditioned on the versions they previously read; a commit either
// applies completely or not at all.
package kvpkg

import (
	"context"
	"errors"
)

// Namespaces of the ledger keyspace.
const (
	NamespaceAccounts     = "accounts"
	NamespaceTransactions = "transactions"
)

// ErrCommitConflict indicates that a commit precondition no longer held.
// Nothing was written.
var ErrCommitConflict = errors.New("kv: commit conflict")

// Entry is a point-read result. Version 0 means the key does not exist.
type Entry struct {
	Namespace string
	Key       string
	Value     []byte
	Version   int64
}

// Check is a commit precondition: the key must currently be at exactly
// the given version. Version 0 requires the key to be absent.
type Check struct {
	Namespace string
	Key       string
	Version   int64
}

// Set is a single write within a commit.
type Set struct {
	Namespace string
	Key       string
	Value     []byte
}

// Store is the consistency contract the ledger core depends on: linearizable
// read-your-writes point reads and all-or-nothing conditional commits.
type Store interface {
	// Get reads one key. A missing key is not an error; it is reported as
	// an Entry with Version 0.
	Get(ctx context.Context, namespace, key string) (Entry, error)

	// ListKeys scans all keys of a namespace in store-defined order.
	ListKeys(ctx context.Context, namespace string) ([]string, error)

	// Commit atomically applies all sets if every check still holds,
	// otherwise returns ErrCommitConflict and applies nothing.
	Commit(ctx context.Context, checks []Check, sets []Set) error
}
