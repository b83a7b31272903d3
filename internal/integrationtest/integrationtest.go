// Package integrationtest wires a full in-memory server for end-to-end tests.
package integrationtest

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/twothirdshuman/minecraft-banking/cmd/httpserver"
	"github.com/twothirdshuman/minecraft-banking/internal/domain"
	"github.com/twothirdshuman/minecraft-banking/pkg/configpkg"
	"github.com/twothirdshuman/minecraft-banking/pkg/kvpkg"
	"github.com/twothirdshuman/minecraft-banking/pkg/passpkg"
)

// BankSecret is the operator secret the test server is configured with.
const BankSecret = "test-bank-secret"

// SetupServer returns a server backed by a fresh in-memory store and
// configured with a hash of BankSecret.
func SetupServer(t *testing.T) *httpserver.Server {
	t.Helper()

	hashed, err := passpkg.Hash(BankSecret)
	require.NoError(t, err)

	config := configpkg.Config{
		BankSecretHash: hashed,
	}

	server, err := httpserver.New(kvpkg.NewMemStore(), zerolog.Nop(), config)
	require.NoError(t, err)

	return server
}

// SeedAccount writes an account record directly into the store. Account
// creation over the api always yields an empty pin, so tests that need a
// pinned account seed it here.
func SeedAccount(t *testing.T, store kvpkg.Store, account domain.Account) {
	t.Helper()

	value, err := json.Marshal(account)
	require.NoError(t, err)

	err = store.Commit(context.Background(),
		[]kvpkg.Check{{Namespace: kvpkg.NamespaceAccounts, Key: account.Name, Version: 0}},
		[]kvpkg.Set{{Namespace: kvpkg.NamespaceAccounts, Key: account.Name, Value: value}},
	)
	require.NoError(t, err)
}

// GetAccount reads an account record back out of the store.
func GetAccount(t *testing.T, store kvpkg.Store, name string) domain.Account {
	t.Helper()

	entry, err := store.Get(context.Background(), kvpkg.NamespaceAccounts, name)
	require.NoError(t, err)
	require.NotZero(t, entry.Version)

	var account domain.Account
	require.NoError(t, json.Unmarshal(entry.Value, &account))

	return account
}
