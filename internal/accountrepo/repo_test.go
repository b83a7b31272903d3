package accountrepo

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twothirdshuman/minecraft-banking/internal/domain"
	"github.com/twothirdshuman/minecraft-banking/pkg/kvpkg"
	"github.com/twothirdshuman/minecraft-banking/pkg/randompkg"
)

func TestCreate(t *testing.T) {
	repo := New(kvpkg.NewMemStore())
	name := randompkg.AccountName()
	pin := randompkg.Pin()

	account, err := repo.Create(context.Background(), name, pin)
	require.NoError(t, err)
	require.Equal(t, name, account.Name)
	require.Equal(t, pin, account.Pin)
	require.Zero(t, account.Balance)

	got, err := repo.Get(context.Background(), name)
	require.NoError(t, err)
	require.Equal(t, account, got)
}

func TestCreateDuplicate(t *testing.T) {
	store := kvpkg.NewMemStore()
	repo := New(store)
	name := randompkg.AccountName()

	_, err := repo.Create(context.Background(), name, "1234")
	require.NoError(t, err)

	// Simulate activity on the account so a duplicate create would clobber
	// real state if it got through.
	existing, version, err := repo.GetVersioned(context.Background(), name)
	require.NoError(t, err)

	existing.Balance = randompkg.Balance(100, 1_000)
	value, err := json.Marshal(existing)
	require.NoError(t, err)

	err = store.Commit(context.Background(),
		[]kvpkg.Check{{Namespace: kvpkg.NamespaceAccounts, Key: name, Version: version}},
		[]kvpkg.Set{{Namespace: kvpkg.NamespaceAccounts, Key: name, Value: value}},
	)
	require.NoError(t, err)

	_, err = repo.Create(context.Background(), name, "0000")
	require.ErrorIs(t, err, domain.ErrAccountAlreadyExists)

	got, err := repo.Get(context.Background(), name)
	require.NoError(t, err)
	require.Equal(t, existing.Balance, got.Balance)
	require.Equal(t, "1234", got.Pin)
}

func TestGetNotFound(t *testing.T) {
	repo := New(kvpkg.NewMemStore())

	_, err := repo.Get(context.Background(), randompkg.AccountName())
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, _, err = repo.GetVersioned(context.Background(), randompkg.AccountName())
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestListNames(t *testing.T) {
	repo := New(kvpkg.NewMemStore())

	names, err := repo.ListNames(context.Background())
	require.NoError(t, err)
	require.Empty(t, names)

	want := []string{}
	for i := 0; i < 5; i++ {
		name := randompkg.AccountName()

		_, err := repo.Create(context.Background(), name, "")
		require.NoError(t, err)

		want = append(want, name)
	}

	names, err = repo.ListNames(context.Background())
	require.NoError(t, err)
	require.ElementsMatch(t, want, names)
}
