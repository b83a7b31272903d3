// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/twothirdshuman/minecraft-banking/internal/domain"
	"github.com/twothirdshuman/minecraft-banking/pkg/errorspkg"
	"github.com/twothirdshuman/minecraft-banking/pkg/kvpkg"
)

// Repo facilitates account repository layer logic.
type Repo struct {
	store kvpkg.Store
}

// New returns account Repo backed by the given store.
func New(store kvpkg.Store) *Repo {
	return &Repo{store: store}
}

// Get returns the account with the given name.
func (r *Repo) Get(ctx context.Context, name string) (domain.Account, error) {
	account, _, err := r.GetVersioned(ctx, name)
	return account, err
}

// GetVersioned returns the account with the given name along with the store
// version token of its record, for use as a commit precondition.
func (r *Repo) GetVersioned(ctx context.Context, name string) (domain.Account, int64, error) {
	l := zerolog.Ctx(ctx)

	var account domain.Account

	entry, err := r.store.Get(ctx, kvpkg.NamespaceAccounts, name)
	if err != nil {
		l.Error().Err(err).Send()
		return account, 0, errorspkg.ErrInternal
	}

	if entry.Version == 0 {
		return account, 0, domain.ErrAccountNotFound
	}

	if err := json.Unmarshal(entry.Value, &account); err != nil {
		l.Error().Err(err).Send()
		return account, 0, errorspkg.ErrInternal
	}

	return account, entry.Version, nil
}

// ListNames returns the names of all accounts in store-defined order.
func (r *Repo) ListNames(ctx context.Context) ([]string, error) {
	l := zerolog.Ctx(ctx)

	names, err := r.store.ListKeys(ctx, kvpkg.NamespaceAccounts)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return names, nil
}

// Create creates an account with zero balance and the given pin.
//
// The write is conditioned on the account key being absent, so a racing
// duplicate create loses at commit time instead of overwriting.
func (r *Repo) Create(ctx context.Context, name, pin string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	account := domain.Account{
		Name:    name,
		Pin:     pin,
		Balance: 0,
	}

	value, err := json.Marshal(account)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, errorspkg.ErrInternal
	}

	err = r.store.Commit(ctx,
		[]kvpkg.Check{{Namespace: kvpkg.NamespaceAccounts, Key: name, Version: 0}},
		[]kvpkg.Set{{Namespace: kvpkg.NamespaceAccounts, Key: name, Value: value}},
	)

	if err != nil {
		if err == kvpkg.ErrCommitConflict {
			return domain.Account{}, domain.ErrAccountAlreadyExists
		}

		l.Error().Err(err).Send()

		return domain.Account{}, errorspkg.ErrInternal
	}

	return account, nil
}
