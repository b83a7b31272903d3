// Package transferrepo manages repository layer of transfers.
package transferrepo

import (
	"context"
	"encoding/json"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/twothirdshuman/minecraft-banking/internal/accountrepo"
	"github.com/twothirdshuman/minecraft-banking/internal/domain"
	"github.com/twothirdshuman/minecraft-banking/pkg/errorspkg"
	"github.com/twothirdshuman/minecraft-banking/pkg/kvpkg"
)

// Repo is the transfer engine. It commits a transaction record together with
// the two balance updates it describes as one conditional write, conditioned
// on both account records being unchanged since they were read. No locks are
// held between read and commit; contention surfaces as domain.ErrTxConflict
// and the engine never retries.
type Repo struct {
	store    kvpkg.Store
	accounts *accountrepo.Repo
}

// New returns transfer Repo backed by the given store.
func New(store kvpkg.Store) *Repo {
	return &Repo{
		store:    store,
		accounts: accountrepo.New(store),
	}
}

// Transfer moves amount between two accounts and records the transaction.
//
// Both accounts are read concurrently with their version tokens; the commit
// re-checks those versions, so exactly one of two racing transfers touching
// a shared account can win. A failed commit leaves no partial state.
func (r *Repo) Transfer(ctx context.Context, arg domain.CreateTransactionParams) (domain.TxResult, error) {
	l := zerolog.Ctx(ctx)

	var (
		fromAccount, toAccount domain.Account
		fromVersion, toVersion int64
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		fromAccount, fromVersion, err = r.accounts.GetVersioned(gctx, arg.FromAccountName)
		return err
	})

	g.Go(func() error {
		var err error
		toAccount, toVersion, err = r.accounts.GetVersioned(gctx, arg.ToAccountName)
		return err
	})

	if err := g.Wait(); err != nil {
		return domain.TxResult{}, err
	}

	if fromAccount.Balance < arg.Amount {
		return domain.TxResult{}, domain.ErrInsufficientBalance
	}

	fromAccount.Balance -= arg.Amount
	toAccount.Balance += arg.Amount

	transaction := domain.Transaction{
		FromAccountName: arg.FromAccountName,
		ToAccountName:   arg.ToAccountName,
		Amount:          arg.Amount,
		ID:              ulid.Make().String(),
	}

	checks := []kvpkg.Check{
		{Namespace: kvpkg.NamespaceAccounts, Key: arg.FromAccountName, Version: fromVersion},
		{Namespace: kvpkg.NamespaceAccounts, Key: arg.ToAccountName, Version: toVersion},
		{Namespace: kvpkg.NamespaceTransactions, Key: transaction.ID, Version: 0},
	}

	sets, err := r.transactionSets(transaction, fromAccount, toAccount)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.TxResult{}, errorspkg.ErrInternal
	}

	if err := r.commit(ctx, checks, sets); err != nil {
		return domain.TxResult{}, err
	}

	return domain.TxResult{
		Transaction: transaction,
		FromAccount: fromAccount,
		ToAccount:   toAccount,
	}, nil
}

// Mint credits the destination account out of the Printer sentinel. The
// source existence check and the debit are skipped entirely; this is the
// only sanctioned break of the zero-sum invariant.
func (r *Repo) Mint(ctx context.Context, toAccountName string, amount int64) (domain.TxResult, error) {
	l := zerolog.Ctx(ctx)

	toAccount, toVersion, err := r.accounts.GetVersioned(ctx, toAccountName)
	if err != nil {
		return domain.TxResult{}, err
	}

	toAccount.Balance += amount

	transaction := domain.Transaction{
		FromAccountName: domain.MoneyPrinter,
		ToAccountName:   toAccountName,
		Amount:          amount,
		ID:              ulid.Make().String(),
	}

	checks := []kvpkg.Check{
		{Namespace: kvpkg.NamespaceAccounts, Key: toAccountName, Version: toVersion},
		{Namespace: kvpkg.NamespaceTransactions, Key: transaction.ID, Version: 0},
	}

	transactionValue, err := json.Marshal(transaction)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.TxResult{}, errorspkg.ErrInternal
	}

	toValue, err := json.Marshal(toAccount)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.TxResult{}, errorspkg.ErrInternal
	}

	sets := []kvpkg.Set{
		{Namespace: kvpkg.NamespaceTransactions, Key: transaction.ID, Value: transactionValue},
		{Namespace: kvpkg.NamespaceAccounts, Key: toAccountName, Value: toValue},
	}

	if err := r.commit(ctx, checks, sets); err != nil {
		return domain.TxResult{}, err
	}

	return domain.TxResult{
		Transaction: transaction,
		FromAccount: domain.Account{Name: domain.MoneyPrinter},
		ToAccount:   toAccount,
	}, nil
}

func (r *Repo) transactionSets(transaction domain.Transaction, fromAccount, toAccount domain.Account) ([]kvpkg.Set, error) {
	transactionValue, err := json.Marshal(transaction)
	if err != nil {
		return nil, err
	}

	fromValue, err := json.Marshal(fromAccount)
	if err != nil {
		return nil, err
	}

	toValue, err := json.Marshal(toAccount)
	if err != nil {
		return nil, err
	}

	return []kvpkg.Set{
		{Namespace: kvpkg.NamespaceTransactions, Key: transaction.ID, Value: transactionValue},
		{Namespace: kvpkg.NamespaceAccounts, Key: fromAccount.Name, Value: fromValue},
		{Namespace: kvpkg.NamespaceAccounts, Key: toAccount.Name, Value: toValue},
	}, nil
}

func (r *Repo) commit(ctx context.Context, checks []kvpkg.Check, sets []kvpkg.Set) error {
	l := zerolog.Ctx(ctx)

	err := r.store.Commit(ctx, checks, sets)
	if err == nil {
		return nil
	}

	if err == kvpkg.ErrCommitConflict {
		l.Info().Err(err).Send()
		return domain.ErrTxConflict
	}

	l.Error().Err(err).Send()

	return errorspkg.ErrInternal
}
