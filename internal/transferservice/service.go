// Package transferservice manages business logic layer of transfers.
package transferservice

import (
	"context"
	"math"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/twothirdshuman/minecraft-banking/internal/accountdelivery"
	"github.com/twothirdshuman/minecraft-banking/internal/domain"
	"github.com/twothirdshuman/minecraft-banking/pkg/configpkg"
	"github.com/twothirdshuman/minecraft-banking/pkg/passpkg"
)

// Repo provides data access layer interface needed by transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type Repo interface {
	Transfer(ctx context.Context, arg domain.CreateTransactionParams) (domain.TxResult, error)
	Mint(ctx context.Context, toAccountName string, amount int64) (domain.TxResult, error)
}

// Service facilitates transfer service layer logic.
type Service struct {
	repo           Repo
	accountService accountdelivery.Service
	config         configpkg.Config
}

// New returns transfer service struct to manage transfer business logic.
func New(tr Repo, as accountdelivery.Service, config configpkg.Config) *Service {
	return &Service{
		repo:           tr,
		accountService: as,
		config:         config,
	}
}

// amountToInt validates that a raw json amount is a finite positive whole
// number and converts it.
func amountToInt(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, domain.ErrInvalidAmount
	}

	d := decimal.NewFromFloat(amount)

	if !d.IsInteger() || d.LessThanOrEqual(decimal.Zero) {
		return 0, domain.ErrInvalidAmount
	}

	if !d.BigInt().IsInt64() {
		return 0, domain.ErrInvalidAmount
	}

	return d.IntPart(), nil
}

// validRequest applies the transfer business rules in canonical order:
// amount validity, self-transfer, source existence, sufficient funds, pin.
// The first failing check wins.
func (s *Service) validRequest(ctx context.Context, arg domain.TransferParams) (int64, error) {
	l := zerolog.Ctx(ctx)

	amount, err := amountToInt(arg.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		return 0, err
	}

	if arg.FromAccountName == arg.ToAccountName {
		return 0, domain.ErrSelfTransfer
	}

	fromAccount, err := s.accountService.Get(ctx, arg.FromAccountName)
	if err != nil {
		l.Info().Err(err).Send()
		return 0, err
	}

	if fromAccount.Balance < amount {
		return 0, domain.ErrInsufficientBalance
	}

	if fromAccount.Pin != arg.Pin {
		return 0, domain.ErrWrongPin
	}

	return amount, nil
}

// Transfer checks if the transfer request is valid and then executes it.
func (s *Service) Transfer(ctx context.Context, arg domain.TransferParams) (domain.TxResult, error) {
	amount, err := s.validRequest(ctx, arg)
	if err != nil {
		return domain.TxResult{}, err
	}

	return s.repo.Transfer(ctx, domain.CreateTransactionParams{
		FromAccountName: arg.FromAccountName,
		ToAccountName:   arg.ToAccountName,
		Amount:          amount,
	})
}

// Mint creates new money on the destination account. It is a bank operator
// operation: the supplied secret must verify against the configured
// reference hash, not against any account pin.
func (s *Service) Mint(ctx context.Context, arg domain.MintParams) (domain.TxResult, error) {
	l := zerolog.Ctx(ctx)

	amount, err := amountToInt(arg.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.TxResult{}, err
	}

	if err := passpkg.Check(arg.Secret, s.config.BankSecretHash); err != nil {
		l.Info().Err(err).Send()
		return domain.TxResult{}, domain.ErrInvalidSecret
	}

	return s.repo.Mint(ctx, arg.ToAccountName, amount)
}
