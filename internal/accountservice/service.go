// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/twothirdshuman/minecraft-banking/internal/domain"
	"github.com/twothirdshuman/minecraft-banking/pkg/configpkg"
	"github.com/twothirdshuman/minecraft-banking/pkg/passpkg"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Get(ctx context.Context, name string) (domain.Account, error)
	ListNames(ctx context.Context) ([]string, error)
	Create(ctx context.Context, name, pin string) (domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo   Repo
	config configpkg.Config
}

// New returns account service struct to manage account business logic.
func New(ar Repo, config configpkg.Config) *Service {
	return &Service{
		repo:   ar,
		config: config,
	}
}

// Get returns the account with the given name.
func (s *Service) Get(ctx context.Context, name string) (domain.Account, error) {
	return s.repo.Get(ctx, name)
}

// Balance returns the balance of the account with the given name.
func (s *Service) Balance(ctx context.Context, name string) (int64, error) {
	account, err := s.repo.Get(ctx, name)
	if err != nil {
		return 0, err
	}

	return account.Balance, nil
}

// ListNames returns the names of all accounts.
func (s *Service) ListNames(ctx context.Context) ([]string, error) {
	return s.repo.ListNames(ctx)
}

// Create creates an account with zero balance and an empty pin. It is a bank
// operator operation: the supplied secret must verify against the configured
// reference hash before anything is written.
func (s *Service) Create(ctx context.Context, name, secret string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if err := passpkg.Check(secret, s.config.BankSecretHash); err != nil {
		l.Info().Err(err).Send()
		return domain.Account{}, domain.ErrInvalidSecret
	}

	return s.repo.Create(ctx, name, "")
}
