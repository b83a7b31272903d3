package transferservice

import (
	"context"
	"math"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/twothirdshuman/minecraft-banking/internal/accountdelivery"
	"github.com/twothirdshuman/minecraft-banking/internal/domain"
	"github.com/twothirdshuman/minecraft-banking/pkg/configpkg"
	"github.com/twothirdshuman/minecraft-banking/pkg/errorspkg"
	"github.com/twothirdshuman/minecraft-banking/pkg/passpkg"
)

const (
	testPin    = "1234"
	testSecret = "bank-secret"
)

func testConfig(t *testing.T) configpkg.Config {
	t.Helper()

	hashed, err := passpkg.Hash(testSecret)
	require.NoError(t, err)

	return configpkg.Config{BankSecretHash: hashed}
}

func TestTransfer(t *testing.T) {
	testAccount1 := domain.Account{Name: "alice", Pin: testPin, Balance: 1000}
	testAccount2 := domain.Account{Name: "bob", Pin: "0000", Balance: 0}

	testTxResult := domain.TxResult{
		Transaction: domain.Transaction{
			FromAccountName: testAccount1.Name,
			ToAccountName:   testAccount2.Name,
			Amount:          100,
			ID:              "01H0000000000000000000TEST",
		},
		FromAccount: domain.Account{Name: "alice", Pin: testPin, Balance: 900},
		ToAccount:   domain.Account{Name: "bob", Pin: "0000", Balance: 100},
	}

	testCases := []struct {
		name          string
		arg           domain.TransferParams
		buildStubs    func(repo *MockRepo, accountService *accountdelivery.MockService)
		checkResponse func(res domain.TxResult, err error)
	}{
		{
			name: "NaN amount",
			arg: domain.TransferParams{
				FromAccountName: testAccount1.Name,
				ToAccountName:   testAccount2.Name,
				Amount:          math.NaN(),
				Pin:             testPin,
			},
			buildStubs: func(repo *MockRepo, accountService *accountdelivery.MockService) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
			},
		},
		{
			name: "Infinite amount",
			arg: domain.TransferParams{
				FromAccountName: testAccount1.Name,
				ToAccountName:   testAccount2.Name,
				Amount:          math.Inf(1),
				Pin:             testPin,
			},
			buildStubs: func(repo *MockRepo, accountService *accountdelivery.MockService) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
			},
		},
		{
			name: "Fractional amount",
			arg: domain.TransferParams{
				FromAccountName: testAccount1.Name,
				ToAccountName:   testAccount2.Name,
				Amount:          100.5,
				Pin:             testPin,
			},
			buildStubs: func(repo *MockRepo, accountService *accountdelivery.MockService) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
			},
		},
		{
			name: "Negative amount",
			arg: domain.TransferParams{
				FromAccountName: testAccount1.Name,
				ToAccountName:   testAccount2.Name,
				Amount:          -100,
				Pin:             testPin,
			},
			buildStubs: func(repo *MockRepo, accountService *accountdelivery.MockService) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
			},
		},
		{
			name: "Zero amount",
			arg: domain.TransferParams{
				FromAccountName: testAccount1.Name,
				ToAccountName:   testAccount2.Name,
				Amount:          0,
				Pin:             testPin,
			},
			buildStubs: func(repo *MockRepo, accountService *accountdelivery.MockService) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
			},
		},
		{
			name: "Amount validity wins over pin",
			arg: domain.TransferParams{
				FromAccountName: testAccount1.Name,
				ToAccountName:   testAccount2.Name,
				Amount:          -1,
				Pin:             "wrong",
			},
			buildStubs: func(repo *MockRepo, accountService *accountdelivery.MockService) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
			},
		},
		{
			name: "Self transfer",
			arg: domain.TransferParams{
				FromAccountName: testAccount1.Name,
				ToAccountName:   testAccount1.Name,
				Amount:          100,
				Pin:             testPin,
			},
			buildStubs: func(repo *MockRepo, accountService *accountdelivery.MockService) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrSelfTransfer)
			},
		},
		{
			name: "From account not found",
			arg: domain.TransferParams{
				FromAccountName: "ghost",
				ToAccountName:   testAccount2.Name,
				Amount:          100,
				Pin:             testPin,
			},
			buildStubs: func(repo *MockRepo, accountService *accountdelivery.MockService) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq("ghost")).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			checkResponse: func(res domain.TxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrAccountNotFound)
			},
		},
		{
			name: "Account service err",
			arg: domain.TransferParams{
				FromAccountName: testAccount1.Name,
				ToAccountName:   testAccount2.Name,
				Amount:          100,
				Pin:             testPin,
			},
			buildStubs: func(repo *MockRepo, accountService *accountdelivery.MockService) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount1.Name)).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
			},
			checkResponse: func(res domain.TxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, errorspkg.ErrInternal)
			},
		},
		{
			name: "Insufficient balance",
			arg: domain.TransferParams{
				FromAccountName: testAccount1.Name,
				ToAccountName:   testAccount2.Name,
				Amount:          10000,
				Pin:             testPin,
			},
			buildStubs: func(repo *MockRepo, accountService *accountdelivery.MockService) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount1.Name)).
					Times(1).
					Return(testAccount1, nil)
			},
			checkResponse: func(res domain.TxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrInsufficientBalance)
			},
		},
		{
			name: "Insufficient balance wins over pin",
			arg: domain.TransferParams{
				FromAccountName: testAccount1.Name,
				ToAccountName:   testAccount2.Name,
				Amount:          10000,
				Pin:             "wrong",
			},
			buildStubs: func(repo *MockRepo, accountService *accountdelivery.MockService) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount1.Name)).
					Times(1).
					Return(testAccount1, nil)
			},
			checkResponse: func(res domain.TxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrInsufficientBalance)
			},
		},
		{
			name: "Wrong pin",
			arg: domain.TransferParams{
				FromAccountName: testAccount1.Name,
				ToAccountName:   testAccount2.Name,
				Amount:          100,
				Pin:             "0000",
			},
			buildStubs: func(repo *MockRepo, accountService *accountdelivery.MockService) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount1.Name)).
					Times(1).
					Return(testAccount1, nil)
			},
			checkResponse: func(res domain.TxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrWrongPin)
			},
		},
		{
			name: "Commit conflict",
			arg: domain.TransferParams{
				FromAccountName: testAccount1.Name,
				ToAccountName:   testAccount2.Name,
				Amount:          100,
				Pin:             testPin,
			},
			buildStubs: func(repo *MockRepo, accountService *accountdelivery.MockService) {
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount1.Name)).
					Times(1).
					Return(testAccount1, nil)
				repo.EXPECT().
					Transfer(gomock.Any(), gomock.Eq(domain.CreateTransactionParams{
						FromAccountName: testAccount1.Name,
						ToAccountName:   testAccount2.Name,
						Amount:          100,
					})).
					Times(1).
					Return(domain.TxResult{}, domain.ErrTxConflict)
			},
			checkResponse: func(res domain.TxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrTxConflict)
			},
		},
		{
			name: "OK",
			arg: domain.TransferParams{
				FromAccountName: testAccount1.Name,
				ToAccountName:   testAccount2.Name,
				Amount:          100,
				Pin:             testPin,
			},
			buildStubs: func(repo *MockRepo, accountService *accountdelivery.MockService) {
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount1.Name)).
					Times(1).
					Return(testAccount1, nil)
				repo.EXPECT().
					Transfer(gomock.Any(), gomock.Eq(domain.CreateTransactionParams{
						FromAccountName: testAccount1.Name,
						ToAccountName:   testAccount2.Name,
						Amount:          100,
					})).
					Times(1).
					Return(testTxResult, nil)
			},
			checkResponse: func(res domain.TxResult, err error) {
				require.NoError(t, err)
				require.Equal(t, testTxResult, res)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			transferRepo := NewMockRepo(ctrl)
			accountService := accountdelivery.NewMockService(ctrl)
			transferService := New(transferRepo, accountService, testConfig(t))

			tc.buildStubs(transferRepo, accountService)

			tc.checkResponse(transferService.Transfer(context.Background(), tc.arg))
		})
	}
}

func TestMint(t *testing.T) {
	testAccount := domain.Account{Name: "carol", Balance: 7}

	testTxResult := domain.TxResult{
		Transaction: domain.Transaction{
			FromAccountName: domain.MoneyPrinter,
			ToAccountName:   testAccount.Name,
			Amount:          500,
			ID:              "01H0000000000000000000MINT",
		},
		FromAccount: domain.Account{Name: domain.MoneyPrinter},
		ToAccount:   domain.Account{Name: "carol", Balance: 507},
	}

	testCases := []struct {
		name          string
		arg           domain.MintParams
		buildStubs    func(repo *MockRepo)
		checkResponse func(res domain.TxResult, err error)
	}{
		{
			name: "Invalid amount",
			arg: domain.MintParams{
				ToAccountName: testAccount.Name,
				Amount:        500.5,
				Secret:        testSecret,
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Mint(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
			},
		},
		{
			name: "Wrong secret",
			arg: domain.MintParams{
				ToAccountName: testAccount.Name,
				Amount:        500,
				Secret:        "not-the-secret",
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Mint(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrInvalidSecret)
			},
		},
		{
			name: "Account pin is not the secret",
			arg: domain.MintParams{
				ToAccountName: testAccount.Name,
				Amount:        500,
				Secret:        testPin,
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Mint(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrInvalidSecret)
			},
		},
		{
			name: "OK",
			arg: domain.MintParams{
				ToAccountName: testAccount.Name,
				Amount:        500,
				Secret:        testSecret,
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Mint(gomock.Any(), gomock.Eq(testAccount.Name), gomock.Eq(int64(500))).
					Times(1).
					Return(testTxResult, nil)
			},
			checkResponse: func(res domain.TxResult, err error) {
				require.NoError(t, err)
				require.Equal(t, testTxResult, res)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			transferRepo := NewMockRepo(ctrl)
			accountService := accountdelivery.NewMockService(ctrl)
			transferService := New(transferRepo, accountService, testConfig(t))

			tc.buildStubs(transferRepo)

			tc.checkResponse(transferService.Mint(context.Background(), tc.arg))
		})
	}
}
