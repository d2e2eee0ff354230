// internal/service/wallet_service_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"settleflow/internal/domain"
	"settleflow/internal/util"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestWalletService(t *testing.T) (WalletService, *MockWalletRepository, *MockWalletTransactionRepository, *MockPayoutQueue, *MockTxController) {
	t.Helper()
	mockWalletRepo := new(MockWalletRepository)
	mockTransactionRepo := new(MockWalletTransactionRepository)
	mockPayoutQueue := new(MockPayoutQueue)
	mockTxController := new(MockTxController)
	begin, commit, rollback := stubBeginTx(mockTxController)

	svc := NewWalletService(
		new(MockDBBeginner),
		new(MockDBExecutor),
		mockWalletRepo,
		mockTransactionRepo,
		mockPayoutQueue,
		begin,
		commit,
		rollback,
		zerolog.Nop(),
	)
	return svc, mockWalletRepo, mockTransactionRepo, mockPayoutQueue, mockTxController
}

func TestWalletService_Credit(t *testing.T) {
	ctx := context.Background()
	ownerID := "seller-7"
	currency := "XOF"

	t.Run("Success", func(t *testing.T) {
		svc, mockWalletRepo, mockTransactionRepo, _, mockTxController := newTestWalletService(t)

		existing := &domain.Wallet{ID: 3, OwnerID: ownerID, Currency: currency, Balance: decimal.NewFromInt(100)}
		mockWalletRepo.On("GetWalletByOwnerForUpdate", ctx, mock.Anything, ownerID, currency).Return(existing, nil).Once()
		mockTransactionRepo.On("CreateWalletTransaction", ctx, mock.Anything, mock.MatchedBy(func(tx *domain.WalletTransaction) bool {
			return tx.WalletID == 3 && tx.Type == domain.TransactionTypeCredit && tx.Amount.Equal(decimal.NewFromInt(250)) && tx.Reason == "test credit"
		})).Return(nil).Once()
		mockWalletRepo.On("UpdateWalletBalance", ctx, mock.Anything, int64(3), mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.NewFromInt(250))
		})).Return(nil).Once()
		mockTxController.On("Commit").Return(nil).Once()
		mockTxController.On("Rollback").Return(nil).Once() // deferred, after commit

		wallet, tx, err := svc.Credit(ctx, ownerID, decimal.NewFromInt(250), currency, "test credit", nil)

		require.NoError(t, err)
		assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(350)))
		assert.Equal(t, domain.TransactionTypeCredit, tx.Type)
		mock.AssertExpectationsForObjects(t, mockWalletRepo, mockTransactionRepo, mockTxController)
	})

	t.Run("LazyWalletCreation", func(t *testing.T) {
		svc, mockWalletRepo, mockTransactionRepo, _, mockTxController := newTestWalletService(t)

		mockWalletRepo.On("GetWalletByOwnerForUpdate", ctx, mock.Anything, ownerID, currency).Return(nil, util.ErrWalletNotFound).Once()
		mockWalletRepo.On("CreateWallet", ctx, mock.Anything, mock.MatchedBy(func(w *domain.Wallet) bool {
			return w.OwnerID == ownerID && w.Currency == currency && w.Balance.IsZero()
		})).Run(func(args mock.Arguments) {
			args.Get(2).(*domain.Wallet).ID = 42
		}).Return(nil).Once()
		mockTransactionRepo.On("CreateWalletTransaction", ctx, mock.Anything, mock.MatchedBy(func(tx *domain.WalletTransaction) bool {
			return tx.WalletID == 42
		})).Return(nil).Once()
		mockWalletRepo.On("UpdateWalletBalance", ctx, mock.Anything, int64(42), mock.Anything).Return(nil).Once()
		mockTxController.On("Commit").Return(nil).Once()
		mockTxController.On("Rollback").Return(nil).Once()

		wallet, _, err := svc.Credit(ctx, ownerID, decimal.NewFromInt(10), currency, "first credit", nil)

		require.NoError(t, err)
		assert.Equal(t, int64(42), wallet.ID)
		assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(10)))
		mock.AssertExpectationsForObjects(t, mockWalletRepo, mockTransactionRepo, mockTxController)
	})

	t.Run("InvalidAmount", func(t *testing.T) {
		svc, mockWalletRepo, _, _, _ := newTestWalletService(t)

		_, _, err := svc.Credit(ctx, ownerID, decimal.Zero, currency, "noop", nil)

		assert.ErrorIs(t, err, util.ErrInvalidInput)
		mockWalletRepo.AssertNotCalled(t, "GetWalletByOwnerForUpdate")
	})

	t.Run("AppendFailureRollsBack", func(t *testing.T) {
		svc, mockWalletRepo, mockTransactionRepo, _, mockTxController := newTestWalletService(t)

		existing := &domain.Wallet{ID: 3, OwnerID: ownerID, Currency: currency, Balance: decimal.NewFromInt(100)}
		mockWalletRepo.On("GetWalletByOwnerForUpdate", ctx, mock.Anything, ownerID, currency).Return(existing, nil).Once()
		mockTransactionRepo.On("CreateWalletTransaction", ctx, mock.Anything, mock.Anything).Return(errors.New("db error")).Once()
		mockTxController.On("Rollback").Return(nil).Once()

		_, _, err := svc.Credit(ctx, ownerID, decimal.NewFromInt(5), currency, "test", nil)

		assert.Error(t, err)
		mockTxController.AssertNotCalled(t, "Commit")
		mockWalletRepo.AssertNotCalled(t, "UpdateWalletBalance")
		mock.AssertExpectationsForObjects(t, mockWalletRepo, mockTransactionRepo, mockTxController)
	})
}

func TestWalletService_Debit(t *testing.T) {
	ctx := context.Background()
	ownerID := "fulfiller-2"
	currency := "XOF"

	t.Run("Success", func(t *testing.T) {
		svc, mockWalletRepo, mockTransactionRepo, _, mockTxController := newTestWalletService(t)

		existing := &domain.Wallet{ID: 9, OwnerID: ownerID, Currency: currency, Balance: decimal.NewFromInt(1000)}
		mockWalletRepo.On("GetWalletByOwnerForUpdate", ctx, mock.Anything, ownerID, currency).Return(existing, nil).Once()
		mockTransactionRepo.On("CreateWalletTransaction", ctx, mock.Anything, mock.MatchedBy(func(tx *domain.WalletTransaction) bool {
			return tx.Type == domain.TransactionTypeDebit && tx.Amount.Equal(decimal.NewFromInt(400))
		})).Return(nil).Once()
		mockWalletRepo.On("UpdateWalletBalance", ctx, mock.Anything, int64(9), mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.NewFromInt(-400))
		})).Return(nil).Once()
		mockTxController.On("Commit").Return(nil).Once()
		mockTxController.On("Rollback").Return(nil).Once()

		wallet, tx, err := svc.Debit(ctx, ownerID, decimal.NewFromInt(400), currency, "payout", nil)

		require.NoError(t, err)
		assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(600)))
		assert.True(t, tx.SignedAmount().Equal(decimal.NewFromInt(-400)))
		mock.AssertExpectationsForObjects(t, mockWalletRepo, mockTransactionRepo, mockTxController)
	})

	t.Run("InsufficientFunds", func(t *testing.T) {
		svc, mockWalletRepo, mockTransactionRepo, _, mockTxController := newTestWalletService(t)

		existing := &domain.Wallet{ID: 9, OwnerID: ownerID, Currency: currency, Balance: decimal.NewFromInt(100)}
		mockWalletRepo.On("GetWalletByOwnerForUpdate", ctx, mock.Anything, ownerID, currency).Return(existing, nil).Once()
		mockTxController.On("Rollback").Return(nil).Once()

		_, _, err := svc.Debit(ctx, ownerID, decimal.NewFromInt(400), currency, "payout", nil)

		assert.ErrorIs(t, err, util.ErrInsufficientFunds)
		// No partial ledger writes: nothing appended, nothing committed.
		mockTransactionRepo.AssertNotCalled(t, "CreateWalletTransaction")
		mockWalletRepo.AssertNotCalled(t, "UpdateWalletBalance")
		mockTxController.AssertNotCalled(t, "Commit")
		mock.AssertExpectationsForObjects(t, mockWalletRepo, mockTxController)
	})
}

func TestWalletService_RequestWithdrawal(t *testing.T) {
	ctx := context.Background()
	ownerID := "seller-7"
	currency := "XOF"

	t.Run("DebitsOptimisticallyAndEnqueues", func(t *testing.T) {
		svc, mockWalletRepo, mockTransactionRepo, mockPayoutQueue, mockTxController := newTestWalletService(t)

		existing := &domain.Wallet{ID: 3, OwnerID: ownerID, Currency: currency, Balance: decimal.NewFromInt(500)}
		mockWalletRepo.On("GetWalletByOwnerForUpdate", ctx, mock.Anything, ownerID, currency).Return(existing, nil).Once()
		mockTransactionRepo.On("CreateWalletTransaction", ctx, mock.Anything, mock.MatchedBy(func(tx *domain.WalletTransaction) bool {
			return tx.Type == domain.TransactionTypeDebit && tx.Reason == "withdrawal request"
		})).Return(nil).Once()
		mockWalletRepo.On("UpdateWalletBalance", ctx, mock.Anything, int64(3), mock.Anything).Return(nil).Once()
		mockTxController.On("Commit").Return(nil).Once()
		mockTxController.On("Rollback").Return(nil).Once()
		mockPayoutQueue.On("Enqueue", ctx, mock.MatchedBy(func(req PayoutRequest) bool {
			return req.OwnerID == ownerID && req.Method == "mobile_money" && req.Amount.Equal(decimal.NewFromInt(200))
		})).Return(nil).Once()

		tx, err := svc.RequestWithdrawal(ctx, ownerID, decimal.NewFromInt(200), currency, "mobile_money", "+22500000000")

		require.NoError(t, err)
		assert.Equal(t, "withdrawal request", tx.Reason)
		mock.AssertExpectationsForObjects(t, mockWalletRepo, mockTransactionRepo, mockPayoutQueue, mockTxController)
	})

	t.Run("InsufficientFundsSkipsQueue", func(t *testing.T) {
		svc, mockWalletRepo, _, mockPayoutQueue, mockTxController := newTestWalletService(t)

		existing := &domain.Wallet{ID: 3, OwnerID: ownerID, Currency: currency, Balance: decimal.NewFromInt(50)}
		mockWalletRepo.On("GetWalletByOwnerForUpdate", ctx, mock.Anything, ownerID, currency).Return(existing, nil).Once()
		mockTxController.On("Rollback").Return(nil).Once()

		_, err := svc.RequestWithdrawal(ctx, ownerID, decimal.NewFromInt(200), currency, "mobile_money", "")

		assert.ErrorIs(t, err, util.ErrInsufficientFunds)
		mockPayoutQueue.AssertNotCalled(t, "Enqueue")
	})
}

func TestWalletService_ListTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("WalletMissing", func(t *testing.T) {
		svc, mockWalletRepo, _, _, _ := newTestWalletService(t)

		mockWalletRepo.On("GetWalletByOwner", ctx, mock.Anything, "ghost", "XOF").Return(nil, util.ErrWalletNotFound).Once()

		_, _, err := svc.ListTransactions(ctx, "ghost", "XOF", 10, 0)

		assert.ErrorIs(t, err, util.ErrWalletNotFound)
	})

	t.Run("PassesPagination", func(t *testing.T) {
		svc, mockWalletRepo, mockTransactionRepo, _, _ := newTestWalletService(t)

		wallet := &domain.Wallet{ID: 5, OwnerID: "seller-7", Currency: "XOF"}
		entries := []domain.WalletTransaction{{ID: 2, WalletID: 5}, {ID: 1, WalletID: 5}}
		mockWalletRepo.On("GetWalletByOwner", ctx, mock.Anything, "seller-7", "XOF").Return(wallet, nil).Once()
		mockTransactionRepo.On("ListWalletTransactions", ctx, mock.Anything, int64(5), 20, 40).Return(entries, int64(2), nil).Once()

		got, total, err := svc.ListTransactions(ctx, "seller-7", "XOF", 20, 40)

		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, got, 2)
		mock.AssertExpectationsForObjects(t, mockWalletRepo, mockTransactionRepo)
	})
}
