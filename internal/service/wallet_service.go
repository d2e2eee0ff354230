// internal/service/wallet_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"settleflow/internal/domain"
	"settleflow/internal/repository"
	"settleflow/internal/util"
	"settleflow/pkg/db"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// PayoutRequest describes a pending withdrawal handed to the payout side.
type PayoutRequest struct {
	OwnerID  string
	Amount   decimal.Decimal
	Currency string
	Method   string
	Details  string
}

// PayoutQueue receives withdrawal requests for asynchronous execution. The
// queue is external to this core; the default implementation only records.
type PayoutQueue interface {
	Enqueue(ctx context.Context, req PayoutRequest) error
}

// LogPayoutQueue records payout requests in the log. Stands in until a real
// payout executor is attached.
type LogPayoutQueue struct {
	Logger zerolog.Logger
}

func (q LogPayoutQueue) Enqueue(ctx context.Context, req PayoutRequest) error {
	q.Logger.Info().
		Str("owner_id", req.OwnerID).
		Str("amount", req.Amount.String()).
		Str("currency", req.Currency).
		Str("method", req.Method).
		Msg("withdrawal request queued")
	return nil
}

// WalletService is the wallet ledger: the sole mutator of balances. Every
// credit and debit appends a transaction and applies the matching delta as
// one atomic unit, so a balance is always the replay of its log.
type WalletService interface {
	Credit(ctx context.Context, ownerID string, amount decimal.Decimal, currency, reason string, orderID *string) (*domain.Wallet, *domain.WalletTransaction, error)
	Debit(ctx context.Context, ownerID string, amount decimal.Decimal, currency, reason string, orderID *string) (*domain.Wallet, *domain.WalletTransaction, error)
	GetBalance(ctx context.Context, ownerID, currency string) (*domain.Wallet, error)
	ListTransactions(ctx context.Context, ownerID, currency string, limit, offset int) ([]domain.WalletTransaction, int64, error)
	RequestWithdrawal(ctx context.Context, ownerID string, amount decimal.Decimal, currency, method, details string) (*domain.WalletTransaction, error)
}

type walletService struct {
	dbBeginner      db.DBTxBeginner
	dbExecutor      repository.DBExecutor
	walletRepo      repository.WalletRepository
	transactionRepo repository.WalletTransactionRepository
	payoutQueue     PayoutQueue
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
	logger          zerolog.Logger
}

// NewWalletService creates a new instance of WalletService.
func NewWalletService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	walletRepo repository.WalletRepository,
	transactionRepo repository.WalletTransactionRepository,
	payoutQueue PayoutQueue,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	logger zerolog.Logger,
) WalletService {
	return &walletService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		payoutQueue:     payoutQueue,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
		logger:          logger.With().Str("component", "wallet_ledger").Logger(),
	}
}

// Credit adds funds to a party's wallet, creating the wallet if absent.
func (s *walletService) Credit(ctx context.Context, ownerID string, amount decimal.Decimal, currency, reason string, orderID *string) (*domain.Wallet, *domain.WalletTransaction, error) {
	return s.apply(ctx, ownerID, amount, currency, reason, orderID, domain.TransactionTypeCredit)
}

// Debit removes funds from a party's wallet. Fails with ErrInsufficientFunds
// before anything is written when the balance cannot cover the amount.
func (s *walletService) Debit(ctx context.Context, ownerID string, amount decimal.Decimal, currency, reason string, orderID *string) (*domain.Wallet, *domain.WalletTransaction, error) {
	return s.apply(ctx, ownerID, amount, currency, reason, orderID, domain.TransactionTypeDebit)
}

// apply performs the atomic ledger step shared by Credit and Debit: lock or
// lazily create the wallet, check funds for debits, append the transaction,
// update the balance, all inside one database transaction.
func (s *walletService) apply(ctx context.Context, ownerID string, amount decimal.Decimal, currency, reason string, orderID *string, txType domain.TransactionType) (*domain.Wallet, *domain.WalletTransaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, util.ErrInvalidInput
	}
	if ownerID == "" || currency == "" {
		return nil, nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: failed to begin transaction: %w", txType, err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("%s: transaction controller does not implement DBExecutor", txType)
	}

	wallet, err := s.walletRepo.GetWalletByOwnerForUpdate(ctx, txExecutor, ownerID, currency)
	if err != nil {
		if !errors.Is(err, util.ErrWalletNotFound) {
			return nil, nil, fmt.Errorf("%s: failed to get wallet for owner %s: %w", txType, ownerID, err)
		}
		wallet = domain.NewWallet(ownerID, currency)
		if err := s.walletRepo.CreateWallet(ctx, txExecutor, wallet); err != nil {
			return nil, nil, fmt.Errorf("%s: failed to create wallet for owner %s: %w", txType, ownerID, err)
		}
	}

	if txType == domain.TransactionTypeDebit && wallet.Balance.LessThan(amount) {
		return nil, nil, util.ErrInsufficientFunds
	}

	transaction := domain.NewWalletTransaction(wallet.ID, txType, amount, currency, reason, orderID)
	if err := s.transactionRepo.CreateWalletTransaction(ctx, txExecutor, transaction); err != nil {
		return nil, nil, fmt.Errorf("%s: failed to append wallet transaction: %w", txType, err)
	}

	if err := s.walletRepo.UpdateWalletBalance(ctx, txExecutor, wallet.ID, transaction.SignedAmount()); err != nil {
		return nil, nil, fmt.Errorf("%s: failed to update wallet balance: %w", txType, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("%s: failed to commit transaction: %w", txType, err)
	}

	wallet.Balance = wallet.Balance.Add(transaction.SignedAmount())

	s.logger.Info().
		Str("owner_id", ownerID).
		Str("type", string(txType)).
		Str("amount", amount.String()).
		Str("currency", currency).
		Str("reason", reason).
		Msg("wallet transaction applied")

	return wallet, transaction, nil
}

// GetBalance returns a party's wallet for a currency.
func (s *walletService) GetBalance(ctx context.Context, ownerID, currency string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetWalletByOwner(ctx, s.dbExecutor, ownerID, currency)
	if err != nil {
		return nil, fmt.Errorf("get balance: failed to get wallet for owner %s: %w", ownerID, err)
	}
	return wallet, nil
}

// ListTransactions returns a paginated, newest-first slice of a wallet's
// ledger plus the total entry count.
func (s *walletService) ListTransactions(ctx context.Context, ownerID, currency string, limit, offset int) ([]domain.WalletTransaction, int64, error) {
	wallet, err := s.walletRepo.GetWalletByOwner(ctx, s.dbExecutor, ownerID, currency)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: failed to get wallet for owner %s: %w", ownerID, err)
	}

	transactions, totalCount, err := s.transactionRepo.ListWalletTransactions(ctx, s.dbExecutor, wallet.ID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, totalCount, nil
}

// RequestWithdrawal debits the wallet immediately and hands the payout to the
// external queue. Debiting at request time, before the payout executes, is a
// policy choice: withdrawal approval is treated as a formality.
func (s *walletService) RequestWithdrawal(ctx context.Context, ownerID string, amount decimal.Decimal, currency, method, details string) (*domain.WalletTransaction, error) {
	_, transaction, err := s.Debit(ctx, ownerID, amount, currency, "withdrawal request", nil)
	if err != nil {
		return nil, err
	}

	// A queue failure must not undo the debit: the ledger entry exists and
	// the payout can be re-driven from it.
	if err := s.payoutQueue.Enqueue(ctx, PayoutRequest{
		OwnerID:  ownerID,
		Amount:   amount,
		Currency: currency,
		Method:   method,
		Details:  details,
	}); err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to enqueue payout request")
	}

	return transaction, nil
}
