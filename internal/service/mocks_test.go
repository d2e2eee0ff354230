// internal/service/mocks_test.go
package service

import (
	"context"
	"database/sql"

	"settleflow/internal/domain"
	"settleflow/internal/gateway"
	"settleflow/internal/repository"
	"settleflow/pkg/db"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockDBBeginner is a mock implementation of db.DBTxBeginner.
type MockDBBeginner struct {
	mock.Mock
}

func (m *MockDBBeginner) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	args := m.Called(ctx, opts)
	return &sqlx.Tx{}, args.Error(1)
}

// MockTxController is a mock transaction controller that also satisfies
// repository.DBExecutor by embedding MockDBExecutor, mirroring how *sqlx.Tx
// plays both roles.
type MockTxController struct {
	mock.Mock
	MockDBExecutor
}

func (m *MockTxController) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTxController) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of repository.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, q repository.DBExecutor, order *domain.Order) error {
	args := m.Called(ctx, q, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetOrderByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.Order, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) GetOrdersByIDs(ctx context.Context, q repository.DBExecutor, ids []string) ([]domain.Order, error) {
	args := m.Called(ctx, q, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) MarkOrderPaid(ctx context.Context, q repository.DBExecutor, id string) (bool, error) {
	args := m.Called(ctx, q, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) ClaimOrder(ctx context.Context, q repository.DBExecutor, id, fulfillerID string) (bool, error) {
	args := m.Called(ctx, q, id, fulfillerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) ReleaseOrder(ctx context.Context, q repository.DBExecutor, id, fulfillerID string) (bool, error) {
	args := m.Called(ctx, q, id, fulfillerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) CompleteOrder(ctx context.Context, q repository.DBExecutor, id string) (bool, error) {
	args := m.Called(ctx, q, id)
	return args.Bool(0), args.Error(1)
}

// MockWalletRepository is a mock implementation of repository.WalletRepository.
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) CreateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	args := m.Called(ctx, q, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) GetWalletByOwner(ctx context.Context, q repository.DBExecutor, ownerID, currency string) (*domain.Wallet, error) {
	args := m.Called(ctx, q, ownerID, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetWalletByOwnerForUpdate(ctx context.Context, q repository.DBExecutor, ownerID, currency string) (*domain.Wallet, error) {
	args := m.Called(ctx, q, ownerID, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) UpdateWalletBalance(ctx context.Context, q repository.DBExecutor, walletID int64, delta decimal.Decimal) error {
	args := m.Called(ctx, q, walletID, delta)
	return args.Error(0)
}

// MockWalletTransactionRepository is a mock implementation of
// repository.WalletTransactionRepository.
type MockWalletTransactionRepository struct {
	mock.Mock
}

func (m *MockWalletTransactionRepository) CreateWalletTransaction(ctx context.Context, q repository.DBExecutor, tx *domain.WalletTransaction) error {
	args := m.Called(ctx, q, tx)
	return args.Error(0)
}

func (m *MockWalletTransactionRepository) ListWalletTransactions(ctx context.Context, q repository.DBExecutor, walletID int64, limit, offset int) ([]domain.WalletTransaction, int64, error) {
	args := m.Called(ctx, q, walletID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.WalletTransaction), args.Get(1).(int64), args.Error(2)
}

// MockPaymentGateway is a mock implementation of gateway.PaymentGateway.
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateTransaction(ctx context.Context, amount decimal.Decimal, currency string, metadata map[string]string) (string, error) {
	args := m.Called(ctx, amount, currency, metadata)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) CaptureTransaction(ctx context.Context, transactionID string) (*gateway.CaptureResult, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.CaptureResult), args.Error(1)
}

// MockDistributor is a mock implementation of Distributor.
type MockDistributor struct {
	mock.Mock
}

func (m *MockDistributor) Distribute(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// MockWalletService is a mock implementation of WalletService.
type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) Credit(ctx context.Context, ownerID string, amount decimal.Decimal, currency, reason string, orderID *string) (*domain.Wallet, *domain.WalletTransaction, error) {
	args := m.Called(ctx, ownerID, amount, currency, reason, orderID)
	return nil, nil, args.Error(2)
}

func (m *MockWalletService) Debit(ctx context.Context, ownerID string, amount decimal.Decimal, currency, reason string, orderID *string) (*domain.Wallet, *domain.WalletTransaction, error) {
	args := m.Called(ctx, ownerID, amount, currency, reason, orderID)
	return nil, nil, args.Error(2)
}

func (m *MockWalletService) GetBalance(ctx context.Context, ownerID, currency string) (*domain.Wallet, error) {
	args := m.Called(ctx, ownerID, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletService) ListTransactions(ctx context.Context, ownerID, currency string, limit, offset int) ([]domain.WalletTransaction, int64, error) {
	args := m.Called(ctx, ownerID, currency, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.WalletTransaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockWalletService) RequestWithdrawal(ctx context.Context, ownerID string, amount decimal.Decimal, currency, method, details string) (*domain.WalletTransaction, error) {
	args := m.Called(ctx, ownerID, amount, currency, method, details)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletTransaction), args.Error(1)
}

// MockPayoutQueue is a mock implementation of PayoutQueue.
type MockPayoutQueue struct {
	mock.Mock
}

func (m *MockPayoutQueue) Enqueue(ctx context.Context, req PayoutRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

// stubBeginTx wires a MockTxController into a service's transaction boundary.
func stubBeginTx(controller *MockTxController) (db.BeginTxFunc, db.CommitTxFunc, db.RollbackTxFunc) {
	begin := func(ctx context.Context, dbConn db.DBTxBeginner) (db.TxController, error) {
		return controller, nil
	}
	commit := func(tx db.TxController) error {
		return tx.Commit()
	}
	rollback := func(tx db.TxController) {
		_ = tx.Rollback()
	}
	return begin, commit, rollback
}
