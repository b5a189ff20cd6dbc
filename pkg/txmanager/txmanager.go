package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/pkg/dbmetrics"
)

const (
	// DefaultSerializableRetries количество повторов при конфликте сериализации
	DefaultSerializableRetries = 3

	serializationFailureCode = "40001"
)

var (
	// ErrUnsupportedDB возвращается, если executor не умеет начинать транзакции
	ErrUnsupportedDB = errors.New("txmanager: db type does not support transactions")

	// ErrTransaction возвращается при ошибках начала или фиксации транзакции
	ErrTransaction = errors.New("txmanager: transaction error")
)

// Beginner executor, который сам начинает транзакции (например, *dbmetrics.DB)
type Beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции внутри транзакции, передавая её через context
// Поддерживает *sql.DB и любой Beginner
type TransactionManager struct {
	db      dbmetrics.DBExecutor
	retries int
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db dbmetrics.DBExecutor) *TransactionManager {
	return &TransactionManager{db: db, retries: DefaultSerializableRetries}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, nil, fn)
}

// DoReadOnly выполняет fn в read-only транзакции на одном снимке данных
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции
// При конфликте сериализации (SQLSTATE 40001) повторяет попытку
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; attempt <= m.retries; attempt++ {
		err = m.run(ctx, opts, fn)
		if err == nil || !isSerializationFailure(err) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return err
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	// Вложенный вызов переиспользует внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.begin(ctx, opts)
	if err != nil {
		return err
	}

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrTransaction, err)
	}
	return nil
}

func (m *TransactionManager) begin(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	switch db := m.db.(type) {
	case Beginner:
		tx, err := db.BeginTx(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: begin: %w", ErrTransaction, err)
		}
		return tx, nil
	case *sql.DB:
		tx, err := db.BeginTx(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: begin: %w", ErrTransaction, err)
		}
		return &dbmetrics.SqlTxWrapper{Tx: tx}, nil
	default:
		return nil, ErrUnsupportedDB
	}
}

// isSerializationFailure распознает конфликт сериализации PostgreSQL
// Ошибки репозиториев и usecase оборачиваются через %w, поэтому *pq.Error доступен через errors.As
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == serializationFailureCode
	}
	return false
}
