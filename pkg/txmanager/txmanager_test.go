package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/pkg/dbmetrics"
)

type fakeTx struct {
	db *fakeDB
}

func (t *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	t.db.commits++
	return t.db.commitErr
}

func (t *fakeTx) Rollback() error {
	t.db.rollbacks++
	return nil
}

type fakeDB struct {
	begins    int
	commits   int
	rollbacks int
	commitErr error
	lastOpts  *sql.TxOptions
}

func (d *fakeDB) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (d *fakeDB) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (d *fakeDB) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (d *fakeDB) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	d.begins++
	d.lastOpts = opts
	return &fakeTx{db: d}, nil
}

var (
	errRepoExec = errors.New("repository: exec query")
	errUseCase  = errors.New("usecase: internal error")
)

// serializationError повторяет цепочку оборачивания репозиторий -> usecase
func serializationError() error {
	driverErr := &pq.Error{Code: "40001", Message: "could not serialize access due to read/write dependencies among transactions"}
	repoErr := fmt.Errorf("%w: Create - execute insert: %w", errRepoExec, driverErr)
	return fmt.Errorf("%w: failed to create appointment: %w", errUseCase, repoErr)
}

func TestDoSerializable_RetriesOnSerializationFailure(t *testing.T) {
	db := &fakeDB{}
	m := NewTransactionManager(db)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		if attempts < 3 {
			return serializationError()
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 3, db.begins)
	assert.Equal(t, 2, db.rollbacks)
	assert.Equal(t, 1, db.commits)
	require.NotNil(t, db.lastOpts)
	assert.Equal(t, sql.LevelSerializable, db.lastOpts.Isolation)
}

func TestDoSerializable_GivesUpAfterRetries(t *testing.T) {
	db := &fakeDB{}
	m := NewTransactionManager(db)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(context.Context) error {
		attempts++
		return serializationError()
	})

	assert.ErrorIs(t, err, errUseCase)
	assert.Equal(t, DefaultSerializableRetries+1, attempts)
	assert.Equal(t, 0, db.commits)
}

func TestDoSerializable_RetriesOnCommitFailure(t *testing.T) {
	db := &fakeDB{commitErr: &pq.Error{Code: "40001"}}
	m := NewTransactionManager(db)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(context.Context) error {
		attempts++
		if attempts == 2 {
			db.commitErr = nil
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, 2, db.commits)
}

func TestDoSerializable_NoRetryOnOtherErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "plain error", err: errUseCase},
		{name: "unique violation", err: fmt.Errorf("%w: %w", errRepoExec, &pq.Error{Code: "23505"})},
		{name: "message only", err: errors.New("could not serialize access")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &fakeDB{}
			attempts := 0
			err := NewTransactionManager(db).DoSerializable(context.Background(), func(context.Context) error {
				attempts++
				return tt.err
			})

			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, 1, attempts)
			assert.Equal(t, 1, db.rollbacks)
		})
	}
}

func TestDoSerializable_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	db := &fakeDB{}

	attempts := 0
	err := NewTransactionManager(db).DoSerializable(ctx, func(context.Context) error {
		attempts++
		cancel()
		return serializationError()
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestDoReadOnly(t *testing.T) {
	db := &fakeDB{}

	err := NewTransactionManager(db).DoReadOnly(context.Background(), func(context.Context) error {
		return nil
	})

	require.NoError(t, err)
	require.NotNil(t, db.lastOpts)
	assert.True(t, db.lastOpts.ReadOnly)
	assert.Equal(t, sql.LevelRepeatableRead, db.lastOpts.Isolation)
	assert.Equal(t, 1, db.commits)
}

func TestDo_NestedReusesTransaction(t *testing.T) {
	db := &fakeDB{}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoSerializable(ctx, func(context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Equal(t, 1, db.begins)
	assert.Equal(t, 1, db.commits)
}
