package pgsql

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/bcv_rates/internal/apperrors"
	"github.com/SscSPs/bcv_rates/internal/core/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCustomRate() domain.UserCustomRate {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	return domain.UserCustomRate{
		ID:         "0b5c5f0e-7c55-4c8e-9a37-3f2b9b0d1a11",
		UserID:     "user-1",
		Label:      "USDT",
		Rate:       decimal.RequireFromString("345.1"),
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
}

func TestCreateCustomRate_Inserts(t *testing.T) {
	tx := &fakeTx{countRow: 3}
	repo := newPgxCustomRateRepository(&fakeDB{tx: tx})

	err := repo.CreateCustomRate(context.Background(), testCustomRate(), 10)
	require.NoError(t, err)

	assert.True(t, tx.committed)
	require.Len(t, tx.execs, 2)
	assert.Contains(t, tx.execs[0].sql, "pg_advisory_xact_lock")
	assert.Equal(t, "user-1", tx.execs[0].args[0])
	assert.Contains(t, tx.execs[1].sql, "INSERT INTO user_custom_rates")
	assert.Equal(t, "USDT", tx.execs[1].args[2])
}

func TestCreateCustomRate_CapReached(t *testing.T) {
	tx := &fakeTx{countRow: 10}
	repo := newPgxCustomRateRepository(&fakeDB{tx: tx})

	err := repo.CreateCustomRate(context.Background(), testCustomRate(), 10)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Contains(t, err.Error(), "10")

	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
	assert.Len(t, tx.execs, 1, "insert must not run once the cap is reached")
}

func TestCreateCustomRate_DuplicateLabel(t *testing.T) {
	tx := &fakeTx{failOnExec: 2, execErr: &pgconn.PgError{Code: "23505"}}
	repo := newPgxCustomRateRepository(&fakeDB{tx: tx})

	err := repo.CreateCustomRate(context.Background(), testCustomRate(), 10)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.Equal(t, 409, apperrors.StatusCode(err))
	assert.True(t, tx.rolledBack)
}

func TestUpdateCustomRate_NotOwned(t *testing.T) {
	repo := newPgxCustomRateRepository(&fakeDB{execTag: pgconn.NewCommandTag("UPDATE 0")})

	err := repo.UpdateCustomRate(context.Background(), testCustomRate())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateCustomRate_DuplicateLabel(t *testing.T) {
	repo := newPgxCustomRateRepository(&fakeDB{execErr: &pgconn.PgError{Code: "23505"}})

	err := repo.UpdateCustomRate(context.Background(), testCustomRate())
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestDeleteCustomRate(t *testing.T) {
	repo := newPgxCustomRateRepository(&fakeDB{execTag: pgconn.NewCommandTag("DELETE 1")})
	assert.NoError(t, repo.DeleteCustomRate(context.Background(), "user-1", testCustomRate().ID))

	repo = newPgxCustomRateRepository(&fakeDB{execTag: pgconn.NewCommandTag("DELETE 0")})
	assert.ErrorIs(t, repo.DeleteCustomRate(context.Background(), "user-1", testCustomRate().ID), apperrors.ErrNotFound)

	repo = newPgxCustomRateRepository(&fakeDB{execErr: &pgconn.PgError{Code: "22P02"}})
	assert.ErrorIs(t, repo.DeleteCustomRate(context.Background(), "user-1", "not-a-uuid"), apperrors.ErrNotFound)
}

func TestFindCustomRate_Missing(t *testing.T) {
	repo := newPgxCustomRateRepository(&fakeDB{})

	_, err := repo.FindCustomRate(context.Background(), "user-1", testCustomRate().ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
