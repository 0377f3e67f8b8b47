package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/bcv_rates/internal/apperrors"
	"github.com/SscSPs/bcv_rates/internal/core/domain"
	portsrepo "github.com/SscSPs/bcv_rates/internal/core/ports/repositories"
	"github.com/SscSPs/bcv_rates/internal/models"
	"github.com/SscSPs/bcv_rates/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxCustomRateRepository struct {
	BaseRepository
}

// newPgxCustomRateRepository creates a new repository for user custom rates.
func newPgxCustomRateRepository(db DB) *PgxCustomRateRepository {
	return &PgxCustomRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.CustomRateRepositoryFacade = (*PgxCustomRateRepository)(nil)

const customRateColumns = `id, user_id, label, rate, created_at, updated_at`

func scanCustomRate(row pgx.Row) (models.UserCustomRate, error) {
	var m models.UserCustomRate
	err := row.Scan(&m.ID, &m.UserID, &m.Label, &m.Rate, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// ListCustomRates returns every custom rate of userID ordered by label.
func (r *PgxCustomRateRepository) ListCustomRates(ctx context.Context, userID string) ([]domain.UserCustomRate, error) {
	query := `SELECT ` + customRateColumns + `
		FROM user_custom_rates
		WHERE user_id = $1
		ORDER BY label ASC;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query custom rates: %w", err)
	}
	defer rows.Close()

	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.UserCustomRate, error) {
		return scanCustomRate(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan custom rates: %w", err)
	}
	return mapping.ToDomainCustomRateSlice(list), nil
}

// FindCustomRate returns the rate id if it belongs to userID.
func (r *PgxCustomRateRepository) FindCustomRate(ctx context.Context, userID, id string) (*domain.UserCustomRate, error) {
	query := `SELECT ` + customRateColumns + `
		FROM user_custom_rates
		WHERE id = $1 AND user_id = $2;`

	m, err := scanCustomRate(r.Pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, apperrors.NewNotFoundError("Custom rate not found.")
		}
		return nil, fmt.Errorf("failed to find custom rate %s: %w", id, err)
	}
	d := mapping.ToDomainCustomRate(m)
	return &d, nil
}

// CreateCustomRate inserts rate under a per-user advisory lock so that concurrent
// creations cannot exceed maxPerUser.
func (r *PgxCustomRateRepository) CreateCustomRate(ctx context.Context, rate domain.UserCustomRate, maxPerUser int) error {
	return r.WithinTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1));`, rate.UserID); err != nil {
			return apperrors.NewPersistenceError("failed to lock custom rates", err)
		}

		var count int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM user_custom_rates WHERE user_id = $1;`, rate.UserID).Scan(&count); err != nil {
			return apperrors.NewPersistenceError("failed to count custom rates", err)
		}
		if count >= maxPerUser {
			return apperrors.NewForbiddenError(fmt.Sprintf("You can only save up to %d custom rates.", maxPerUser))
		}

		m := mapping.ToModelCustomRate(rate)
		_, err := tx.Exec(ctx, `
			INSERT INTO user_custom_rates (id, user_id, label, rate, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6);`,
			m.ID, m.UserID, m.Label, m.Rate, m.CreatedAt, m.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.NewConflictError("You already have a custom rate with that label.")
			}
			return apperrors.NewPersistenceError("failed to insert custom rate", err)
		}
		return nil
	})
}

// UpdateCustomRate overwrites label and rate of a rate owned by rate.UserID.
func (r *PgxCustomRateRepository) UpdateCustomRate(ctx context.Context, rate domain.UserCustomRate) error {
	m := mapping.ToModelCustomRate(rate)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE user_custom_rates
		SET label = $1, rate = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5;`,
		m.Label, m.Rate, m.UpdatedAt, m.ID, m.UserID,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return apperrors.NewConflictError("You already have a custom rate with that label.")
		case isInvalidText(err):
			return apperrors.NewNotFoundError("Custom rate not found.")
		}
		return apperrors.NewPersistenceError("failed to update custom rate", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Custom rate not found.")
	}
	return nil
}

// DeleteCustomRate removes a rate owned by userID.
func (r *PgxCustomRateRepository) DeleteCustomRate(ctx context.Context, userID, id string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM user_custom_rates WHERE id = $1 AND user_id = $2;`, id, userID)
	if err != nil {
		if isInvalidText(err) {
			return apperrors.NewNotFoundError("Custom rate not found.")
		}
		return apperrors.NewPersistenceError("failed to delete custom rate", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Custom rate not found.")
	}
	return nil
}
