package pgsql

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/bcv_rates/internal/apperrors"
	"github.com/SscSPs/bcv_rates/internal/core/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// PostgresSuite runs against a disposable database named by TEST_PGSQL_URL.
type PostgresSuite struct {
	suite.Suite
	pool *pgxpool.Pool
}

func TestPostgresSuite(t *testing.T) {
	url := os.Getenv("TEST_PGSQL_URL")
	if url == "" {
		t.Skip("TEST_PGSQL_URL not set")
	}
	pool, err := pgxpool.New(context.Background(), url)
	require.NoError(t, err)
	defer pool.Close()

	suite.Run(t, &PostgresSuite{pool: pool})
}

func (s *PostgresSuite) SetupTest() {
	ctx := context.Background()
	files, err := filepath.Glob("../../../../migrations/*.down.sql")
	s.Require().NoError(err)
	sort.Sort(sort.Reverse(sort.StringSlice(files)))
	s.execFiles(ctx, files)

	files, err = filepath.Glob("../../../../migrations/*.up.sql")
	s.Require().NoError(err)
	sort.Strings(files)
	s.execFiles(ctx, files)
}

func (s *PostgresSuite) execFiles(ctx context.Context, files []string) {
	for _, f := range files {
		b, err := os.ReadFile(f)
		s.Require().NoError(err)
		_, err = s.pool.Exec(ctx, string(b))
		s.Require().NoError(err, f)
	}
}

func (s *PostgresSuite) TestSaveSnapshotIsIdempotent() {
	ctx := context.Background()
	repo := newPgxExchangeRateRepository(s.pool)
	snap := domain.ScrapedSnapshot{
		ValidAt:   time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		USD:       decimal.RequireFromString("330.3751"),
		EUR:       decimal.RequireFromString("391.93812345"),
		FetchedAt: time.Now().UTC().Truncate(time.Second),
	}

	s.Require().NoError(repo.SaveSnapshot(ctx, snap))
	s.Require().NoError(repo.SaveSnapshot(ctx, snap))

	var current, historical int
	s.Require().NoError(s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM exchange_rates`).Scan(&current))
	s.Require().NoError(s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM historical_exchange_rates`).Scan(&historical))
	s.Equal(2, current)
	s.Equal(2, historical)

	latest, err := repo.GetLatest(ctx, domain.USD)
	s.Require().NoError(err)
	s.Require().NotNil(latest)
	s.True(snap.USD.Equal(latest.Rate))

	history, err := repo.GetHistory(ctx, domain.EUR, 30)
	s.Require().NoError(err)
	s.Len(history, 1)
}

func (s *PostgresSuite) TestCustomRateLifecycle() {
	ctx := context.Background()
	repo := newPgxCustomRateRepository(s.pool)
	now := time.Now().UTC()

	mk := func(user, label string) domain.UserCustomRate {
		return domain.UserCustomRate{
			ID: uuid.NewString(), UserID: user, Label: label,
			Rate:       decimal.RequireFromString("1.5"),
			Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
		}
	}

	a := mk("alice", "USDT")
	s.Require().NoError(repo.CreateCustomRate(ctx, a, 2))
	s.ErrorIs(repo.CreateCustomRate(ctx, mk("alice", "USDT"), 2), apperrors.ErrDuplicate)
	s.NoError(repo.CreateCustomRate(ctx, mk("bob", "USDT"), 2))
	s.NoError(repo.CreateCustomRate(ctx, mk("alice", "PARALELO"), 2))
	s.ErrorIs(repo.CreateCustomRate(ctx, mk("alice", "ZELLE"), 2), apperrors.ErrForbidden)

	list, err := repo.ListCustomRates(ctx, "alice")
	s.Require().NoError(err)
	labels := make([]string, len(list))
	for i, r := range list {
		labels[i] = r.Label
	}
	s.Equal("PARALELO,USDT", strings.Join(labels, ","))

	s.ErrorIs(repo.DeleteCustomRate(ctx, "bob", a.ID), apperrors.ErrNotFound)
	s.NoError(repo.DeleteCustomRate(ctx, "alice", a.ID))
	_, err = repo.FindCustomRate(ctx, "alice", a.ID)
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
}
