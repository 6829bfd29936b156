// Package store reads user profiles and the opportunity catalog from
// Postgres and persists ranked recommendations back to it.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mitchellh/mapstructure"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/lanewaylabs/bizmatch/internal/recommend"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = eris.New("store: not found")

// Querier is the subset of pgxpool.Pool the store needs. Tests substitute a
// pgxmock pool.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `mapstructure:"max-conns"`
	MinConns int32 `mapstructure:"min-conns"`
}

// Postgres implements catalog and profile access on a pgx pool.
type Postgres struct {
	db      Querier
	logger  *zap.Logger
	closeFn func()
}

// NewPostgres connects a pool to the given database and pings it.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig, logger *zap.Logger) (*Postgres, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Postgres{db: pool, logger: logger, closeFn: pool.Close}, nil
}

// NewWithQuerier wraps an existing querier, used by tests.
func NewWithQuerier(db Querier, logger *zap.Logger) *Postgres {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Postgres{db: db, logger: logger}
}

// Close releases the underlying pool.
func (s *Postgres) Close() {
	if s.closeFn != nil {
		s.closeFn()
	}
}

const migration = `
CREATE TABLE IF NOT EXISTS users (
	id             TEXT PRIMARY KEY,
	quiz_responses JSONB NOT NULL DEFAULT '{}'::jsonb,
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS blueprints (
	id                       TEXT PRIMARY KEY,
	title                    TEXT NOT NULL,
	description              TEXT NOT NULL DEFAULT '',
	startup_cost             TEXT NOT NULL DEFAULT '',
	estimated_monthly_profit TEXT NOT NULL DEFAULT '',
	skill_level              TEXT NOT NULL DEFAULT '',
	industry                 TEXT[] NOT NULL DEFAULT '{}',
	thumbnail_url            TEXT NOT NULL DEFAULT '',
	video_link               TEXT NOT NULL DEFAULT '',
	summary                  TEXT NOT NULL DEFAULT '',
	published                BOOLEAN NOT NULL DEFAULT false,
	created_at               TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS recommendations_cache (
	id              TEXT NOT NULL,
	user_id         TEXT PRIMARY KEY,
	recommendations JSONB NOT NULL,
	total_analyzed  INTEGER NOT NULL DEFAULT 0,
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Migrate creates the schema when it does not exist yet.
func (s *Postgres) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, migration); err != nil {
		return eris.Wrap(err, "postgres: migrate")
	}
	return nil
}

const getUserProfileSQL = `SELECT quiz_responses FROM users WHERE id = $1`

// GetUserProfile loads and decodes one user's quiz answers. Missing or
// unexpected keys in the stored JSON degrade to zero values; the scoring
// engine treats those as documented neutral defaults.
func (s *Postgres) GetUserProfile(ctx context.Context, userID string) (*recommend.UserProfile, error) {
	var raw map[string]any
	err := s.db.QueryRow(ctx, getUserProfileSQL, userID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get user profile %s", userID)
	}

	profile, err := decodeProfile(raw)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: decode quiz responses for %s", userID)
	}
	return profile, nil
}

func decodeProfile(raw map[string]any) (*recommend.UserProfile, error) {
	var profile recommend.UserProfile
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &profile,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, err
	}
	return &profile, nil
}

const listOpportunitiesSQL = `
SELECT id, title, description, startup_cost, estimated_monthly_profit,
       skill_level, industry, thumbnail_url, video_link, summary
FROM blueprints
WHERE published = true
ORDER BY created_at, id`

// ListPublishedOpportunities returns the catalog in its stable storage
// order. That order is what ties fall back to during ranking.
func (s *Postgres) ListPublishedOpportunities(ctx context.Context) ([]recommend.Opportunity, error) {
	rows, err := s.db.Query(ctx, listOpportunitiesSQL)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list opportunities")
	}
	defer rows.Close()

	var catalog []recommend.Opportunity
	for rows.Next() {
		var opp recommend.Opportunity
		if err := rows.Scan(
			&opp.ID, &opp.Title, &opp.Description, &opp.StartupCost,
			&opp.EstimatedMonthlyProfit, &opp.SkillLevel, &opp.Industries,
			&opp.ThumbnailURL, &opp.VideoLink, &opp.Summary,
		); err != nil {
			return nil, eris.Wrap(err, "postgres: scan opportunity")
		}
		catalog = append(catalog, opp)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate opportunities")
	}

	return catalog, nil
}

const saveUserProfileSQL = `
INSERT INTO users (id, quiz_responses, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (id) DO UPDATE SET quiz_responses = EXCLUDED.quiz_responses, updated_at = now()`

// SaveUserProfile upserts a user's quiz answers, generating an id when none
// is supplied. The stored id is returned.
func (s *Postgres) SaveUserProfile(ctx context.Context, userID string, profile *recommend.UserProfile) (string, error) {
	if userID == "" {
		userID = uuid.NewString()
	}

	payload, err := json.Marshal(profile)
	if err != nil {
		return "", eris.Wrap(err, "postgres: marshal quiz responses")
	}

	if _, err := s.db.Exec(ctx, saveUserProfileSQL, userID, payload); err != nil {
		return "", eris.Wrapf(err, "postgres: save user profile %s", userID)
	}

	s.logger.Info("saved user profile", zap.String("user_id", userID))
	return userID, nil
}

const saveRecommendationsSQL = `
INSERT INTO recommendations_cache (id, user_id, recommendations, total_analyzed, updated_at)
VALUES ($1, $2, $3, $4, now())
ON CONFLICT (user_id) DO UPDATE
SET id = EXCLUDED.id,
    recommendations = EXCLUDED.recommendations,
    total_analyzed = EXCLUDED.total_analyzed,
    updated_at = now()`

// SaveRecommendations upserts the latest ranking result for a user. Callers
// treat failures as non-critical and only log them.
func (s *Postgres) SaveRecommendations(ctx context.Context, userID string, result *recommend.Result) error {
	payload, err := json.Marshal(result.Recommendations)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal recommendations")
	}

	if _, err := s.db.Exec(ctx, saveRecommendationsSQL, uuid.NewString(), userID, payload, result.TotalAnalyzed); err != nil {
		return eris.Wrapf(err, "postgres: cache recommendations for %s", userID)
	}

	return nil
}
