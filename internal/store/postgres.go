package store

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/resolve-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses, narrowed so tests
// can substitute a mock.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS searches (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL,
	query      JSONB NOT NULL,
	result     JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_searches_name ON searches(name);
CREATE INDEX IF NOT EXISTS idx_searches_created_at ON searches(created_at);
`

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 5
	pgxCfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}

	return &PostgresStore{
		pool:    pool,
		closeFn: pool.Close,
	}, nil
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) SaveSearch(ctx context.Context, rec *model.SearchRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	queryJSON, err := json.Marshal(rec.Query)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal query")
	}
	var resultJSON []byte
	if rec.Result != nil {
		resultJSON, err = json.Marshal(rec.Result)
		if err != nil {
			return eris.Wrap(err, "postgres: marshal result")
		}
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO searches (id, name, query, result, created_at) VALUES ($1, $2, $3, $4, $5)`,
		rec.ID, rec.Query.Name, queryJSON, resultJSON, rec.CreatedAt,
	)
	return eris.Wrap(err, "postgres: insert search")
}

func (s *PostgresStore) GetSearch(ctx context.Context, id string) (*model.SearchRecord, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, query, result, created_at FROM searches WHERE id = $1`, id)

	rec, err := scanPostgresSearch(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, eris.Errorf("postgres: search %s not found", id)
		}
		return nil, eris.Wrapf(err, "postgres: get search %s", id)
	}
	return rec, nil
}

func (s *PostgresStore) ListSearches(ctx context.Context, filter Filter) ([]model.SearchRecord, error) {
	query := `SELECT id, query, result, created_at FROM searches`
	var args []any
	argNum := 1
	if filter.Name != "" {
		query += ` WHERE name = $1`
		args = append(args, filter.Name)
		argNum++
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += ` LIMIT $` + itoa(argNum)
	args = append(args, limit)
	argNum++
	if filter.Offset > 0 {
		query += ` OFFSET $` + itoa(argNum)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list searches")
	}
	defer rows.Close()

	var out []model.SearchRecord
	for rows.Next() {
		rec, err := scanPostgresSearch(rows.Scan)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan search")
		}
		out = append(out, *rec)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate searches")
}

func scanPostgresSearch(scan func(dest ...any) error) (*model.SearchRecord, error) {
	var (
		rec        model.SearchRecord
		queryJSON  []byte
		resultJSON []byte
	)
	if err := scan(&rec.ID, &queryJSON, &resultJSON, &rec.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(queryJSON, &rec.Query); err != nil {
		return nil, eris.Wrap(err, "unmarshal query")
	}
	if len(resultJSON) > 0 {
		rec.Result = &model.SearchResult{}
		if err := json.Unmarshal(resultJSON, rec.Result); err != nil {
			return nil, eris.Wrap(err, "unmarshal result")
		}
	}
	return &rec, nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
