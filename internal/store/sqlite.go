package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/resolve-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL
// mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS searches (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	query      TEXT NOT NULL,
	result     TEXT,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_searches_name ON searches(name);
CREATE INDEX IF NOT EXISTS idx_searches_created_at ON searches(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveSearch(ctx context.Context, rec *model.SearchRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	queryJSON, err := json.Marshal(rec.Query)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal query")
	}
	var resultJSON []byte
	if rec.Result != nil {
		resultJSON, err = json.Marshal(rec.Result)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal result")
		}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO searches (id, name, query, result, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.Query.Name, string(queryJSON), nullableString(resultJSON), rec.CreatedAt,
	)
	return eris.Wrap(err, "sqlite: insert search")
}

func (s *SQLiteStore) GetSearch(ctx context.Context, id string) (*model.SearchRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, query, result, created_at FROM searches WHERE id = ?`, id)

	rec, err := scanSearch(row.Scan)
	if err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, eris.Errorf("sqlite: search %s not found", id)
		}
		return nil, eris.Wrapf(err, "sqlite: get search %s", id)
	}
	return rec, nil
}

func (s *SQLiteStore) ListSearches(ctx context.Context, filter Filter) ([]model.SearchRecord, error) {
	query := `SELECT id, query, result, created_at FROM searches`
	var args []any
	if filter.Name != "" {
		query += ` WHERE name = ?`
		args = append(args, filter.Name)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += ` LIMIT ?`
	args = append(args, limit)
	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list searches")
	}
	defer rows.Close() //nolint:errcheck

	var out []model.SearchRecord
	for rows.Next() {
		rec, err := scanSearch(rows.Scan)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan search")
		}
		out = append(out, *rec)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate searches")
}

func scanSearch(scan func(dest ...any) error) (*model.SearchRecord, error) {
	var (
		rec        model.SearchRecord
		queryJSON  string
		resultJSON sql.NullString
	)
	if err := scan(&rec.ID, &queryJSON, &resultJSON, &rec.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(queryJSON), &rec.Query); err != nil {
		return nil, eris.Wrap(err, "unmarshal query")
	}
	if resultJSON.Valid && resultJSON.String != "" {
		rec.Result = &model.SearchResult{}
		if err := json.Unmarshal([]byte(resultJSON.String), rec.Result); err != nil {
			return nil, eris.Wrap(err, "unmarshal result")
		}
	}
	return &rec, nil
}

func nullableString(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
