package storage

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	// sqlite driver
	_ "modernc.org/sqlite"

	"max.ks1230/budget-app/internal/entity/expense"
	"max.ks1230/budget-app/internal/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	username      TEXT PRIMARY KEY,
	password_hash TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS expenses (
	id       INTEGER,
	username TEXT,
	category TEXT,
	amount   REAL,
	date     TEXT
);
CREATE INDEX IF NOT EXISTS expenses_username ON expenses (username);
`

type sqliteConfig interface {
	SQLitePath() string
}

type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(config sqliteConfig) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", config.SQLitePath())
	if err != nil {
		return nil, errors.Wrap(err, "cannot open database")
	}
	if err = db.Ping(); err != nil {
		return nil, errors.Wrap(err, "cannot open database")
	}
	if _, err = db.Exec(schema); err != nil {
		return nil, errors.Wrap(err, "create schema")
	}
	return &SQLiteStorage{db}, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) Credentials(ctx context.Context) (map[string]string, error) {
	query := sq.Select("username", "password_hash").From("users")

	rows, err := query.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "get credentials")
	}
	defer func() {
		rowErr := rows.Close()
		if rowErr != nil {
			logger.Error("error closing rows", zap.Error(rowErr))
		}
	}()

	creds := make(map[string]string)
	for rows.Next() {
		var name, hash string
		if err = rows.Scan(&name, &hash); err != nil {
			return nil, errors.Wrap(err, "get credentials")
		}
		creds[name] = hash
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "get credentials")
	}
	return creds, nil
}

func (s *SQLiteStorage) SaveCredentials(ctx context.Context, creds map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "save credentials")
	}
	defer rollback(tx)

	if _, err = sq.Delete("users").RunWith(tx).ExecContext(ctx); err != nil {
		return errors.Wrap(err, "save credentials")
	}
	for name, hash := range creds {
		query := sq.Insert("users").
			Columns("username", "password_hash").
			Values(name, hash)
		if _, err = query.RunWith(tx).ExecContext(ctx); err != nil {
			return errors.Wrap(err, "save credentials")
		}
	}
	return errors.Wrap(tx.Commit(), "save credentials")
}

func (s *SQLiteStorage) UserExpenses(ctx context.Context, username string) ([]expense.Record, error) {
	query := sq.Select("id", "category", "amount", "date").
		From("expenses").
		Where(sq.Eq{"username": username})

	rows, err := query.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "get expenses")
	}
	defer func() {
		rowErr := rows.Close()
		if rowErr != nil {
			logger.Error("error closing rows", zap.Error(rowErr))
		}
	}()

	records := make([]expense.Record, 0)
	for rows.Next() {
		var r expense.Record
		if err = rows.Scan(&r.ID, &r.Category, &r.Amount, &r.Date); err != nil {
			return nil, errors.Wrap(err, "get expenses")
		}
		records = append(records, r)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "get expenses")
	}
	return records, nil
}

// SaveUserExpenses rewrites the user's whole record set, matching the
// serialize-and-overwrite semantics of the file backend.
func (s *SQLiteStorage) SaveUserExpenses(ctx context.Context, username string, records []expense.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "save expenses")
	}
	defer rollback(tx)

	del := sq.Delete("expenses").Where(sq.Eq{"username": username})
	if _, err = del.RunWith(tx).ExecContext(ctx); err != nil {
		return errors.Wrap(err, "save expenses")
	}
	for _, r := range records {
		query := sq.Insert("expenses").
			Columns("id", "username", "category", "amount", "date").
			Values(r.ID, username, r.Category, r.Amount, r.Date)
		if _, err = query.RunWith(tx).ExecContext(ctx); err != nil {
			return errors.Wrap(err, "save expenses")
		}
	}
	return errors.Wrap(tx.Commit(), "save expenses")
}

func rollback(tx *sql.Tx) {
	err := tx.Rollback()
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		logger.Error("error when transaction rollback", zap.Error(err))
	}
}
