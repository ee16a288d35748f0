package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"max.ks1230/budget-app/internal/entity/expense"
	"max.ks1230/budget-app/internal/logger"
)

const (
	credentialsFile = "users.json"
	expensesDir     = "user_expenses"

	credentialsPerm = 0o600
	ledgerPerm      = 0o644
)

type dirConfig interface {
	DataDir() string
}

// FileStorage keeps one JSON credentials file and one JSON ledger file
// per username under the data directory.
type FileStorage struct {
	dir string
}

func NewFileStorage(config dirConfig) (*FileStorage, error) {
	dir := config.DataDir()
	if err := os.MkdirAll(filepath.Join(dir, expensesDir), 0o755); err != nil {
		return nil, errors.Wrap(err, "create data directory")
	}
	return &FileStorage{dir: dir}, nil
}

func (s *FileStorage) credentialsPath() string {
	return filepath.Join(s.dir, credentialsFile)
}

func (s *FileStorage) ledgerPath(username string) string {
	return filepath.Join(s.dir, expensesDir, username+".json")
}

func (s *FileStorage) Credentials(_ context.Context) (map[string]string, error) {
	raw, err := os.ReadFile(s.credentialsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, errors.Wrap(err, "read credentials")
	}

	creds := make(map[string]string)
	if err = json.Unmarshal(raw, &creds); err != nil {
		return nil, errors.Wrap(err, "parse credentials")
	}
	return creds, nil
}

func (s *FileStorage) SaveCredentials(_ context.Context, creds map[string]string) error {
	raw, err := json.Marshal(creds)
	if err != nil {
		return errors.Wrap(err, "encode credentials")
	}
	return errors.Wrap(os.WriteFile(s.credentialsPath(), raw, credentialsPerm), "write credentials")
}

// UserExpenses reads the user's ledger file. A missing or unparsable file
// resolves to an empty ledger: first use and corruption both start empty.
func (s *FileStorage) UserExpenses(_ context.Context, username string) ([]expense.Record, error) {
	raw, err := os.ReadFile(s.ledgerPath(username))
	if err != nil {
		return []expense.Record{}, nil
	}

	var records []expense.Record
	if err = json.Unmarshal(raw, &records); err != nil {
		logger.Warn("unparsable ledger file, starting empty",
			zap.String("user", username), zap.Error(err))
		return []expense.Record{}, nil
	}
	return records, nil
}

func (s *FileStorage) SaveUserExpenses(_ context.Context, username string, records []expense.Record) error {
	if records == nil {
		records = []expense.Record{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return errors.Wrap(err, "encode expenses")
	}
	return errors.Wrap(os.WriteFile(s.ledgerPath(username), raw, ledgerPerm), "write expenses")
}
