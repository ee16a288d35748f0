package storage

import (
	"context"
	"fmt"

	"max.ks1230/budget-app/internal/entity/expense"
)

// Storage persists the credential table and the per-user expense sets.
// Every save is a full rewrite of the addressed record set.
type Storage interface {
	Credentials(ctx context.Context) (map[string]string, error)
	SaveCredentials(ctx context.Context, creds map[string]string) error
	UserExpenses(ctx context.Context, username string) ([]expense.Record, error)
	SaveUserExpenses(ctx context.Context, username string, records []expense.Record) error
}

type driverConfig interface {
	Driver() string
	DataDir() string
	SQLitePath() string
}

func New(config driverConfig) (Storage, error) {
	switch config.Driver() {
	case "file", "":
		return NewFileStorage(config)
	case "memory":
		return NewInMemStorage(), nil
	case "sqlite":
		return NewSQLiteStorage(config)
	}
	return nil, fmt.Errorf("unknown storage driver %q", config.Driver())
}
