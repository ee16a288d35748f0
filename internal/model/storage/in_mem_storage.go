package storage

import (
	"context"

	"max.ks1230/budget-app/internal/entity/expense"
)

type InMemStorage struct {
	credentials map[string]string
	ledgers     map[string][]expense.Record
}

func NewInMemStorage() *InMemStorage {
	return &InMemStorage{
		credentials: make(map[string]string),
		ledgers:     make(map[string][]expense.Record),
	}
}

func (s *InMemStorage) Credentials(_ context.Context) (map[string]string, error) {
	creds := make(map[string]string, len(s.credentials))
	for name, hash := range s.credentials {
		creds[name] = hash
	}
	return creds, nil
}

func (s *InMemStorage) SaveCredentials(_ context.Context, creds map[string]string) error {
	replaced := make(map[string]string, len(creds))
	for name, hash := range creds {
		replaced[name] = hash
	}
	s.credentials = replaced
	return nil
}

func (s *InMemStorage) UserExpenses(_ context.Context, username string) ([]expense.Record, error) {
	return append([]expense.Record{}, s.ledgers[username]...), nil
}

func (s *InMemStorage) SaveUserExpenses(_ context.Context, username string, records []expense.Record) error {
	s.ledgers[username] = append([]expense.Record{}, records...)
	return nil
}
