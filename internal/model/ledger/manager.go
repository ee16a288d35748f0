package ledger

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"max.ks1230/budget-app/internal/entity/expense"
	"max.ks1230/budget-app/internal/logger"
	"max.ks1230/budget-app/internal/model/customerr"
)

const clearPromptMessage = "Are you sure you want to clear all expense history?"

type recordStorage interface {
	UserExpenses(ctx context.Context, username string) ([]expense.Record, error)
	SaveUserExpenses(ctx context.Context, username string, records []expense.Record) error
}

type clock interface {
	Now() time.Time
}

type confirmer interface {
	Confirm(message string) bool
}

// SystemClock stamps records with wall-clock time.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Ledger is the ordered set of expense records of one user. It is owned
// by the active session and only mutated through the Manager.
type Ledger struct {
	username string
	records  []expense.Record
	nextID   int64
}

func (l *Ledger) Username() string {
	return l.username
}

func (l *Ledger) Records() []expense.Record {
	return l.records
}

func (l *Ledger) Len() int {
	return len(l.records)
}

// Manager mediates every ledger mutation and persists the full record
// set after each one.
type Manager struct {
	storage   recordStorage
	clock     clock
	confirmer confirmer
}

func NewManager(storage recordStorage, clock clock, confirmer confirmer) *Manager {
	return &Manager{
		storage:   storage,
		clock:     clock,
		confirmer: confirmer,
	}
}

// Load reads the user's persisted records. It fails open: a storage
// error resolves to an empty ledger, same as first use.
func (m *Manager) Load(ctx context.Context, username string) *Ledger {
	records, err := m.storage.UserExpenses(ctx, username)
	if err != nil {
		logger.Warn("cannot load expenses, starting empty",
			zap.String("user", username), zap.Error(err))
		records = nil
	}
	return &Ledger{
		username: username,
		records:  records,
		nextID:   maxID(records) + 1,
	}
}

// Add validates and appends a new record, then persists the ledger.
// Ids are assigned from a counter seeded at load with max(id)+1, so an
// id never collides with a live record after deletions.
func (m *Manager) Add(ctx context.Context, l *Ledger, category, amount string) (expense.Record, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil {
		return expense.Record{}, &customerr.InvalidAmountError{Input: amount}
	}

	record := expense.Record{
		ID:       l.nextID,
		Category: strings.ToUpper(strings.TrimSpace(category)),
		Amount:   value,
		Date:     m.clock.Now().Format(expense.DateLayout),
	}

	l.records = append(l.records, record)
	if err = m.Persist(ctx, l); err != nil {
		l.records = l.records[:len(l.records)-1]
		return expense.Record{}, errors.Wrap(err, "add expense")
	}
	l.nextID++
	return record, nil
}

// Delete removes the record with the given id and persists. Deleting an
// absent id is a no-op that still rewrites the unchanged set.
func (m *Manager) Delete(ctx context.Context, l *Ledger, id int64) error {
	kept := make([]expense.Record, 0, len(l.records))
	for _, r := range l.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}

	previous := l.records
	l.records = kept
	if err := m.Persist(ctx, l); err != nil {
		l.records = previous
		return errors.Wrap(err, "delete expense")
	}
	return nil
}

// Clear empties the ledger after an explicit confirmation. It reports
// whether the ledger was actually cleared; declining changes nothing.
func (m *Manager) Clear(ctx context.Context, l *Ledger) (bool, error) {
	if !m.confirmer.Confirm(clearPromptMessage) {
		return false, nil
	}

	previous := l.records
	l.records = []expense.Record{}
	if err := m.Persist(ctx, l); err != nil {
		l.records = previous
		return false, errors.Wrap(err, "clear expenses")
	}
	return true, nil
}

// Persist rewrites the user's whole record set.
func (m *Manager) Persist(ctx context.Context, l *Ledger) error {
	return errors.Wrap(
		m.storage.SaveUserExpenses(ctx, l.username, l.records),
		"persist ledger",
	)
}

func maxID(records []expense.Record) int64 {
	var max int64
	for _, r := range records {
		if r.ID > max {
			max = r.ID
		}
	}
	return max
}
