package ledger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"max.ks1230/budget-app/internal/entity/expense"
	"max.ks1230/budget-app/internal/model/customerr"
	"max.ks1230/budget-app/internal/model/storage"
)

type clockStub struct {
	now time.Time
}

func (c *clockStub) Now() time.Time {
	return c.now
}

type confirmerStub struct {
	answer bool
	asked  []string
}

func (c *confirmerStub) Confirm(message string) bool {
	c.asked = append(c.asked, message)
	return c.answer
}

type failingStorage struct{}

func (failingStorage) UserExpenses(context.Context, string) ([]expense.Record, error) {
	return nil, fmt.Errorf("boom")
}

func (failingStorage) SaveUserExpenses(context.Context, string, []expense.Record) error {
	return nil
}

func newTestManager(confirm bool) (*Manager, *storage.InMemStorage) {
	store := storage.NewInMemStorage()
	clock := &clockStub{now: time.Date(2024, 11, 7, 14, 30, 0, 0, time.Local)}
	return NewManager(store, clock, &confirmerStub{answer: confirm}), store
}

func Test_OnAdd_ShouldAppendStampAndPersist(t *testing.T) {
	ctx := context.Background()
	manager, _ := newTestManager(true)
	ledger := manager.Load(ctx, "ALICE")

	record, err := manager.Add(ctx, ledger, " food ", "12.50")

	assert.NoError(t, err)
	assert.Equal(t, int64(1), record.ID)
	assert.Equal(t, "FOOD", record.Category)
	assert.Equal(t, 12.50, record.Amount)
	assert.Equal(t, "2024-11-07 at 02:30 PM", record.Date)

	reloaded := manager.Load(ctx, "ALICE")
	assert.Equal(t, ledger.Records(), reloaded.Records())
}

func Test_OnAdd_ShouldGrowLedgerOncePerCall(t *testing.T) {
	ctx := context.Background()
	manager, _ := newTestManager(true)
	ledger := manager.Load(ctx, "ALICE")

	for i := 0; i < 5; i++ {
		_, err := manager.Add(ctx, ledger, "misc", "1.00")
		assert.NoError(t, err)
	}

	assert.Equal(t, 5, ledger.Len())
	for _, r := range ledger.Records() {
		assert.Greater(t, r.ID, int64(0))
	}
}

func Test_OnAdd_WithNonNumericAmount_ShouldLeaveLedgerUnchanged(t *testing.T) {
	ctx := context.Background()
	manager, _ := newTestManager(true)
	ledger := manager.Load(ctx, "ALICE")

	_, err := manager.Add(ctx, ledger, "food", "abc")

	var invalid *customerr.InvalidAmountError
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, 0, ledger.Len())
	assert.Equal(t, 0, manager.Load(ctx, "ALICE").Len())
}

func Test_OnDelete_ShouldBeIdempotent(t *testing.T) {
	ctx := context.Background()
	manager, _ := newTestManager(true)
	ledger := manager.Load(ctx, "ALICE")

	_, err := manager.Add(ctx, ledger, "food", "10")
	assert.NoError(t, err)
	_, err = manager.Add(ctx, ledger, "rent", "20")
	assert.NoError(t, err)

	assert.NoError(t, manager.Delete(ctx, ledger, 1))
	assert.Equal(t, 1, ledger.Len())

	assert.NoError(t, manager.Delete(ctx, ledger, 1))
	assert.Equal(t, 1, ledger.Len())
	assert.Equal(t, "RENT", ledger.Records()[0].Category)
}

// Ids come from a counter seeded with max(id)+1 at load, not from the
// record count, so an add after a deletion can never collide with a
// surviving record.
func Test_OnAddAfterDelete_ShouldNotReuseLiveIds(t *testing.T) {
	ctx := context.Background()
	manager, _ := newTestManager(true)
	ledger := manager.Load(ctx, "ALICE")

	for i := 0; i < 3; i++ {
		_, err := manager.Add(ctx, ledger, "misc", "1")
		assert.NoError(t, err)
	}
	assert.NoError(t, manager.Delete(ctx, ledger, 2))

	record, err := manager.Add(ctx, ledger, "misc", "1")
	assert.NoError(t, err)
	assert.Equal(t, int64(4), record.ID)

	seen := make(map[int64]bool)
	for _, r := range ledger.Records() {
		assert.False(t, seen[r.ID])
		seen[r.ID] = true
	}
}

func Test_OnLoad_AfterDeletingHighestId_ShouldReseedCounter(t *testing.T) {
	ctx := context.Background()
	manager, _ := newTestManager(true)
	ledger := manager.Load(ctx, "ALICE")

	_, err := manager.Add(ctx, ledger, "a", "1")
	assert.NoError(t, err)
	_, err = manager.Add(ctx, ledger, "b", "2")
	assert.NoError(t, err)
	assert.NoError(t, manager.Delete(ctx, ledger, 2))

	reloaded := manager.Load(ctx, "ALICE")
	record, err := manager.Add(ctx, reloaded, "c", "3")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), record.ID)
}

func Test_OnClear_Declined_ShouldKeepLedgerUntouched(t *testing.T) {
	ctx := context.Background()
	manager, _ := newTestManager(false)
	ledger := manager.Load(ctx, "ALICE")

	_, err := manager.Add(ctx, ledger, "food", "10")
	assert.NoError(t, err)

	cleared, err := manager.Clear(ctx, ledger)
	assert.NoError(t, err)
	assert.False(t, cleared)
	assert.Equal(t, 1, ledger.Len())
	assert.Equal(t, 1, manager.Load(ctx, "ALICE").Len())
}

func Test_OnClear_Accepted_ShouldPersistEmptyLedger(t *testing.T) {
	ctx := context.Background()
	manager, _ := newTestManager(true)
	ledger := manager.Load(ctx, "ALICE")

	_, err := manager.Add(ctx, ledger, "food", "10")
	assert.NoError(t, err)

	cleared, err := manager.Clear(ctx, ledger)
	assert.NoError(t, err)
	assert.True(t, cleared)
	assert.Equal(t, 0, ledger.Len())
	assert.Equal(t, 0, manager.Load(ctx, "ALICE").Len())
}

func Test_OnLoad_WithFailingStorage_ShouldStartEmpty(t *testing.T) {
	manager := NewManager(failingStorage{}, &clockStub{now: time.Now()}, &confirmerStub{})

	ledger := manager.Load(context.Background(), "ALICE")

	assert.Equal(t, 0, ledger.Len())
	assert.Equal(t, "ALICE", ledger.Username())
}

func Test_OnTotalsByCategory_ShouldSumPerCategory(t *testing.T) {
	ctx := context.Background()
	manager, _ := newTestManager(true)
	ledger := manager.Load(ctx, "ALICE")

	_, err := manager.Add(ctx, ledger, "food", "12.50")
	assert.NoError(t, err)
	_, err = manager.Add(ctx, ledger, "food", "7.50")
	assert.NoError(t, err)

	totals, err := manager.TotalsByCategory(ledger, "")
	assert.NoError(t, err)
	assert.Equal(t, map[string]float64{"FOOD": 20.00}, totals)
}

func Test_OnTotalsByCategory_ShouldCoverWholeLedger(t *testing.T) {
	ctx := context.Background()
	manager, _ := newTestManager(true)
	ledger := manager.Load(ctx, "ALICE")

	amounts := map[string]string{"food": "12.5", "rent": "100", "fun": "7.5"}
	whole := 0.0
	for category, amount := range amounts {
		record, err := manager.Add(ctx, ledger, category, amount)
		assert.NoError(t, err)
		whole += record.Amount
	}

	totals, err := manager.TotalsByCategory(ledger, "")
	assert.NoError(t, err)

	sum := 0.0
	for _, amount := range totals {
		sum += amount
	}
	assert.Equal(t, whole, sum)
}

func Test_OnTotalsByCategory_WithUnknownPeriod_ShouldError(t *testing.T) {
	manager, _ := newTestManager(true)
	ledger := manager.Load(context.Background(), "ALICE")

	_, err := manager.TotalsByCategory(ledger, "decade")
	assert.Error(t, err)
}

func Test_OnTotalsByCategory_WithYearPeriod_ShouldSkipOldRecords(t *testing.T) {
	ctx := context.Background()
	store := storage.NewInMemStorage()
	clock := &clockStub{now: time.Now().AddDate(-2, 0, 0)}
	manager := NewManager(store, clock, &confirmerStub{answer: true})

	ledger := manager.Load(ctx, "ALICE")
	_, err := manager.Add(ctx, ledger, "old", "5")
	assert.NoError(t, err)

	clock.now = time.Now()
	_, err = manager.Add(ctx, ledger, "fresh", "7")
	assert.NoError(t, err)

	totals, err := manager.TotalsByCategory(ledger, "year")
	assert.NoError(t, err)
	assert.Equal(t, map[string]float64{"FRESH": 7}, totals)
}
