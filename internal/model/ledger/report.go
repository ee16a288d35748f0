package ledger

import (
	"fmt"
	"time"

	"github.com/jinzhu/now"
	"github.com/pkg/errors"

	"max.ks1230/budget-app/internal/entity/expense"
)

// TotalsByCategory sums record amounts grouped by category. A non-empty
// period restricts the sum to records stamped in the current week, month
// or year.
func (m *Manager) TotalsByCategory(l *Ledger, period string) (map[string]float64, error) {
	start, ok := periodStart(period)
	if !ok {
		return nil, errors.Wrap(
			fmt.Errorf("report period %s is not supported", period),
			"totals by category",
		)
	}

	totals := make(map[string]float64)
	for _, r := range filterRecordsAfter(l.records, start) {
		totals[r.Category] += r.Amount
	}
	return totals, nil
}

func periodStart(period string) (time.Time, bool) {
	switch period {
	case "":
		return time.Time{}, true
	case "week":
		return now.BeginningOfWeek(), true
	case "month":
		return now.BeginningOfMonth(), true
	case "year":
		return now.BeginningOfYear(), true
	}
	return time.Time{}, false
}

// ReportPeriods lists the period filters accepted by TotalsByCategory.
func ReportPeriods() []string {
	return []string{"week", "month", "year"}
}

func filterRecordsAfter(records []expense.Record, after time.Time) []expense.Record {
	if after.IsZero() {
		return records
	}
	res := make([]expense.Record, 0, len(records))
	for _, r := range records {
		stamp, err := time.ParseInLocation(expense.DateLayout, r.Date, time.Local)
		if err != nil {
			// date strings are app-written; keep anything we cannot read back
			res = append(res, r)
			continue
		}
		if after.Before(stamp) {
			res = append(res, r)
		}
	}
	return res
}
