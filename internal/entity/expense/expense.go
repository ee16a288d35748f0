package expense

// DateLayout is the human-readable stamp given to a record at creation.
// It is stored as text and never recomputed.
const DateLayout = "2006-01-02 at 03:04 PM"

// Record is one expense entry as persisted in a user's ledger file.
type Record struct {
	ID       int64   `json:"id"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"`
}
