package ledger

import "credline/internal/models"

// Filter narrows a transaction history query. From and To are RFC 3339
// timestamps as received on the wire; the empty string means unbounded. An
// inverted range (From after To) is not an error, it simply matches nothing.
type Filter struct {
	Type string
	From string
	To   string
}

// Page is the requested page of results. Page starts at 1; Limit is capped
// at MaxPageLimit.
type Page struct {
	Page  int
	Limit int
}

// QueryResult is one page of a credit line's transaction history, most
// recent first.
type QueryResult struct {
	Items      []models.Transaction `json:"items"`
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
}
