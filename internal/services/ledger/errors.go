package ledger

import "errors"

// Service errors
var (
	ErrCreditLineNotFound = errors.New("credit line not found")
	ErrInvalidFilter      = errors.New("invalid transaction filter")
	ErrInvalidPagination  = errors.New("invalid pagination parameters")
)
