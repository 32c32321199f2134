package creditline

import "errors"

// Service errors
var (
	ErrCreditLineNotFound   = errors.New("credit line not found")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrInvalidStatus        = errors.New("operation not permitted in current status")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrUnauthorizedBorrower = errors.New("borrower is not authorized on this credit line")
	ErrOverLimit            = errors.New("draw would exceed credit limit")
	ErrInvalidWalletAddress = errors.New("invalid wallet address")
	ErrOperationFailed      = errors.New("credit line operation failed")
)
