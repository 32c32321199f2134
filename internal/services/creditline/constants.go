package creditline

import "time"

// Default configuration values
const (
	DefaultMaxCreditLimit = 1_000_000.0
	DefaultTimeout        = 30 * time.Second
)

// amountEpsilon absorbs float64 rounding when comparing monetary values.
const amountEpsilon = 1e-9
