package validation

import (
	"errors"
	"fmt"
	"math"
	"regexp"
)

var ErrInvalidWalletAddress = errors.New("invalid wallet address")

// Wallet addresses are 20-byte hex identities with a 0x prefix.
var walletAddressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// ValidateWalletAddress checks that addr is a well-formed wallet address.
func ValidateWalletAddress(addr string) error {
	if addr == "" {
		return fmt.Errorf("%w: address is empty", ErrInvalidWalletAddress)
	}
	if !walletAddressPattern.MatchString(addr) {
		return fmt.Errorf("%w: %q", ErrInvalidWalletAddress, addr)
	}
	return nil
}

// ValidateAmount checks that amount is a positive finite number.
func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return errors.New("amount must be finite")
	}
	if amount <= 0 {
		return errors.New("amount must be positive")
	}
	return nil
}
