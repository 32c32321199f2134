package validation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateWalletAddress(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		wantErr bool
	}{
		{name: "valid lowercase", addr: "0xabcdef0123456789abcdef0123456789abcdef01"},
		{name: "valid mixed case", addr: "0xAbCdEf0123456789ABCDEF0123456789abcdef01"},
		{name: "empty", addr: "", wantErr: true},
		{name: "missing prefix", addr: "abcdef0123456789abcdef0123456789abcdef01", wantErr: true},
		{name: "too short", addr: "0xabcdef", wantErr: true},
		{name: "too long", addr: "0xabcdef0123456789abcdef0123456789abcdef0123", wantErr: true},
		{name: "non-hex characters", addr: "0xzzcdef0123456789abcdef0123456789abcdef01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWalletAddress(tt.addr)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidWalletAddress)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		wantErr bool
	}{
		{name: "positive", amount: 10.5},
		{name: "small positive", amount: 0.01},
		{name: "zero", amount: 0, wantErr: true},
		{name: "negative", amount: -1, wantErr: true},
		{name: "nan", amount: math.NaN(), wantErr: true},
		{name: "positive infinity", amount: math.Inf(1), wantErr: true},
		{name: "negative infinity", amount: math.Inf(-1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(tt.amount)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
