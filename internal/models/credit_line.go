package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Credit line statuses
const (
	CreditLineStatusPending   = "pending"
	CreditLineStatusActive    = "active"
	CreditLineStatusSuspended = "suspended"
	CreditLineStatusClosed    = "closed"
)

// CreditLine represents a revolving credit line tied to a wallet identity.
// CurrentBalance is the amount currently drawn and never exceeds CreditLimit.
type CreditLine struct {
	ID              string    `gorm:"primarykey" json:"id"`
	WalletAddress   string    `gorm:"not null;index" json:"wallet_address"`
	CreditLimit     float64   `gorm:"not null" json:"credit_limit"`
	CurrentBalance  float64   `gorm:"default:0" json:"current_balance"`
	InterestRateBps int       `gorm:"default:0" json:"interest_rate_bps"`
	RiskScore       float64   `gorm:"default:0" json:"risk_score"`
	Status          string    `gorm:"not null;default:'pending'" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (l *CreditLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	// Lines always start with nothing drawn
	l.CurrentBalance = 0
	return nil
}

// creditLineTransitions is the status graph. Closed is terminal and has no
// outgoing edges.
var creditLineTransitions = map[string][]string{
	CreditLineStatusPending:   {CreditLineStatusActive},
	CreditLineStatusActive:    {CreditLineStatusSuspended, CreditLineStatusClosed},
	CreditLineStatusSuspended: {CreditLineStatusActive, CreditLineStatusClosed},
	CreditLineStatusClosed:    {},
}

// CanTransitionTo reports whether the line's status may legally change to next.
func (l *CreditLine) CanTransitionTo(next string) bool {
	for _, allowed := range creditLineTransitions[l.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsClosed reports whether the line is in its terminal state.
func (l *CreditLine) IsClosed() bool {
	return l.Status == CreditLineStatusClosed
}
