package models

// RiskAssessment is the result of evaluating a wallet's creditworthiness.
// It is produced by the risk service and never persisted; the relevant fields
// are copied onto the CreditLine when an assessment is applied.
type RiskAssessment struct {
	WalletAddress   string  `json:"wallet_address"`
	RiskScore       float64 `json:"risk_score"`
	CreditLimit     float64 `json:"credit_limit"`
	InterestRateBps int     `json:"interest_rate_bps"`
}
