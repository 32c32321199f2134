package risk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"time"

	"credline/internal/models"
)

// Credit limit tiers assigned by the heuristic evaluator.
const (
	lowRiskThreshold  = 0.3
	highRiskThreshold = 0.8

	lowRiskLimit  = 50000.0
	midRiskLimit  = 10000.0
	highRiskLimit = 1000.0

	baseInterestRateBps = 500
)

// HeuristicEvaluator scores wallets deterministically from the address bytes.
// It stands in when no external risk engine is configured, so the same wallet
// always receives the same assessment.
type HeuristicEvaluator struct{}

func NewHeuristicEvaluator() *HeuristicEvaluator {
	return &HeuristicEvaluator{}
}

func (e *HeuristicEvaluator) Evaluate(_ context.Context, walletAddress string) (*models.RiskAssessment, error) {
	h := fnv.New32a()
	if _, err := h.Write([]byte(walletAddress)); err != nil {
		return nil, err
	}
	score := float64(h.Sum32()%1000) / 999.0

	limit := midRiskLimit
	switch {
	case score < lowRiskThreshold:
		limit = lowRiskLimit
	case score >= highRiskThreshold:
		limit = highRiskLimit
	}

	return &models.RiskAssessment{
		WalletAddress:   walletAddress,
		RiskScore:       score,
		CreditLimit:     limit,
		InterestRateBps: baseInterestRateBps + int(score*2000),
	}, nil
}

// HTTPEvaluator calls an external risk engine over HTTP.
type HTTPEvaluator struct {
	url    string
	client *http.Client
}

func NewHTTPEvaluator(url string, timeout time.Duration) *HTTPEvaluator {
	return &HTTPEvaluator{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (e *HTTPEvaluator) Evaluate(ctx context.Context, walletAddress string) (*models.RiskAssessment, error) {
	body, err := json.Marshal(map[string]string{"wallet_address": walletAddress})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("risk engine unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("risk engine returned status %d", resp.StatusCode)
	}

	var assessment models.RiskAssessment
	if err := json.NewDecoder(resp.Body).Decode(&assessment); err != nil {
		return nil, fmt.Errorf("failed to decode risk engine response: %w", err)
	}
	return &assessment, nil
}
