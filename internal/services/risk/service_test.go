package risk

import (
	"context"
	"errors"
	"testing"

	"credline/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWallet = "0x1111111111111111111111111111111111111111"

type fakeEvaluator struct {
	assessment *models.RiskAssessment
	err        error
}

func (f *fakeEvaluator) Evaluate(_ context.Context, _ string) (*models.RiskAssessment, error) {
	return f.assessment, f.err
}

func TestHeuristicEvaluatorIsDeterministic(t *testing.T) {
	e := NewHeuristicEvaluator()

	first, err := e.Evaluate(context.Background(), testWallet)
	require.NoError(t, err)
	second, err := e.Evaluate(context.Background(), testWallet)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, testWallet, first.WalletAddress)
	assert.GreaterOrEqual(t, first.RiskScore, 0.0)
	assert.LessOrEqual(t, first.RiskScore, 1.0)
	assert.Greater(t, first.CreditLimit, 0.0)
	assert.GreaterOrEqual(t, first.InterestRateBps, baseInterestRateBps)
}

func TestEvaluateWallet(t *testing.T) {
	tests := []struct {
		name      string
		evaluator Evaluator
		wantErr   bool
	}{
		{
			name: "valid assessment passes through",
			evaluator: &fakeEvaluator{assessment: &models.RiskAssessment{
				WalletAddress: testWallet, RiskScore: 0.5, CreditLimit: 1000, InterestRateBps: 800,
			}},
		},
		{
			name:      "evaluator error",
			evaluator: &fakeEvaluator{err: errors.New("engine down")},
			wantErr:   true,
		},
		{
			name:      "nil assessment",
			evaluator: &fakeEvaluator{},
			wantErr:   true,
		},
		{
			name: "score out of range",
			evaluator: &fakeEvaluator{assessment: &models.RiskAssessment{
				WalletAddress: testWallet, RiskScore: 1.5, CreditLimit: 1000,
			}},
			wantErr: true,
		},
		{
			name: "negative credit limit",
			evaluator: &fakeEvaluator{assessment: &models.RiskAssessment{
				WalletAddress: testWallet, RiskScore: 0.5, CreditLimit: -1,
			}},
			wantErr: true,
		},
		{
			name: "negative interest rate",
			evaluator: &fakeEvaluator{assessment: &models.RiskAssessment{
				WalletAddress: testWallet, RiskScore: 0.5, CreditLimit: 100, InterestRateBps: -10,
			}},
			wantErr: true,
		},
		{
			name: "wallet mismatch",
			evaluator: &fakeEvaluator{assessment: &models.RiskAssessment{
				WalletAddress: "0x2222222222222222222222222222222222222222", RiskScore: 0.5, CreditLimit: 100,
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.evaluator)
			assessment, err := svc.EvaluateWallet(context.Background(), testWallet)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrEvaluationFailed)
				assert.Nil(t, assessment)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testWallet, assessment.WalletAddress)
		})
	}
}

func TestEvaluationErrorKeepsCause(t *testing.T) {
	cause := errors.New("engine down")
	svc := NewService(&fakeEvaluator{err: cause})

	_, err := svc.EvaluateWallet(context.Background(), testWallet)
	assert.ErrorIs(t, err, ErrEvaluationFailed)
	assert.ErrorIs(t, err, cause)
}

func TestNewServiceDefaultsToHeuristic(t *testing.T) {
	svc := NewService(nil)

	assessment, err := svc.EvaluateWallet(context.Background(), testWallet)
	require.NoError(t, err)
	assert.Equal(t, testWallet, assessment.WalletAddress)
}
