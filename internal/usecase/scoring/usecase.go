// Package scoring exposes the three models as standalone predictions with
// localized explanations, independent of any stored application.
package scoring

import (
	"context"

	"agrifin-backend/internal/explain"
	"agrifin-backend/internal/ml"

	"github.com/shopspring/decimal"
)

type EligibilityResult struct {
	Approved    bool   `json:"approved"`
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

type RiskResult struct {
	Score          float64 `json:"risk_score"`
	Interpretation string  `json:"interpretation"`
	Description    string  `json:"description"`
	ScoreMeaning   string  `json:"score_meaning"`
}

type AmountResult struct {
	Amount      decimal.Decimal `json:"recommended_amount"`
	Explanation string          `json:"explanation"`
	Basis       string          `json:"basis"`
}

type Usecase struct {
	scorer ml.Scorer
}

func NewUsecase(scorer ml.Scorer) *Usecase {
	return &Usecase{scorer: scorer}
}

// ScoreEligibility predicts approval for an ad-hoc field bag. Fields the
// caller omits fall back to the model defaults.
func (u *Usecase) ScoreEligibility(ctx context.Context, fields ml.Fields, lang string) (*EligibilityResult, error) {
	approved, err := u.scorer.PredictEligibility(fields)
	if err != nil {
		return nil, err
	}
	return &EligibilityResult{
		Approved:    approved,
		Reason:      explain.EligibilityReason(fields, approved, lang),
		Description: explain.EligibilityDescription(lang),
	}, nil
}

// ScoreRisk predicts the risk score and narrates its band.
func (u *Usecase) ScoreRisk(ctx context.Context, fields ml.Fields, lang string) (*RiskResult, error) {
	score, err := u.scorer.PredictRisk(fields)
	if err != nil {
		return nil, err
	}
	n := explain.RiskScoreDescription(score, lang)
	return &RiskResult{
		Score:          score,
		Interpretation: n.Interpretation,
		Description:    n.Description,
		ScoreMeaning:   n.ScoreMeaning,
	}, nil
}

// ScoreAmount recommends a loan amount and lists the profile factors
// behind it.
func (u *Usecase) ScoreAmount(ctx context.Context, fields ml.Fields, lang string) (*AmountResult, error) {
	amt, err := u.scorer.RecommendAmount(fields)
	if err != nil {
		return nil, err
	}
	n := explain.RecommendAmountExplanation(fields, amt, lang)
	return &AmountResult{
		Amount:      decimal.NewFromFloat(amt).Round(2),
		Explanation: n.Explanation,
		Basis:       n.Basis,
	}, nil
}
