// Package scorermock provides a func-field test double for the scoring
// engine. Zero-value methods return a benign approved/low-risk result.
package scorermock

import "agrifin-backend/internal/ml"

type Scorer struct {
	PredictEligibilityFn func(fields ml.Fields) (bool, error)
	PredictRiskFn        func(fields ml.Fields) (float64, error)
	RecommendAmountFn    func(fields ml.Fields) (float64, error)
}

func (m *Scorer) PredictEligibility(fields ml.Fields) (bool, error) {
	if m.PredictEligibilityFn != nil {
		return m.PredictEligibilityFn(fields)
	}
	return true, nil
}

func (m *Scorer) PredictRisk(fields ml.Fields) (float64, error) {
	if m.PredictRiskFn != nil {
		return m.PredictRiskFn(fields)
	}
	return 30, nil
}

func (m *Scorer) RecommendAmount(fields ml.Fields) (float64, error) {
	if m.RecommendAmountFn != nil {
		return m.RecommendAmountFn(fields)
	}
	return 250000, nil
}
