package ml

import (
	"math"
	"sync"
)

// Scorer is the prediction contract the usecases depend on.
type Scorer interface {
	PredictEligibility(fields Fields) (bool, error)
	PredictRisk(fields Fields) (float64, error)
	RecommendAmount(fields Fields) (float64, error)
}

// Engine scores applications against the pretrained artifacts. Artifacts
// are loaded lazily on first use and shared read-only across requests; a
// load failure is remembered for the process lifetime so the hot path
// never re-probes the filesystem.
type Engine struct {
	dir  string
	once sync.Once
	art  *artifacts
	err  error
}

func NewEngine(modelsDir string) *Engine { return &Engine{dir: modelsDir} }

func (e *Engine) load() (*artifacts, error) {
	e.once.Do(func() {
		e.art, e.err = loadArtifacts(e.dir)
	})
	return e.art, e.err
}

// PredictEligibility runs the approval classifier: true means the model
// predicts the application would be accepted.
func (e *Engine) PredictEligibility(fields Fields) (bool, error) {
	art, err := e.load()
	if err != nil {
		return false, err
	}
	scaled, err := e.scaledVector(art, fields)
	if err != nil {
		return false, err
	}
	raw, err := art.Classifier.raw(scaled)
	if err != nil {
		return false, err
	}
	return sigmoid(raw) >= 0.5, nil
}

// PredictRisk returns the continuous default-risk score (higher = riskier).
func (e *Engine) PredictRisk(fields Fields) (float64, error) {
	art, err := e.load()
	if err != nil {
		return 0, err
	}
	scaled, err := e.scaledVector(art, fields)
	if err != nil {
		return 0, err
	}
	return art.RiskModel.raw(scaled)
}

// RecommendAmount returns the suggested loan amount. The amount model was
// trained without the LoanAmount column, so that position is dropped from
// the scaled vector before prediction.
func (e *Engine) RecommendAmount(fields Fields) (float64, error) {
	art, err := e.load()
	if err != nil {
		return 0, err
	}
	scaled, err := e.scaledVector(art, fields)
	if err != nil {
		return 0, err
	}
	return art.AmountModel.raw(dropLoanAmount(art.FeatureCols, scaled))
}

func (e *Engine) scaledVector(art *artifacts, fields Fields) ([]float64, error) {
	return art.Scaler.transform(Encode(art.FeatureCols, fields))
}

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }
