package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrModelUnavailable means the pretrained artifacts are missing from the
// models directory. It is permanent for the process lifetime: operators
// must deploy the artifacts and restart.
var ErrModelUnavailable = errors.New("ml models not available")

// ErrInvalidInput covers every other scoring failure (e.g. an artifact
// whose dimensions disagree with the feature columns).
var ErrInvalidInput = errors.New("invalid scoring input")

// Artifact file names, fixed by the training pipeline's export step.
const (
	featureColumnsFile = "feature_columns.json"
	scalerFile         = "scaler.json"
	classifierFile     = "eligibility_classifier.json"
	riskModelFile      = "risk_regressor.json"
	amountModelFile    = "amount_regressor.json"
)

// standardScaler normalizes a vector column-wise: (x - mean) / scale.
// Mean and scale come from the training run; all three models share one
// scaled feature space.
type standardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func (s *standardScaler) transform(x []float64) ([]float64, error) {
	if len(x) != len(s.Mean) || len(x) != len(s.Scale) {
		return nil, fmt.Errorf("%w: vector size %d, scaler size %d", ErrInvalidInput, len(x), len(s.Mean))
	}
	out := make([]float64, len(x))
	for i := range x {
		div := s.Scale[i]
		if div == 0 {
			div = 1
		}
		out[i] = (x[i] - s.Mean[i]) / div
	}
	return out, nil
}

// linearModel is the exported form of a fitted sklearn estimator: a weight
// per feature plus an intercept. The classifier applies a sigmoid to the
// raw score; the regressors return it as-is.
type linearModel struct {
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
}

func (m *linearModel) raw(x []float64) (float64, error) {
	if len(x) != len(m.Weights) {
		return 0, fmt.Errorf("%w: vector size %d, model size %d", ErrInvalidInput, len(x), len(m.Weights))
	}
	sum := m.Intercept
	for i, w := range m.Weights {
		sum += w * x[i]
	}
	return sum, nil
}

type artifacts struct {
	FeatureCols []string
	Scaler      standardScaler
	Classifier  linearModel
	RiskModel   linearModel
	AmountModel linearModel
}

func loadArtifacts(dir string) (*artifacts, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("%w: models directory %s", ErrModelUnavailable, dir)
	}
	var a artifacts
	if err := readJSON(filepath.Join(dir, featureColumnsFile), &a.FeatureCols); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, scalerFile), &a.Scaler); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, classifierFile), &a.Classifier); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, riskModelFile), &a.RiskModel); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, amountModelFile), &a.AmountModel); err != nil {
		return nil, err
	}
	if len(a.FeatureCols) == 0 {
		return nil, fmt.Errorf("%w: empty feature column list", ErrInvalidInput)
	}
	return &a, nil
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrModelUnavailable, filepath.Base(path))
		}
		return fmt.Errorf("%w: reading %s: %v", ErrModelUnavailable, filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", ErrInvalidInput, filepath.Base(path), err)
	}
	return nil
}
