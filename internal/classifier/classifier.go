// Package classifier scores coronary-artery-disease risk with a frozen
// model artifact trained offline. The artifact carries the standard-scaler
// parameters and the logistic-regression weights, so scoring is a dot
// product and a sigmoid; no training or tuning happens here.
package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	"github.com/avoronov/cadscreen/internal/model"
)

var ErrMissingFeature = errors.New("missing feature")

// Artifact is the serialized form of the trained model. Mean and Scale are
// the per-feature standardization parameters, Weights and Intercept the
// logistic-regression coefficients. All slices follow the order of Features.
type Artifact struct {
	Features  []string  `json:"features"`
	Mean      []float64 `json:"mean"`
	Scale     []float64 `json:"scale"`
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
}

type Model struct {
	art Artifact
}

func New(art Artifact) (*Model, error) {
	n := len(art.Features)
	if n == 0 {
		return nil, errors.New("classifier: artifact has no features")
	}
	if len(art.Mean) != n || len(art.Scale) != n || len(art.Weights) != n {
		return nil, fmt.Errorf("classifier: artifact parameter lengths do not match %d features", n)
	}
	for i, s := range art.Scale {
		if s == 0 {
			return nil, fmt.Errorf("classifier: zero scale for feature %q", art.Features[i])
		}
	}
	return &Model{art: art}, nil
}

// Load reads a model artifact from a JSON file.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("classifier: read artifact: %w", err)
	}

	return parseArtifact(data)
}

// LoadFS reads a model artifact from a file system, typically the one
// compiled into the binary.
func LoadFS(fsys fs.FS, path string) (*Model, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("classifier: read artifact: %w", err)
	}

	return parseArtifact(data)
}

func parseArtifact(data []byte) (*Model, error) {
	var art Artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("classifier: parse artifact: %w", err)
	}

	return New(art)
}

// FeatureNames returns the feature order the model was trained with.
func (m *Model) FeatureNames() []string {
	names := make([]string, len(m.art.Features))
	copy(names, m.art.Features)
	return names
}

// Score computes the risk probability for the given named features. Every
// feature the model was trained with must be present; a missing one fails
// before the model is evaluated.
func (m *Model) Score(features map[string]float64) (float64, error) {
	for _, name := range m.art.Features {
		if _, ok := features[name]; !ok {
			return 0, fmt.Errorf("%w: %s", ErrMissingFeature, name)
		}
	}

	z := m.art.Intercept
	for i, name := range m.art.Features {
		scaled := (features[name] - m.art.Mean[i]) / m.art.Scale[i]
		z += m.art.Weights[i] * scaled
	}

	return sigmoid(z), nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// Categorize maps a probability onto a risk category. Boundary values 0.33
// and 0.67 belong to MEDIUM and HIGH respectively.
func Categorize(p float64) model.RiskCategory {
	switch {
	case p < 0.33:
		return model.RiskLow
	case p < 0.67:
		return model.RiskMedium
	default:
		return model.RiskHigh
	}
}

var recommendations = map[model.RiskCategory]string{
	model.RiskLow:    "Continue regular health check-ups. Maintain healthy lifestyle.",
	model.RiskMedium: "Schedule appointment with cardiologist for further evaluation.",
	model.RiskHigh:   "URGENT: Consult cardiologist immediately. Consider additional testing.",
}

// Recommendation returns the static advice string for a risk category.
func Recommendation(c model.RiskCategory) string {
	return recommendations[c]
}
