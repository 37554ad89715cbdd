package classifier

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronov/cadscreen/assets"
	"github.com/avoronov/cadscreen/internal/model"
)

func testArtifact() Artifact {
	return Artifact{
		Features:  []string{"age", "ejection_fraction", "serum_creatinine"},
		Mean:      []float64{60, 38, 1.4},
		Scale:     []float64{12, 12, 1},
		Weights:   []float64{0.5, -0.9, 0.7},
		Intercept: -0.5,
	}
}

func TestNew_RejectsMismatchedLengths(t *testing.T) {
	t.Parallel()

	art := testArtifact()
	art.Weights = art.Weights[:2]

	_, err := New(art)
	require.Error(t, err)
}

func TestNew_RejectsZeroScale(t *testing.T) {
	t.Parallel()

	art := testArtifact()
	art.Scale[1] = 0

	_, err := New(art)
	require.Error(t, err)
}

func TestScore_MissingFeature(t *testing.T) {
	t.Parallel()

	m, err := New(testArtifact())
	require.NoError(t, err)

	_, err = m.Score(map[string]float64{"age": 60, "serum_creatinine": 1.4})
	require.ErrorIs(t, err, ErrMissingFeature)
	assert.Contains(t, err.Error(), "ejection_fraction")
}

func TestScore_ProbabilityBounds(t *testing.T) {
	t.Parallel()

	m, err := New(testArtifact())
	require.NoError(t, err)

	inputs := []map[string]float64{
		{"age": 60, "ejection_fraction": 38, "serum_creatinine": 1.4},
		{"age": 95, "ejection_fraction": 15, "serum_creatinine": 9},
		{"age": 20, "ejection_fraction": 80, "serum_creatinine": 0.5},
	}

	for _, in := range inputs {
		p, err := m.Score(in)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}

func TestScore_MeanInputGivesIntercept(t *testing.T) {
	t.Parallel()

	m, err := New(testArtifact())
	require.NoError(t, err)

	// At the training mean every scaled feature is zero, so the score is
	// sigmoid(intercept).
	p, err := m.Score(map[string]float64{"age": 60, "ejection_fraction": 38, "serum_creatinine": 1.4})
	require.NoError(t, err)
	assert.InDelta(t, sigmoid(-0.5), p, 1e-12)
}

func TestScore_RiskierInputScoresHigher(t *testing.T) {
	t.Parallel()

	m, err := New(testArtifact())
	require.NoError(t, err)

	base, err := m.Score(map[string]float64{"age": 60, "ejection_fraction": 38, "serum_creatinine": 1.4})
	require.NoError(t, err)

	worse, err := m.Score(map[string]float64{"age": 80, "ejection_fraction": 20, "serum_creatinine": 3})
	require.NoError(t, err)

	assert.Greater(t, worse, base)
}

func TestCategorize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		probability float64
		want        model.RiskCategory
	}{
		{0, model.RiskLow},
		{0.1, model.RiskLow},
		{0.3299, model.RiskLow},
		{0.33, model.RiskMedium},
		{0.5, model.RiskMedium},
		{0.6699, model.RiskMedium},
		{0.67, model.RiskHigh},
		{0.9, model.RiskHigh},
		{1, model.RiskHigh},
	}

	for _, tt := range tests {
		got := Categorize(tt.probability)
		assert.Equalf(t, tt.want, got, "Categorize(%v)", tt.probability)
	}
}

func TestRecommendation_CoversEveryCategory(t *testing.T) {
	t.Parallel()

	for _, c := range []model.RiskCategory{model.RiskLow, model.RiskMedium, model.RiskHigh} {
		assert.NotEmpty(t, Recommendation(c))
	}
}

func TestLoad_DefaultArtifact(t *testing.T) {
	t.Parallel()

	m, err := Load(filepath.Join("..", "..", "assets", "model", "cad_model.json"))
	require.NoError(t, err)

	names := m.FeatureNames()
	require.Len(t, names, 12)
	assert.Equal(t, "age", names[0])
	assert.Equal(t, "time", names[11])

	info := m.Describe()
	require.Len(t, info, 12)
	assert.Equal(t, "years", info["age"].Unit)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadFS_EmbeddedArtifact(t *testing.T) {
	t.Parallel()

	m, err := LoadFS(assets.EmbeddedFiles, "model/cad_model.json")
	require.NoError(t, err)
	require.Len(t, m.FeatureNames(), 12)
}
