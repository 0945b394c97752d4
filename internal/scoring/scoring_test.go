package scoring

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardwatch/fraudscore/internal/testutil"
)

func readyContext(t *testing.T) *Context {
	t.Helper()

	ctx := NewContext(slog.Default())
	require.NoError(t, ctx.Load([]string{testutil.WriteModelDir(t)}))
	require.True(t, ctx.Ready())
	return ctx
}

func scorePayload(t *testing.T, ctx *Context, payload map[string]any) *PredictionResult {
	t.Helper()

	tx, verr := ParseTransaction(payload)
	require.Nil(t, verr)
	result, err := ctx.Score(ctx.Preprocess(tx))
	require.NoError(t, err)
	return result
}

func TestScore_ReferenceNormal(t *testing.T) {
	ctx := readyContext(t)
	result := scorePayload(t, ctx, ReferenceNormal())

	assert.Equal(t, 0, result.Label)
	assert.Equal(t, StatusNormal, result.Status)
	assert.Equal(t, ActionApprove, result.Action)
	assert.Less(t, result.FraudProba, 0.5)
}

func TestScore_ReferenceFraud(t *testing.T) {
	ctx := readyContext(t)
	result := scorePayload(t, ctx, ReferenceFraud())

	assert.Equal(t, 1, result.Label)
	assert.Equal(t, StatusFraud, result.Status)
	assert.Equal(t, ActionBlock, result.Action)
	assert.Equal(t, RiskVeryHigh, result.RiskTier)
	assert.Greater(t, result.FraudProba, 0.9)
}

func TestScore_ProbabilitiesSumToOne(t *testing.T) {
	ctx := readyContext(t)

	for _, payload := range []map[string]any{ReferenceNormal(), ReferenceFraud()} {
		result := scorePayload(t, ctx, payload)
		assert.InDelta(t, 1.0, result.FraudProba+result.NormalProba, 1e-6)
	}
}

func TestScore_Deterministic(t *testing.T) {
	ctx := readyContext(t)

	first := scorePayload(t, ctx, ReferenceFraud())
	second := scorePayload(t, ctx, ReferenceFraud())
	assert.Equal(t, first, second)
}

func TestScore_NotReady(t *testing.T) {
	ctx := NewContext(slog.Default())

	_, err := ctx.Score(make([]float64, 29))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestLoad_MissingClassifierStaysUnready(t *testing.T) {
	ctx := NewContext(slog.Default())

	err := ctx.Load([]string{t.TempDir()})
	require.Error(t, err)
	assert.False(t, ctx.Ready())
}

func TestLoad_ClassifierOnlyStillScores(t *testing.T) {
	ctx := NewContext(slog.Default())
	require.NoError(t, ctx.Load([]string{testutil.WriteClassifierOnlyDir(t)}))
	require.True(t, ctx.Ready())

	result := scorePayload(t, ctx, ReferenceNormal())
	assert.Equal(t, StatusNormal, result.Status)
}

func TestRiskTierFor_Boundaries(t *testing.T) {
	tests := []struct {
		p    float64
		want RiskTier
	}{
		{0.95, RiskVeryHigh},
		{0.8, RiskVeryHigh},
		{0.79999, RiskHigh},
		{0.6, RiskHigh},
		{0.59999, RiskMedium},
		{0.4, RiskMedium},
		{0.39999, RiskLow},
		{0.2, RiskLow},
		{0.19999, RiskVeryLow},
		{0.0, RiskVeryLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RiskTierFor(tt.p), "p=%v", tt.p)
	}
}

func TestConfidenceFor(t *testing.T) {
	assert.Equal(t, ConfidenceHigh, ConfidenceFor(0.81))
	assert.Equal(t, ConfidenceHigh, ConfidenceFor(0.19))
	assert.Equal(t, ConfidenceMedium, ConfidenceFor(0.8))
	assert.Equal(t, ConfidenceMedium, ConfidenceFor(0.5))
	assert.Equal(t, ConfidenceMedium, ConfidenceFor(0.2))
}

func TestHealthCheck_Ready(t *testing.T) {
	ctx := readyContext(t)

	hs := ctx.HealthCheck()
	assert.Equal(t, "healthy", hs.Status)
	assert.Equal(t, "loaded", hs.ModelStatus)
	assert.False(t, hs.Timestamp.IsZero())

	// Probing must not flip readiness.
	assert.True(t, ctx.Ready())
}

func TestHealthCheck_Unready(t *testing.T) {
	ctx := NewContext(slog.Default())

	hs := ctx.HealthCheck()
	assert.Equal(t, "degraded", hs.Status)
	assert.Equal(t, "error", hs.ModelStatus)
}
