package scoring

import (
	"log/slog"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardwatch/fraudscore/internal/testutil"
)

func TestParseTransaction_Valid(t *testing.T) {
	tx, verr := ParseTransaction(ReferenceNormal())
	require.Nil(t, verr)

	assert.InDelta(t, -1.359807, tx.V[0], 1e-9)
	assert.InDelta(t, -0.021053, tx.V[27], 1e-9)
	assert.InDelta(t, 149.62, tx.Amount, 1e-9)
}

func TestParseTransaction_MissingFieldsNamedTogether(t *testing.T) {
	payload := ReferenceNormal()
	delete(payload, "V3")
	delete(payload, "V17")

	_, verr := ParseTransaction(payload)
	require.NotNil(t, verr)
	assert.Equal(t, KindMissingField, verr.Kind)
	assert.Equal(t, "V3", verr.Field)
	assert.Contains(t, verr.Message, "V3")
	assert.Contains(t, verr.Message, "V17")
}

func TestParseTransaction_MissingAmount(t *testing.T) {
	payload := ReferenceNormal()
	delete(payload, "Amount")

	_, verr := ParseTransaction(payload)
	require.NotNil(t, verr)
	assert.Equal(t, KindMissingField, verr.Kind)
	assert.Contains(t, verr.Message, "Amount")
}

func TestParseTransaction_NonNumericNamesField(t *testing.T) {
	payload := ReferenceNormal()
	payload["V7"] = "abc"

	_, verr := ParseTransaction(payload)
	require.NotNil(t, verr)
	assert.Equal(t, KindNotNumeric, verr.Kind)
	assert.Equal(t, "V7", verr.Field)
	assert.Contains(t, verr.Message, "V7")
}

func TestParseTransaction_MissingPrecedesType(t *testing.T) {
	payload := ReferenceNormal()
	payload["V7"] = "abc"
	delete(payload, "V20")

	_, verr := ParseTransaction(payload)
	require.NotNil(t, verr)
	assert.Equal(t, KindMissingField, verr.Kind)
}

func TestParseTransaction_NegativeAmount(t *testing.T) {
	payload := ReferenceNormal()
	payload["Amount"] = -0.01

	_, verr := ParseTransaction(payload)
	require.NotNil(t, verr)
	assert.Equal(t, KindNegativeAmount, verr.Kind)
	assert.Equal(t, "Amount must be greater than or equal to zero", verr.Message)
}

func TestParseTransaction_ZeroAmountAccepted(t *testing.T) {
	payload := ReferenceNormal()
	payload["Amount"] = 0.0

	_, verr := ParseTransaction(payload)
	assert.Nil(t, verr)
}

func TestParseTransaction_LenientCoercion(t *testing.T) {
	payload := ReferenceNormal()
	payload["V1"] = "  -1.5 "
	payload["V2"] = 3
	payload["V3"] = true

	tx, verr := ParseTransaction(payload)
	require.Nil(t, verr)
	assert.InDelta(t, -1.5, tx.V[0], 1e-9)
	assert.InDelta(t, 3.0, tx.V[1], 1e-9)
	assert.InDelta(t, 1.0, tx.V[2], 1e-9)
}

func TestParseTransaction_ExtraKeysIgnored(t *testing.T) {
	payload := ReferenceNormal()
	payload["merchant_id"] = "m-1234"

	_, verr := ParseTransaction(payload)
	assert.Nil(t, verr)
}

func TestPreprocess_VectorLayout(t *testing.T) {
	ctx := NewContext(slog.Default())
	require.NoError(t, ctx.Load([]string{testutil.WriteModelDir(t)}))

	tx, verr := ParseTransaction(ReferenceNormal())
	require.Nil(t, verr)

	vector := ctx.Preprocess(tx)
	require.Len(t, vector, 29)
	for i := 0; i < 28; i++ {
		assert.InDelta(t, tx.V[i], vector[i], 1e-12, "position %d", i)
	}
	assert.InDelta(t, ctx.Bundle().Scaler.Transform(tx.Amount), vector[28], 1e-12)
}

func TestRequiredFieldsOrder(t *testing.T) {
	require.Len(t, requiredFields, 29)
	for i := 0; i < 28; i++ {
		assert.Equal(t, "V"+strconv.Itoa(i+1), requiredFields[i])
	}
	assert.Equal(t, "Amount", requiredFields[28])
}
