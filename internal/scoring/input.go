package scoring

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cardwatch/fraudscore/internal/metrics"
)

// Validation failure kinds, used as metric labels.
const (
	KindMissingField   = "missing_field"
	KindNotNumeric     = "not_numeric"
	KindNegativeAmount = "negative_amount"
)

// Transaction is a validated, strongly typed transaction ready for
// preprocessing.
type Transaction struct {
	V      [28]float64
	Amount float64
}

// ValidationError reports a rejected payload with the first offending
// field and a caller-facing reason.
type ValidationError struct {
	Field   string
	Message string
	Kind    string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// requiredFields is V1..V28 followed by Amount, in validation order.
var requiredFields = buildRequiredFields()

func buildRequiredFields() []string {
	fields := make([]string, 0, 29)
	for i := 1; i <= 28; i++ {
		fields = append(fields, "V"+strconv.Itoa(i))
	}
	return append(fields, "Amount")
}

// ParseTransaction validates a decoded JSON payload and converts it into
// a Transaction. Checks run in fixed order: presence of every required
// field first, then per-field numeric coercion, then the amount range.
// Only the first failing category is reported. Extra keys are ignored.
func ParseTransaction(payload map[string]any) (*Transaction, *ValidationError) {
	var missing []string
	for _, field := range requiredFields {
		if _, ok := payload[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		metrics.ValidationFailuresTotal.WithLabelValues(KindMissingField).Inc()
		return nil, &ValidationError{
			Field:   missing[0],
			Message: "required fields not found: " + strings.Join(missing, ", "),
			Kind:    KindMissingField,
		}
	}

	var tx Transaction
	for i, field := range requiredFields {
		v, err := toFloat64(payload[field])
		if err != nil {
			metrics.ValidationFailuresTotal.WithLabelValues(KindNotNumeric).Inc()
			return nil, &ValidationError{
				Field:   field,
				Message: fmt.Sprintf("field %q must be a valid number", field),
				Kind:    KindNotNumeric,
			}
		}
		if i < 28 {
			tx.V[i] = v
		} else {
			tx.Amount = v
		}
	}

	if tx.Amount < 0 {
		metrics.ValidationFailuresTotal.WithLabelValues(KindNegativeAmount).Inc()
		return nil, &ValidationError{
			Field:   "Amount",
			Message: "Amount must be greater than or equal to zero",
			Kind:    KindNegativeAmount,
		}
	}

	return &tx, nil
}

// toFloat64 coerces the value shapes a decoded JSON payload can carry.
// Numeric strings and booleans are accepted to match lenient clients.
func toFloat64(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case json.Number:
		return x.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(x), 64)
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("value %v is not numeric", v)
	}
}

// Preprocess builds the positional feature vector for a transaction:
// V1..V28 in order, then the scaler-normalized amount as element 29.
func (c *Context) Preprocess(tx *Transaction) []float64 {
	vector := make([]float64, 0, len(tx.V)+1)
	vector = append(vector, tx.V[:]...)
	vector = append(vector, c.bundle.Scaler.Transform(tx.Amount))
	return vector
}
