package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStatusBucket(t *testing.T) {
	cases := map[int]string{
		102: "1xx",
		200: "2xx",
		204: "2xx",
		301: "3xx",
		400: "4xx",
		404: "4xx",
		500: "5xx",
		503: "5xx",
	}
	for code, want := range cases {
		assert.Equal(t, want, statusBucket(code), "code %d", code)
	}
}

func TestMiddleware_CountsRequests(t *testing.T) {
	router := gin.New()
	router.Use(Middleware())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	before := counterValue(t, HTTPRequestsTotal, "GET", "/ping", "2xx")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)

	after := counterValue(t, HTTPRequestsTotal, "GET", "/ping", "2xx")
	assert.Equal(t, before+1, after)
}

func TestPredictionsTotal_Labels(t *testing.T) {
	before := counterValue(t, PredictionsTotal, "FRAUDE")
	PredictionsTotal.WithLabelValues("FRAUDE").Inc()
	after := counterValue(t, PredictionsTotal, "FRAUDE")
	assert.Equal(t, before+1, after)
}

func TestHandler_ServesExposition(t *testing.T) {
	router := gin.New()
	router.GET("/metrics", Handler())

	ModelLoaded.Set(1)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fraudscore_model_loaded")
}

// counterValue reads the current value of a labeled counter via the
// client_model DTO.
func counterValue(t *testing.T, vec *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	c, err := vec.GetMetricWithLabelValues(labels...)
	require.NoError(t, err)

	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}
