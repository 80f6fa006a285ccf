package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mcoot/playerroster/internal/model"
)

// Operation results
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultInvalid  = "invalid"
	ResultError    = "error"
)

var (
	// Player service metrics
	PlayerOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roster_player_operations_total",
		Help: "The total number of player service operations by outcome",
	}, []string{"operation", "result"})

	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roster_http_requests_total",
		Help: "The total number of HTTP requests served",
	}, []string{"method", "status"})
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "roster_http_request_duration_seconds",
		Help:    "Latency of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
)

// Result classifies err into one of the result label values
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, model.ErrPlayerNotFound):
		return ResultNotFound
	case errors.Is(err, model.ErrInvalidPlayer):
		return ResultInvalid
	}
	return ResultError
}

// ObservePlayerOperation counts one service operation
func ObservePlayerOperation(operation string, err error) {
	PlayerOperationsTotal.WithLabelValues(operation, Result(err)).Inc()
}
