package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal   *prometheus.CounterVec
	votesCastTotal      prometheus.Counter
	votesRetractedTotal prometheus.Counter
	registerOnce        sync.Once
)

// Register initializes Prometheus metrics on the default registry.
func Register() {
	registerOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pollcast",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed by the API.",
		}, []string{"method", "path", "status"})
		votesCastTotal = promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "pollcast",
			Name:      "votes_cast_total",
			Help:      "Total votes cast.",
		})
		votesRetractedTotal = promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "pollcast",
			Name:      "votes_retracted_total",
			Help:      "Total votes retracted.",
		})
	})
}

// IncRequest increments the http_requests_total counter with the given labels.
func IncRequest(method, path string, status int) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

func IncVoteCast() {
	if votesCastTotal != nil {
		votesCastTotal.Inc()
	}
}

func IncVoteRetracted() {
	if votesRetractedTotal != nil {
		votesRetractedTotal.Inc()
	}
}
