package briefboard

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	decisionCounter     *prometheus.CounterVec //nolint:gochecknoglobals
	decisionCounterOnce sync.Once              //nolint:gochecknoglobals
)

// observeDecision counts a decision by deciding gate and outcome.
func observeDecision(d Decision) {
	decisionCounterOnce.Do(func() {
		decisionCounter = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "briefboard_decisions_total",
				Help: "Number of briefboard visibility decisions, differentiated by deciding gate and outcome.",
			},
			[]string{"gate", "show"},
		)
	})

	decisionCounter.WithLabelValues(string(d.Gate), strconv.FormatBool(d.Show)).Inc()
}
