package session

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var histogramCommandTime = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "budgetapp",
		Subsystem: "console",
		Name:      "histogram_command_time_seconds",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
	},
	[]string{"status"},
)

func observeCommand(elapsed time.Duration, err bool) {
	histogramCommandTime.
		WithLabelValues(strconv.FormatBool(err)).
		Observe(elapsed.Seconds())
}
