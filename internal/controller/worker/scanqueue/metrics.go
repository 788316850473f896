package scanqueue

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// queueLen reports the depth of the queue the running consumer reads.
var queueLen atomic.Pointer[func() int]

var (
	processedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkin_scans_processed_total",
		Help: "Processed scans by outcome status",
	}, []string{"status"})

	processingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkin_scan_processing_duration_seconds",
		Help:    "Time from dequeue to notified outcome",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 15},
	})

	queueDepth = promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "checkin_scan_queue_depth",
		Help: "Scans waiting behind the one in flight",
	}, func() float64 {
		if f := queueLen.Load(); f != nil {
			return float64((*f)())
		}

		return 0
	})
)
