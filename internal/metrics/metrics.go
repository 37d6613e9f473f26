package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"AviatorStats/internal/logger"
)

var log = logger.WithComponent("metrics")

// Metrics groups the session's collectors on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	BatchesGenerated prometheus.Counter
	TriggersRejected prometheus.Counter
	HistoryQueries   prometheus.Counter
	BatchDuration    prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		BatchesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aviator_prediction_batches_total",
			Help: "Total number of prediction batches published.",
		}),
		TriggersRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aviator_prediction_triggers_rejected_total",
			Help: "Prediction triggers ignored because a batch was already generating.",
		}),
		HistoryQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aviator_history_queries_total",
			Help: "Total number of history filter/sort queries served.",
		}),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "aviator_prediction_batch_duration_seconds",
			Help:    "Time from trigger to batch publication.",
			Buckets: []float64{0.1, 0.5, 1.0, 2.5, 5.0},
		}),
	}
	m.Registry.MustRegister(m.BatchesGenerated, m.TriggersRejected, m.HistoryQueries, m.BatchDuration)
	return m
}

// ObserveBatch records one published batch.
func (m *Metrics) ObserveBatch(elapsed time.Duration) {
	m.BatchesGenerated.Inc()
	m.BatchDuration.Observe(elapsed.Seconds())
}

// Handler exposes /metrics and /health.
func (m *Metrics) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	})
	return mux
}

// Serve blocks until ctx is cancelled or the listener fails.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           m.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("metrics server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	}
}
