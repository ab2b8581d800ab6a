// Package metrics exposes training progress as Prometheus metrics.
//
// Every Training collector owns a private registry, so several runs in one
// process (or one test binary) never collide on metric names.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Training collects per-epoch training metrics.
type Training struct {
	registry *prometheus.Registry

	epoch          prometheus.Gauge
	trainError     prometheus.Gauge
	testError      prometheus.Gauge
	loss           prometheus.Gauge
	samplesTrained prometheus.Counter
	epochDuration  prometheus.Histogram
}

// NewTraining creates the collectors and registers them on a new registry.
func NewTraining() *Training {
	t := &Training{
		registry: prometheus.NewRegistry(),
		epoch: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mushroom_epoch",
			Help: "Number of completed training epochs",
		}),
		trainError: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mushroom_train_error_percent",
			Help: "Percent of misclassified training samples after the last epoch",
		}),
		testError: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mushroom_test_error_percent",
			Help: "Percent of misclassified test samples after the last epoch",
		}),
		loss: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mushroom_train_loss",
			Help: "Mean cross-entropy of the last epoch",
		}),
		samplesTrained: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mushroom_samples_trained_total",
			Help: "Total number of backpropagation steps",
		}),
		epochDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mushroom_epoch_duration_seconds",
			Help:    "Wall time of one training epoch including evaluation",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
	}
	t.registry.MustRegister(t.epoch, t.trainError, t.testError, t.loss, t.samplesTrained, t.epochDuration)
	return t
}

// ObserveEpoch records the outcome of one epoch.
func (t *Training) ObserveEpoch(epoch int, trainError, testError, loss float64, samples int, took time.Duration) {
	t.epoch.Set(float64(epoch))
	t.trainError.Set(trainError)
	t.testError.Set(testError)
	t.loss.Set(loss)
	t.samplesTrained.Add(float64(samples))
	t.epochDuration.Observe(took.Seconds())
}

// Registry returns the registry holding the collectors.
func (t *Training) Registry() *prometheus.Registry {
	return t.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (t *Training) Handler() http.Handler {
	return promhttp.HandlerFor(t.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (t *Training) Serve(ctx context.Context, addr string, log *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", t.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() {
		log.Info("serving metrics", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	}
}
