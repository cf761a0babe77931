// internal/metrics/collector.go
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

const namespace = "dupc_swap"

// Collector owns the swap metrics on a private registry so several
// collectors can live in one process.
type Collector struct {
	registry         *prometheus.Registry
	transfers        *prometheus.CounterVec
	transferDuration *prometheus.HistogramVec
	apiLatency       *prometheus.HistogramVec
}

// NewCollector creates a collector with every metric registered.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		transfers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transfers_total",
				Help:      "Total number of transfer requests handed to the sender",
			},
			[]string{"status", "op"},
		),
		transferDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "transfer_duration_seconds",
				Help:      "Time to hand a transfer request to the sender",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
			},
			[]string{"op"},
		),
		apiLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "toncenter_latency_seconds",
				Help:      "Toncenter request latency including retries",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
			},
			[]string{"endpoint", "status"},
		),
	}

	c.registry.MustRegister(c.transfers, c.transferDuration, c.apiLatency)
	return c
}

// RecordTransfer counts one transfer request. A cancelled context is
// counted as cancelled whatever err says.
func (c *Collector) RecordTransfer(ctx context.Context, op string, duration time.Duration, err error) {
	select {
	case <-ctx.Done():
		c.transfers.WithLabelValues("cancelled", op).Inc()
		return
	default:
	}

	status := "success"
	if err != nil {
		status = "failure"
	}
	c.transfers.WithLabelValues(status, op).Inc()
	c.transferDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// ObserveRequest records the latency of one toncenter call.
func (c *Collector) ObserveRequest(endpoint string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.apiLatency.WithLabelValues(endpoint, status).Observe(duration.Seconds())
}

// Reset clears every metric
func (c *Collector) Reset() {
	c.transfers.Reset()
	c.transferDuration.Reset()
	c.apiLatency.Reset()
}

// Registry exposes the registry for scraping and tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (c *Collector) Serve(ctx context.Context, addr string, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving metrics", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
