package reelmatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "reelmatch"

// hitBuckets covers the result sizes the engine can return: up to 10
// recommendations, 20 search hits, or a featured page.
var hitBuckets = []float64{0, 1, 2, 5, 10, 20}

// callMetrics are the per-operation collectors of one Client.
type callMetrics struct {
	calls   *prometheus.CounterVec
	latency *prometheus.HistogramVec
	hits    *prometheus.HistogramVec
}

func newCallMetrics(reg prometheus.Registerer) (*callMetrics, error) {
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "sdk",
		Name:      "operations_total",
		Help:      "SDK calls by operation and outcome.",
	}, []string{"operation", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "sdk",
		Name:      "operation_duration_seconds",
		Help:      "SDK call latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})
	hits := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "sdk",
		Name:      "hits",
		Help:      "Items returned per successful SDK call.",
		Buckets:   hitBuckets,
	}, []string{"operation"})

	m := &callMetrics{}
	var err error
	if m.calls, err = register(reg, calls); err != nil {
		return nil, err
	}
	if m.latency, err = register(reg, latency); err != nil {
		return nil, err
	}
	if m.hits, err = register(reg, hits); err != nil {
		return nil, err
	}
	return m, nil
}

// register adds c to reg. When an equal collector is already registered,
// for example by a second Client on the same registry, that one is returned.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return c, fmt.Errorf("reelmatch: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return c, fmt.Errorf("reelmatch: metric registered as %T", are.ExistingCollector)
	}
	return existing, nil
}

// observer records every SDK call to the optional logger and registry.
type observer struct {
	logger  *slog.Logger
	metrics *callMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg == nil {
		return o, nil
	}
	m, err := newCallMetrics(reg)
	if err != nil {
		return nil, err
	}
	o.metrics = m
	return o, nil
}

// observe records one call. hits is the number of items returned.
func (o *observer) observe(op string, start time.Time, hits int, err error) {
	if o == nil {
		return
	}
	elapsed := time.Since(start)

	if m := o.metrics; m != nil {
		m.latency.WithLabelValues(op).Observe(elapsed.Seconds())
		if err != nil {
			m.calls.WithLabelValues(op, "error").Inc()
		} else {
			m.calls.WithLabelValues(op, "ok").Inc()
			m.hits.WithLabelValues(op).Observe(float64(hits))
		}
	}

	if o.logger == nil {
		return
	}
	attrs := []slog.Attr{slog.String("op", op), slog.Duration("duration", elapsed)}
	if err != nil {
		o.logger.LogAttrs(context.Background(), slog.LevelWarn, "operation failed",
			append(attrs, slog.Any("error", err))...)
		return
	}
	o.logger.LogAttrs(context.Background(), slog.LevelDebug, "operation completed",
		append(attrs, slog.Int("hits", hits))...)
}
