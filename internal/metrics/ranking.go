// Package metrics exporta metricas Prometheus del ranking de compatibilidad.
package metrics

import (
	"errors"
	"fmt"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
)

// PrometheusObserver registra latencia, tamano del lote y fallos de cada ranking.
// Un observer nil no hace nada.
type PrometheusObserver struct {
	duration   promclient.Histogram
	candidates promclient.Histogram
	errors     *promclient.CounterVec
}

func NewPrometheusObserver(namespace string, reg promclient.Registerer) (*PrometheusObserver, error) {
	if namespace == "" {
		namespace = "flatscout"
	}
	if reg == nil {
		reg = promclient.DefaultRegisterer
	}
	o := &PrometheusObserver{
		duration: promclient.NewHistogram(promclient.HistogramOpts{
			Namespace: namespace,
			Name:      "ranking_duration_seconds",
			Help:      "Latency of a full match ranking, fetch included.",
			Buckets:   promclient.DefBuckets,
		}),
		candidates: promclient.NewHistogram(promclient.HistogramOpts{
			Namespace: namespace,
			Name:      "ranking_candidates",
			Help:      "Number of candidates scored per ranking.",
			Buckets:   []float64{0, 10, 50, 100, 250, 500, 1000},
		}),
		errors: promclient.NewCounterVec(promclient.CounterOpts{
			Namespace: namespace,
			Name:      "ranking_errors_total",
			Help:      "Count of rankings that failed, by reason.",
		}, []string{"reason"}),
	}

	var err error
	if o.duration, err = register(reg, o.duration); err != nil {
		return nil, fmt.Errorf("register ranking duration: %w", err)
	}
	if o.candidates, err = register(reg, o.candidates); err != nil {
		return nil, fmt.Errorf("register ranking candidates: %w", err)
	}
	if o.errors, err = register(reg, o.errors); err != nil {
		return nil, fmt.Errorf("register ranking errors: %w", err)
	}
	return o, nil
}

// register reutiliza el collector existente si otro observer ya lo registro.
func register[C promclient.Collector](reg promclient.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are promclient.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// ObserveRanking se llama una vez por ranking completado.
func (o *PrometheusObserver) ObserveRanking(duration time.Duration, candidates int) {
	if o == nil {
		return
	}
	o.duration.Observe(duration.Seconds())
	o.candidates.Observe(float64(candidates))
}

// ObserveError cuenta un ranking fallido; reason es una etiqueta de baja cardinalidad.
func (o *PrometheusObserver) ObserveError(reason string) {
	if o == nil {
		return
	}
	if reason == "" {
		reason = "unknown"
	}
	o.errors.WithLabelValues(reason).Inc()
}
