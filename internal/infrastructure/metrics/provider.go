package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Provider - MeterProvider с Prometheus-экспортером на собственном реестре
type Provider struct {
	registry *prometheus.Registry
	mp       *sdkmetric.MeterProvider
	Metrics  *Metrics
}

// NewProvider собирает экспортер, провайдер и инструменты
func NewProvider() (*Provider, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	exp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, err
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp))

	m, err := New(mp)
	if err != nil {
		_ = mp.Shutdown(context.Background())
		return nil, err
	}
	return &Provider{registry: reg, mp: mp, Metrics: m}, nil
}

// Handler - обработчик /metrics
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

func (p *Provider) Shutdown(ctx context.Context) error {
	return p.mp.Shutdown(ctx)
}
