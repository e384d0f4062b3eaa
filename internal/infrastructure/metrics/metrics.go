// Package metrics - счетчики симуляции поверх OpenTelemetry с выгрузкой в Prometheus.
package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName - имя инструментирующей области
const meterName = "platforms-server/sim"

// Metrics реализует MetricsRecorder движка. Безопасен для конкурентного использования.
type Metrics struct {
	TickDuration metric.Float64Histogram
	Entities     metric.Int64Gauge
	Tasks        metric.Int64Gauge

	TasksStarted metric.Int64Counter
	AIDecisions  metric.Int64Counter
	Events       metric.Int64Counter
	Commands     metric.Int64Counter
	Sessions     metric.Int64UpDownCounter
}

// New создает инструменты на переданном провайдере
func New(mp metric.MeterProvider) (*Metrics, error) {
	meter := mp.Meter(meterName)
	m := &Metrics{}
	var err error

	if m.TickDuration, err = meter.Float64Histogram("platforms.tick.duration",
		metric.WithDescription("Wall time of one simulation tick"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.0001, 0.0005, 0.001, 0.002, 0.004, 0.008, 0.016, 0.033),
	); err != nil {
		return nil, err
	}
	if m.Entities, err = meter.Int64Gauge("platforms.entities",
		metric.WithDescription("Entities registered in the world"),
	); err != nil {
		return nil, err
	}
	if m.Tasks, err = meter.Int64Gauge("platforms.tasks.active",
		metric.WithDescription("Resumable tasks alive after the tick"),
	); err != nil {
		return nil, err
	}
	if m.TasksStarted, err = meter.Int64Counter("platforms.tasks.started",
		metric.WithDescription("Tasks spawned, by task name"),
	); err != nil {
		return nil, err
	}
	if m.AIDecisions, err = meter.Int64Counter("platforms.ai.decisions",
		metric.WithDescription("AI scheduler loop iterations, by loop and outcome"),
	); err != nil {
		return nil, err
	}
	if m.Events, err = meter.Int64Counter("platforms.events",
		metric.WithDescription("Simulation events, by type"),
	); err != nil {
		return nil, err
	}
	if m.Commands, err = meter.Int64Counter("platforms.commands",
		metric.WithDescription("Client commands, by action and status"),
	); err != nil {
		return nil, err
	}
	if m.Sessions, err = meter.Int64UpDownCounter("platforms.sessions.active",
		metric.WithDescription("Connected websocket sessions"),
	); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) RecordTick(d time.Duration, entities, tasks int) {
	ctx := context.Background()
	m.TickDuration.Record(ctx, d.Seconds())
	m.Entities.Record(ctx, int64(entities))
	m.Tasks.Record(ctx, int64(tasks))
}

func (m *Metrics) RecordTask(name string) {
	m.TasksStarted.Add(context.Background(), 1, metric.WithAttributes(attribute.String("task", name)))
}

func (m *Metrics) RecordDecision(loop, outcome string) {
	m.AIDecisions.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("loop", loop),
		attribute.String("outcome", outcome),
	))
}

func (m *Metrics) RecordEvent(eventType string) {
	m.Events.Add(context.Background(), 1, metric.WithAttributes(attribute.String("type", eventType)))
}

// RecordCommand - status: accepted, invalid, dropped
func (m *Metrics) RecordCommand(action, status string) {
	m.Commands.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.String("status", status),
	))
}

// SessionOpened и SessionClosed ведут число подключений
func (m *Metrics) SessionOpened() { m.Sessions.Add(context.Background(), 1) }
func (m *Metrics) SessionClosed() { m.Sessions.Add(context.Background(), -1) }
