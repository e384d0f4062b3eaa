package metrics

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := New(mp)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestRecordTick(t *testing.T) {
	m, reader := newTestMetrics(t)
	m.RecordTick(2*time.Millisecond, 12, 3)
	m.RecordTick(4*time.Millisecond, 11, 5)

	rm := collect(t, reader)

	hist := findMetric(rm, "platforms.tick.duration")
	if hist == nil {
		t.Fatal("tick histogram not found")
	}
	data, ok := hist.Data.(metricdata.Histogram[float64])
	if !ok || len(data.DataPoints) != 1 || data.DataPoints[0].Count != 2 {
		t.Errorf("histogram data = %+v", hist.Data)
	}

	gauge := findMetric(rm, "platforms.entities")
	if gauge == nil {
		t.Fatal("entities gauge not found")
	}
	g, ok := gauge.Data.(metricdata.Gauge[int64])
	if !ok || len(g.DataPoints) != 1 || g.DataPoints[0].Value != 11 {
		t.Errorf("gauge must keep the last value, got %+v", gauge.Data)
	}
}

func TestCountersByAttribute(t *testing.T) {
	m, reader := newTestMetrics(t)
	m.RecordTask("attack")
	m.RecordTask("attack")
	m.RecordTask("roll")
	m.RecordDecision("vision", "aware")
	m.RecordEvent("DEATH")
	m.RecordCommand("JUMP", "accepted")

	rm := collect(t, reader)

	tasks := findMetric(rm, "platforms.tasks.started")
	if tasks == nil {
		t.Fatal("tasks counter not found")
	}
	sum := tasks.Data.(metricdata.Sum[int64])
	byTask := map[string]int64{}
	for _, dp := range sum.DataPoints {
		v, _ := dp.Attributes.Value(attribute.Key("task"))
		byTask[v.AsString()] = dp.Value
	}
	if byTask["attack"] != 2 || byTask["roll"] != 1 {
		t.Errorf("by task = %v", byTask)
	}

	for _, name := range []string{"platforms.ai.decisions", "platforms.events", "platforms.commands"} {
		if findMetric(rm, name) == nil {
			t.Errorf("%s not recorded", name)
		}
	}
}

func TestProvider_Handler(t *testing.T) {
	p, err := NewProvider()
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	defer p.Shutdown(context.Background())

	p.Metrics.RecordEvent("HURT")

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(string(body), "platforms_events") {
		t.Errorf("exported metrics lack platforms_events:\n%s", body)
	}
}
