package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const meterName = "github.com/vuongmanhnghia/iris-music-bot/internal/services"

type settingsMetrics struct {
	writes metric.Int64Counter
}

func newSettingsMetrics() *settingsMetrics {
	counter, err := otel.Meter(meterName).Int64Counter(
		"settings.writes",
		metric.WithDescription("Guild settings writes by field and outcome"),
	)
	if err != nil {
		counter, _ = noop.NewMeterProvider().Meter(meterName).Int64Counter("settings.writes")
	}
	return &settingsMetrics{writes: counter}
}

func (m *settingsMetrics) record(field string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.writes.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("field", field),
		attribute.String("result", result),
	))
}
