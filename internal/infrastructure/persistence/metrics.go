package persistence

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const meterName = "github.com/vuongmanhnghia/iris-music-bot/internal/infrastructure/persistence"

// playlistMetrics counts playlist store outcomes through the global meter provider
type playlistMetrics struct {
	operations metric.Int64Counter
}

func newPlaylistMetrics() *playlistMetrics {
	counter, err := otel.Meter(meterName).Int64Counter(
		"playlist.operations",
		metric.WithDescription("Playlist store operations by outcome"),
	)
	if err != nil {
		counter, _ = noop.NewMeterProvider().Meter(meterName).Int64Counter("playlist.operations")
	}
	return &playlistMetrics{operations: counter}
}

func (m *playlistMetrics) record(op, result string) {
	m.operations.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("result", result),
	))
}
