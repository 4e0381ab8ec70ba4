package worker

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/pitchside/engine/internal/worker"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
