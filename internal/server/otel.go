package server

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/Sai-Pranav-tech/Future-Sportler/internal/server"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
