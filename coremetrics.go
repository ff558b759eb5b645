package starterbot

import (
	"context"
	"go.opentelemetry.io/otel/label"
	"go.opentelemetry.io/otel/api/metric"
	"time"
)

// instrumenter holds data for core instrumentation
type instrumenter struct {
	appName     string
	coreMetrics coreMetrics
	meter       metric.Meter
}

// coreMetrics holds core starterbot metrics
type coreMetrics struct {
	eventsSeen                   metric.BoundInt64Counter
	eventsDispatched             metric.BoundInt64Counter
	eventProcessingLatencyMillis metric.BoundInt64ValueRecorder
	eventDispatchLatencyMillis   metric.BoundInt64ValueRecorder
	slackLatencyMillis           metric.BoundInt64ValueRecorder
}

// newInstrumenter creates a new core instrumenter
func newInstrumenter(appName string, meter metric.Meter) (ins *instrumenter) {
	ins = new(instrumenter)

	defaultLabel := label.String("name", appName)
	mt := metric.Must(meter)

	ins.coreMetrics = coreMetrics{
		eventsSeen:                   mt.NewInt64Counter("eventsSeen").Bind(defaultLabel),
		eventsDispatched:             mt.NewInt64Counter("eventsDispatched").Bind(defaultLabel),
		eventProcessingLatencyMillis: mt.NewInt64ValueRecorder("eventProcessingLatencyMillis").Bind(defaultLabel),
		eventDispatchLatencyMillis:   mt.NewInt64ValueRecorder("eventDispatchLatencyMillis").Bind(defaultLabel),
		slackLatencyMillis:           mt.NewInt64ValueRecorder("slackLatencyMillis").Bind(defaultLabel),
	}

	ins.appName = appName
	ins.meter = meter
	return ins
}

// recordSlackLatency records a latency report from the realtime connection
func (ins *instrumenter) recordSlackLatency(d time.Duration) {
	ins.coreMetrics.slackLatencyMillis.Record(context.Background(), d.Milliseconds())
}

type timed func()

// measure returns the execution duration of a timed function
func measure(operation timed) (d time.Duration) {
	before := time.Now()

	operation()

	return time.Now().Sub(before)
}
