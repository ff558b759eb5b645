package store

// DO NOT EDIT!
// This code is generated with http://github.com/hexdigest/gowrap tool
// using ../opentelemetry.template template

//go:generate gowrap gen -p github.com/alexandre-normand/starterbot/store -i SiloStringStorer -t ../opentelemetry.template -o storermetrics.go

import (
	"context"
	"time"
	"unicode"

	"go.opentelemetry.io/otel/label"
	"go.opentelemetry.io/otel/api/metric"
)

// SiloStringStorerWithTelemetry implements SiloStringStorer interface with all methods wrapped
// with open telemetry metrics
type SiloStringStorerWithTelemetry struct {
	base                     SiloStringStorer
	methodCounters           map[string]metric.BoundInt64Counter
	errCounters              map[string]metric.BoundInt64Counter
	methodTimeValueRecorders map[string]metric.BoundInt64ValueRecorder
}

// NewSiloStringStorerWithTelemetry returns an instance of the SiloStringStorer decorated with open telemetry timing and count metrics
func NewSiloStringStorerWithTelemetry(base SiloStringStorer, name string, meter metric.Meter) SiloStringStorerWithTelemetry {
	return SiloStringStorerWithTelemetry{
		base:                     base,
		methodCounters:           newSiloStringStorerMethodCounters("Calls", name, meter),
		errCounters:              newSiloStringStorerMethodCounters("Errors", name, meter),
		methodTimeValueRecorders: newSiloStringStorerMethodTimeValueRecorders(name, meter),
	}
}

func newSiloStringStorerMethodTimeValueRecorders(appName string, meter metric.Meter) (boundTimeValueRecorders map[string]metric.BoundInt64ValueRecorder) {
	boundTimeValueRecorders = make(map[string]metric.BoundInt64ValueRecorder)
	mt := metric.Must(meter)

	nCloseValRecorder := []rune("SiloStringStorer_Close_ProcessingTimeMillis")
	nCloseValRecorder[0] = unicode.ToLower(nCloseValRecorder[0])
	mClose := mt.NewInt64ValueRecorder(string(nCloseValRecorder))
	boundTimeValueRecorders["Close"] = mClose.Bind(label.String("name", appName))

	nGetSiloStringValRecorder := []rune("SiloStringStorer_GetSiloString_ProcessingTimeMillis")
	nGetSiloStringValRecorder[0] = unicode.ToLower(nGetSiloStringValRecorder[0])
	mGetSiloString := mt.NewInt64ValueRecorder(string(nGetSiloStringValRecorder))
	boundTimeValueRecorders["GetSiloString"] = mGetSiloString.Bind(label.String("name", appName))

	nPutSiloStringValRecorder := []rune("SiloStringStorer_PutSiloString_ProcessingTimeMillis")
	nPutSiloStringValRecorder[0] = unicode.ToLower(nPutSiloStringValRecorder[0])
	mPutSiloString := mt.NewInt64ValueRecorder(string(nPutSiloStringValRecorder))
	boundTimeValueRecorders["PutSiloString"] = mPutSiloString.Bind(label.String("name", appName))

	nScanSiloValRecorder := []rune("SiloStringStorer_ScanSilo_ProcessingTimeMillis")
	nScanSiloValRecorder[0] = unicode.ToLower(nScanSiloValRecorder[0])
	mScanSilo := mt.NewInt64ValueRecorder(string(nScanSiloValRecorder))
	boundTimeValueRecorders["ScanSilo"] = mScanSilo.Bind(label.String("name", appName))

	return boundTimeValueRecorders
}

func newSiloStringStorerMethodCounters(suffix string, appName string, meter metric.Meter) (boundCounters map[string]metric.BoundInt64Counter) {
	boundCounters = make(map[string]metric.BoundInt64Counter)
	mt := metric.Must(meter)

	nCloseCounter := []rune("SiloStringStorer_Close_" + suffix)
	nCloseCounter[0] = unicode.ToLower(nCloseCounter[0])
	cClose := mt.NewInt64Counter(string(nCloseCounter))
	boundCounters["Close"] = cClose.Bind(label.String("name", appName))

	nGetSiloStringCounter := []rune("SiloStringStorer_GetSiloString_" + suffix)
	nGetSiloStringCounter[0] = unicode.ToLower(nGetSiloStringCounter[0])
	cGetSiloString := mt.NewInt64Counter(string(nGetSiloStringCounter))
	boundCounters["GetSiloString"] = cGetSiloString.Bind(label.String("name", appName))

	nPutSiloStringCounter := []rune("SiloStringStorer_PutSiloString_" + suffix)
	nPutSiloStringCounter[0] = unicode.ToLower(nPutSiloStringCounter[0])
	cPutSiloString := mt.NewInt64Counter(string(nPutSiloStringCounter))
	boundCounters["PutSiloString"] = cPutSiloString.Bind(label.String("name", appName))

	nScanSiloCounter := []rune("SiloStringStorer_ScanSilo_" + suffix)
	nScanSiloCounter[0] = unicode.ToLower(nScanSiloCounter[0])
	cScanSilo := mt.NewInt64Counter(string(nScanSiloCounter))
	boundCounters["ScanSilo"] = cScanSilo.Bind(label.String("name", appName))

	return boundCounters
}

// Close implements SiloStringStorer
func (_d SiloStringStorerWithTelemetry) Close() (err error) {
	_since := time.Now()
	defer func() {
		if err != nil {
			errCounter := _d.errCounters["Close"]
			errCounter.Add(context.Background(), 1)
		}

		methodCounter := _d.methodCounters["Close"]
		methodCounter.Add(context.Background(), 1)

		methodTimeMeasure := _d.methodTimeValueRecorders["Close"]
		methodTimeMeasure.Record(context.Background(), time.Since(_since).Milliseconds())
	}()
	return _d.base.Close()
}

// GetSiloString implements SiloStringStorer
func (_d SiloStringStorerWithTelemetry) GetSiloString(silo string, key string) (value string, err error) {
	_since := time.Now()
	defer func() {
		if err != nil && !IsNotFound(err) {
			errCounter := _d.errCounters["GetSiloString"]
			errCounter.Add(context.Background(), 1)
		}

		methodCounter := _d.methodCounters["GetSiloString"]
		methodCounter.Add(context.Background(), 1)

		methodTimeMeasure := _d.methodTimeValueRecorders["GetSiloString"]
		methodTimeMeasure.Record(context.Background(), time.Since(_since).Milliseconds())
	}()
	return _d.base.GetSiloString(silo, key)
}

// PutSiloString implements SiloStringStorer
func (_d SiloStringStorerWithTelemetry) PutSiloString(silo string, key string, value string) (err error) {
	_since := time.Now()
	defer func() {
		if err != nil {
			errCounter := _d.errCounters["PutSiloString"]
			errCounter.Add(context.Background(), 1)
		}

		methodCounter := _d.methodCounters["PutSiloString"]
		methodCounter.Add(context.Background(), 1)

		methodTimeMeasure := _d.methodTimeValueRecorders["PutSiloString"]
		methodTimeMeasure.Record(context.Background(), time.Since(_since).Milliseconds())
	}()
	return _d.base.PutSiloString(silo, key, value)
}

// ScanSilo implements SiloStringStorer
func (_d SiloStringStorerWithTelemetry) ScanSilo(silo string) (entries map[string]string, err error) {
	_since := time.Now()
	defer func() {
		if err != nil {
			errCounter := _d.errCounters["ScanSilo"]
			errCounter.Add(context.Background(), 1)
		}

		methodCounter := _d.methodCounters["ScanSilo"]
		methodCounter.Add(context.Background(), 1)

		methodTimeMeasure := _d.methodTimeValueRecorders["ScanSilo"]
		methodTimeMeasure.Record(context.Background(), time.Since(_since).Milliseconds())
	}()
	return _d.base.ScanSilo(silo)
}
