package starterbot

// DO NOT EDIT!
// This code is generated with http://github.com/hexdigest/gowrap tool
// using opentelemetry.template template

//go:generate gowrap gen -p github.com/alexandre-normand/starterbot -i MetadataFinder -t opentelemetry.template -o metadatafindermetrics.go

import (
	"context"
	"time"
	"unicode"

	"github.com/slack-go/slack"
	"go.opentelemetry.io/otel/label"
	"go.opentelemetry.io/otel/api/metric"
)

// MetadataFinderWithTelemetry implements MetadataFinder interface with all methods wrapped
// with open telemetry metrics
type MetadataFinderWithTelemetry struct {
	base                     MetadataFinder
	methodCounters           map[string]metric.BoundInt64Counter
	errCounters              map[string]metric.BoundInt64Counter
	methodTimeValueRecorders map[string]metric.BoundInt64ValueRecorder
}

// NewMetadataFinderWithTelemetry returns an instance of the MetadataFinder decorated with open telemetry timing and count metrics
func NewMetadataFinderWithTelemetry(base MetadataFinder, name string, meter metric.Meter) MetadataFinderWithTelemetry {
	return MetadataFinderWithTelemetry{
		base:                     base,
		methodCounters:           newMetadataFinderMethodCounters("Calls", name, meter),
		errCounters:              newMetadataFinderMethodCounters("Errors", name, meter),
		methodTimeValueRecorders: newMetadataFinderMethodTimeValueRecorders(name, meter),
	}
}

func newMetadataFinderMethodTimeValueRecorders(appName string, meter metric.Meter) (boundTimeValueRecorders map[string]metric.BoundInt64ValueRecorder) {
	boundTimeValueRecorders = make(map[string]metric.BoundInt64ValueRecorder)
	mt := metric.Must(meter)

	nGetConversationInfoValRecorder := []rune("MetadataFinder_GetConversationInfo_ProcessingTimeMillis")
	nGetConversationInfoValRecorder[0] = unicode.ToLower(nGetConversationInfoValRecorder[0])
	mGetConversationInfo := mt.NewInt64ValueRecorder(string(nGetConversationInfoValRecorder))
	boundTimeValueRecorders["GetConversationInfo"] = mGetConversationInfo.Bind(label.String("name", appName))

	nGetUserInfoValRecorder := []rune("MetadataFinder_GetUserInfo_ProcessingTimeMillis")
	nGetUserInfoValRecorder[0] = unicode.ToLower(nGetUserInfoValRecorder[0])
	mGetUserInfo := mt.NewInt64ValueRecorder(string(nGetUserInfoValRecorder))
	boundTimeValueRecorders["GetUserInfo"] = mGetUserInfo.Bind(label.String("name", appName))

	return boundTimeValueRecorders
}

func newMetadataFinderMethodCounters(suffix string, appName string, meter metric.Meter) (boundCounters map[string]metric.BoundInt64Counter) {
	boundCounters = make(map[string]metric.BoundInt64Counter)
	mt := metric.Must(meter)

	nGetConversationInfoCounter := []rune("MetadataFinder_GetConversationInfo_" + suffix)
	nGetConversationInfoCounter[0] = unicode.ToLower(nGetConversationInfoCounter[0])
	cGetConversationInfo := mt.NewInt64Counter(string(nGetConversationInfoCounter))
	boundCounters["GetConversationInfo"] = cGetConversationInfo.Bind(label.String("name", appName))

	nGetUserInfoCounter := []rune("MetadataFinder_GetUserInfo_" + suffix)
	nGetUserInfoCounter[0] = unicode.ToLower(nGetUserInfoCounter[0])
	cGetUserInfo := mt.NewInt64Counter(string(nGetUserInfoCounter))
	boundCounters["GetUserInfo"] = cGetUserInfo.Bind(label.String("name", appName))

	return boundCounters
}

// GetConversationInfo implements MetadataFinder
func (_d MetadataFinderWithTelemetry) GetConversationInfo(channelID string, includeLocale bool) (channel *slack.Channel, err error) {
	_since := time.Now()
	defer func() {
		if err != nil {
			errCounter := _d.errCounters["GetConversationInfo"]
			errCounter.Add(context.Background(), 1)
		}

		methodCounter := _d.methodCounters["GetConversationInfo"]
		methodCounter.Add(context.Background(), 1)

		methodTimeMeasure := _d.methodTimeValueRecorders["GetConversationInfo"]
		methodTimeMeasure.Record(context.Background(), time.Since(_since).Milliseconds())
	}()
	return _d.base.GetConversationInfo(channelID, includeLocale)
}

// GetUserInfo implements MetadataFinder
func (_d MetadataFinderWithTelemetry) GetUserInfo(userID string) (user *slack.User, err error) {
	_since := time.Now()
	defer func() {
		if err != nil {
			errCounter := _d.errCounters["GetUserInfo"]
			errCounter.Add(context.Background(), 1)
		}

		methodCounter := _d.methodCounters["GetUserInfo"]
		methodCounter.Add(context.Background(), 1)

		methodTimeMeasure := _d.methodTimeValueRecorders["GetUserInfo"]
		methodTimeMeasure.Record(context.Background(), time.Since(_since).Milliseconds())
	}()
	return _d.base.GetUserInfo(userID)
}
