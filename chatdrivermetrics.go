package starterbot

// DO NOT EDIT!
// This code is generated with http://github.com/hexdigest/gowrap tool
// using opentelemetry.template template

//go:generate gowrap gen -p github.com/alexandre-normand/starterbot -i chatDriver -t opentelemetry.template -o chatdrivermetrics.go

import (
	"context"
	"time"
	"unicode"

	"github.com/slack-go/slack"
	"go.opentelemetry.io/otel/label"
	"go.opentelemetry.io/otel/api/metric"
)

// chatDriverWithTelemetry implements chatDriver interface with all methods wrapped
// with open telemetry metrics
type chatDriverWithTelemetry struct {
	base                     chatDriver
	methodCounters           map[string]metric.BoundInt64Counter
	errCounters              map[string]metric.BoundInt64Counter
	methodTimeValueRecorders map[string]metric.BoundInt64ValueRecorder
}

// newChatDriverWithTelemetry returns an instance of the chatDriver decorated with open telemetry timing and count metrics
func newChatDriverWithTelemetry(base chatDriver, name string, meter metric.Meter) chatDriverWithTelemetry {
	return chatDriverWithTelemetry{
		base:                     base,
		methodCounters:           newChatDriverMethodCounters("Calls", name, meter),
		errCounters:              newChatDriverMethodCounters("Errors", name, meter),
		methodTimeValueRecorders: newChatDriverMethodTimeValueRecorders(name, meter),
	}
}

func newChatDriverMethodTimeValueRecorders(appName string, meter metric.Meter) (boundTimeValueRecorders map[string]metric.BoundInt64ValueRecorder) {
	boundTimeValueRecorders = make(map[string]metric.BoundInt64ValueRecorder)
	mt := metric.Must(meter)

	nOpenConversationValRecorder := []rune("chatDriver_OpenConversation_ProcessingTimeMillis")
	nOpenConversationValRecorder[0] = unicode.ToLower(nOpenConversationValRecorder[0])
	mOpenConversation := mt.NewInt64ValueRecorder(string(nOpenConversationValRecorder))
	boundTimeValueRecorders["OpenConversation"] = mOpenConversation.Bind(label.String("name", appName))

	nPostMessageValRecorder := []rune("chatDriver_PostMessage_ProcessingTimeMillis")
	nPostMessageValRecorder[0] = unicode.ToLower(nPostMessageValRecorder[0])
	mPostMessage := mt.NewInt64ValueRecorder(string(nPostMessageValRecorder))
	boundTimeValueRecorders["PostMessage"] = mPostMessage.Bind(label.String("name", appName))

	return boundTimeValueRecorders
}

func newChatDriverMethodCounters(suffix string, appName string, meter metric.Meter) (boundCounters map[string]metric.BoundInt64Counter) {
	boundCounters = make(map[string]metric.BoundInt64Counter)
	mt := metric.Must(meter)

	nOpenConversationCounter := []rune("chatDriver_OpenConversation_" + suffix)
	nOpenConversationCounter[0] = unicode.ToLower(nOpenConversationCounter[0])
	cOpenConversation := mt.NewInt64Counter(string(nOpenConversationCounter))
	boundCounters["OpenConversation"] = cOpenConversation.Bind(label.String("name", appName))

	nPostMessageCounter := []rune("chatDriver_PostMessage_" + suffix)
	nPostMessageCounter[0] = unicode.ToLower(nPostMessageCounter[0])
	cPostMessage := mt.NewInt64Counter(string(nPostMessageCounter))
	boundCounters["PostMessage"] = cPostMessage.Bind(label.String("name", appName))

	return boundCounters
}

// OpenConversation implements chatDriver
func (_d chatDriverWithTelemetry) OpenConversation(params *slack.OpenConversationParameters) (channel *slack.Channel, noOp bool, alreadyOpen bool, err error) {
	_since := time.Now()
	defer func() {
		if err != nil {
			errCounter := _d.errCounters["OpenConversation"]
			errCounter.Add(context.Background(), 1)
		}

		methodCounter := _d.methodCounters["OpenConversation"]
		methodCounter.Add(context.Background(), 1)

		methodTimeMeasure := _d.methodTimeValueRecorders["OpenConversation"]
		methodTimeMeasure.Record(context.Background(), time.Since(_since).Milliseconds())
	}()
	return _d.base.OpenConversation(params)
}

// PostMessage implements chatDriver
func (_d chatDriverWithTelemetry) PostMessage(channelID string, options ...slack.MsgOption) (rChannelID string, rTimestamp string, err error) {
	_since := time.Now()
	defer func() {
		if err != nil {
			errCounter := _d.errCounters["PostMessage"]
			errCounter.Add(context.Background(), 1)
		}

		methodCounter := _d.methodCounters["PostMessage"]
		methodCounter.Add(context.Background(), 1)

		methodTimeMeasure := _d.methodTimeValueRecorders["PostMessage"]
		methodTimeMeasure.Record(context.Background(), time.Since(_since).Milliseconds())
	}()
	return _d.base.PostMessage(channelID, options...)
}
