package starterbot

import (
	"github.com/slack-go/slack"
)

// messagePoster is implemented by any value that has the PostMessage method.
//
// slack.Client implements this interface
type messagePoster interface {
	PostMessage(channelID string, options ...slack.MsgOption) (rChannelID string, rTimestamp string, err error)
}

// conversationOpener is implemented by any value that has the OpenConversation method.
//
// slack.Client implements this interface
type conversationOpener interface {
	OpenConversation(params *slack.OpenConversationParameters) (channel *slack.Channel, noOp bool, alreadyOpen bool, err error)
}

// chatDriver encompasses the messagePoster and conversationOpener interfaces
type chatDriver interface {
	messagePoster
	conversationOpener
}

// slackAPI encompasses the web api calls made by a Bot.
//
// slack.Client implements this interface
type slackAPI interface {
	chatDriver
	MetadataFinder
}

// rtmConnection is implemented by any value that manages a realtime connection.
//
// slack.RTM implements this interface
type rtmConnection interface {
	ManageConnection()
	Disconnect() error
}

// connector opens a realtime connection for a token, returning the web api client along with the
// connection and the channel its events are delivered on
type connector func(token string) (api slackAPI, conn rtmConnection, events <-chan slack.RTMEvent)
