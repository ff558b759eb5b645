// Package capture provides test doubles recording what a bot sends to slack
package capture

import (
	"fmt"
	"github.com/slack-go/slack"
	"sync"
)

// ChatCaptor holds messages sent to it keyed by channel ID along with the users direct
// conversations were opened with. It is safe for concurrent use
type ChatCaptor struct {
	mu                  sync.Mutex
	sentMessages        map[string][]string
	openedConversations []string
}

// NewChatCaptor returns a new initialized ChatCaptor instance
func NewChatCaptor() (cc *ChatCaptor) {
	cc = new(ChatCaptor)
	cc.sentMessages = make(map[string][]string)
	cc.openedConversations = make([]string, 0)

	return cc
}

// PostMessage captures the text of a message along with the channel it's sent to. The returned timestamp
// is the position of the message on its channel
func (cc *ChatCaptor) PostMessage(channelID string, options ...slack.MsgOption) (rChannelID string, rTimestamp string, err error) {
	_, values, err := slack.UnsafeApplyMsgOptions("", channelID, "", options...)
	if err != nil {
		return "", "", err
	}

	cc.mu.Lock()
	defer cc.mu.Unlock()

	cc.sentMessages[channelID] = append(cc.sentMessages[channelID], values.Get("text"))
	return channelID, fmt.Sprintf("%d.000000", len(cc.sentMessages[channelID])), nil
}

// OpenConversation captures the users a direct conversation is opened with and returns a direct
// conversation with an id formed of D followed by the ids of the users
func (cc *ChatCaptor) OpenConversation(params *slack.OpenConversationParameters) (channel *slack.Channel, noOp bool, alreadyOpen bool, err error) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	channel = new(slack.Channel)
	channel.ID = "D"
	for _, u := range params.Users {
		cc.openedConversations = append(cc.openedConversations, u)
		channel.ID = channel.ID + u
	}

	return channel, false, false, nil
}

// Messages returns the messages sent to a channel, in order
func (cc *ChatCaptor) Messages(channelID string) (messages []string) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	return append([]string{}, cc.sentMessages[channelID]...)
}

// OpenedConversations returns the users direct conversations were opened with, in order
func (cc *ChatCaptor) OpenedConversations() (userIDs []string) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	return append([]string{}, cc.openedConversations...)
}
