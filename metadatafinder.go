package starterbot

import (
	"github.com/slack-go/slack"
)

// UserInfoFinder defines the interface for finding a slack user's info
//
// slack.Client implements this interface
type UserInfoFinder interface {
	GetUserInfo(userID string) (user *slack.User, err error)
}

// ChannelInfoFinder defines the interface for finding a slack conversation's info
//
// slack.Client implements this interface
type ChannelInfoFinder interface {
	GetConversationInfo(channelID string, includeLocale bool) (channel *slack.Channel, err error)
}

// MetadataFinder is implemented by any value that can find both user and channel info. A Bot
// implements this interface
type MetadataFinder interface {
	UserInfoFinder
	ChannelInfoFinder
}
