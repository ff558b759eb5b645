package starterbot

// Event types dispatched to handlers. Message events are classified from the bot's point of view
const (
	// AmbientEvent is a message on a channel that doesn't mention the bot
	AmbientEvent = "ambient"
	// MentionEvent is a message on a channel that mentions the bot somewhere other than at the start
	MentionEvent = "mention"
	// DirectMentionEvent is a message on a channel that starts with a mention of the bot
	DirectMentionEvent = "direct_mention"
	// DirectMessageEvent is a message sent to the bot in a direct conversation
	DirectMessageEvent = "direct_message"
	// BotChannelJoinEvent is the bot joining a channel
	BotChannelJoinEvent = "bot_channel_join"
	// UserChannelJoinEvent is any other user joining a channel the bot is a member of
	UserChannelJoinEvent = "user_channel_join"
	// ChannelJoinedEvent is slack's notification that the bot now is a member of a channel
	ChannelJoinedEvent = "channel_joined"
	// RTMOpenEvent is the realtime connection being established
	RTMOpenEvent = "rtm_open"
	// RTMCloseEvent is the realtime connection being closed
	RTMCloseEvent = "rtm_close"
)

// messageEventTypes are the event types that hears handlers can listen to
var messageEventTypes = map[string]bool{
	AmbientEvent:       true,
	MentionEvent:       true,
	DirectMentionEvent: true,
	DirectMessageEvent: true,
}

// Event is an inbound slack event normalized for middleware and handlers
type Event struct {
	// Type is the normalized event type (see the event type constants)
	Type string

	// User is the id of the user the event is about or from. Empty when the event has no user
	User string

	// Channel is the id of the channel the event happened on. Empty when the event has no channel
	Channel string

	// Text of a message. For direct mentions, the leading mention of the bot is stripped
	Text string

	// Timestamp of a message
	Timestamp string

	// Match holds the submatches of the pattern that triggered a hears handler
	Match []string

	// Data is the original realtime payload
	Data interface{}
}
