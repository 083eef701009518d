package adapter

import "context"

// MessageSender is the outbound channel of one tenant bot.
type MessageSender interface {
	// SendMessage sends text to a chat and returns the new message id.
	SendMessage(ctx context.Context, chatID int64, text string) (messageID int, err error)
	// EditMessage replaces the text of a previously sent message.
	EditMessage(ctx context.Context, chatID int64, messageID int, text string) error
}

// SenderResolver maps a bot key to that tenant's outbound channel.
// Resolution fails with domain.ErrUnknownTenant for unregistered keys.
type SenderResolver interface {
	Sender(botKey string) (MessageSender, error)
}
