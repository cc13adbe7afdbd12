package telegram

import (
	"io"

	"gopkg.in/telebot.v3"
)

// Client defines an interface for delivering messages and report files via a Telegram bot.
// This helps in decoupling the application logic from the specific bot library.
type Client interface {
	SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error
	SendDocument(recipientChatID int64, fileName string, content io.Reader, caption string) error
}
