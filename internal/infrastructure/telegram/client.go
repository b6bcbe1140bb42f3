package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"pricebot/internal/application"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const notModified = "message is not modified"

var (
	_ application.Messenger = (*Client)(nil)
	_ application.Pinner    = (*Client)(nil)
)

// Client is the Bot API messenger for a single chat.
type Client struct {
	bot  *tgbotapi.BotAPI
	chat Chat
}

// New builds a client without calling getMe, so a Telegram outage at boot
// does not keep the loop from starting.
func New(token, endpoint string, chat Chat, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	bot := &tgbotapi.BotAPI{Token: token, Client: hc, Buffer: 1}
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	bot.SetAPIEndpoint(endpoint)
	return &Client{bot: bot, chat: chat}
}

func (c *Client) Send(_ context.Context, text string) (string, error) {
	msg := tgbotapi.MessageConfig{
		BaseChat:              tgbotapi.BaseChat{ChatID: c.chat.ID, ChannelUsername: c.chat.Username},
		Text:                  text,
		ParseMode:             tgbotapi.ModeHTML,
		DisableWebPagePreview: true,
	}
	sent, err := c.bot.Send(msg)
	if err != nil {
		return "", fmt.Errorf("telegram: sendMessage: %w", err)
	}
	return strconv.Itoa(sent.MessageID), nil
}

// Edit treats "message is not modified" as success: the chat already shows text.
func (c *Client) Edit(_ context.Context, id, text string) error {
	mid, err := messageID(id)
	if err != nil {
		return err
	}
	edit := tgbotapi.EditMessageTextConfig{
		BaseEdit:              tgbotapi.BaseEdit{ChatID: c.chat.ID, ChannelUsername: c.chat.Username, MessageID: mid},
		Text:                  text,
		ParseMode:             tgbotapi.ModeHTML,
		DisableWebPagePreview: true,
	}
	if _, err := c.bot.Request(edit); err != nil {
		if IsNotModified(err) {
			return nil
		}
		return fmt.Errorf("telegram: editMessageText: %w", err)
	}
	return nil
}

func (c *Client) Delete(_ context.Context, id string) error {
	mid, err := messageID(id)
	if err != nil {
		return err
	}
	del := tgbotapi.DeleteMessageConfig{ChatID: c.chat.ID, ChannelUsername: c.chat.Username, MessageID: mid}
	if _, err := c.bot.Request(del); err != nil {
		return fmt.Errorf("telegram: deleteMessage: %w", err)
	}
	return nil
}

func (c *Client) Pin(_ context.Context, id string) error {
	mid, err := messageID(id)
	if err != nil {
		return err
	}
	pin := tgbotapi.PinChatMessageConfig{
		ChatID:              c.chat.ID,
		ChannelUsername:     c.chat.Username,
		MessageID:           mid,
		DisableNotification: true,
	}
	if _, err := c.bot.Request(pin); err != nil {
		return fmt.Errorf("telegram: pinChatMessage: %w", err)
	}
	return nil
}

func (c *Client) Unpin(_ context.Context, id string) error {
	mid, err := messageID(id)
	if err != nil {
		return err
	}
	unpin := tgbotapi.UnpinChatMessageConfig{ChatID: c.chat.ID, ChannelUsername: c.chat.Username, MessageID: mid}
	if _, err := c.bot.Request(unpin); err != nil {
		return fmt.Errorf("telegram: unpinChatMessage: %w", err)
	}
	return nil
}

// IsNotModified reports a Bot API rejection of an edit with identical content.
func IsNotModified(err error) bool {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return strings.Contains(apiErr.Message, notModified)
	}
	return false
}

func messageID(id string) (int, error) {
	mid, err := strconv.Atoi(id)
	if err != nil || mid <= 0 {
		return 0, fmt.Errorf("telegram: invalid message id %q", id)
	}
	return mid, nil
}
