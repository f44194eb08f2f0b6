// Package channels contains the messaging front-ends. Each channel receives
// text plus a conversation identity, hands it to the agent, and sends the
// reply back; no decision logic lives here.
package channels

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"github.com/factybot/facty/pkg/agent"
	"github.com/factybot/facty/pkg/logger"
)

// TelegramChannel runs the bot over long polling. Updates are handled one at
// a time, so replies within a chat are never reordered.
type TelegramChannel struct {
	bot   *telego.Bot
	agent *agent.Agent
}

func NewTelegramChannel(token string, a *agent.Agent) (*TelegramChannel, error) {
	bot, err := telego.NewBot(token, telego.WithDefaultLogger(false, true))
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}
	return &TelegramChannel{bot: bot, agent: a}, nil
}

// Run polls for updates until the context is cancelled.
func (c *TelegramChannel) Run(ctx context.Context) error {
	updates, err := c.bot.UpdatesViaLongPolling(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting long polling: %w", err)
	}

	logger.Info("telegram").Msg("bot started, waiting for messages")

	for update := range updates {
		if update.Message == nil || update.Message.Text == "" {
			continue
		}
		c.handleMessage(ctx, update.Message)
	}
	return nil
}

func (c *TelegramChannel) handleMessage(ctx context.Context, msg *telego.Message) {
	identity := "telegram:" + strconv.FormatInt(msg.Chat.ID, 10)
	text := strings.TrimSpace(msg.Text)

	var reply string
	switch {
	case strings.HasPrefix(text, "/start"):
		reply = c.agent.Start(identity)
	case strings.HasPrefix(text, "/help"):
		reply = agent.HelpText
	case strings.HasPrefix(text, "/stats"):
		reply = c.agent.StatsText(identity)
	case strings.HasPrefix(text, "/reset"):
		reply = c.agent.Reset(identity)
	default:
		reply = c.agent.HandleMessage(ctx, "telegram", identity, text)
	}

	if _, err := c.bot.SendMessage(ctx, tu.Message(tu.ID(msg.Chat.ID), reply)); err != nil {
		logger.Error("telegram").
			Int64("chat_id", msg.Chat.ID).
			Err(err).
			Msg("sending reply")
	}
}
