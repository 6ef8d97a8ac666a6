package notifier

import (
	"context"
	"fmt"
	"html"
	"log"

	"apthire/config"
	"apthire/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramAlerter posts new-lead alerts to the admin chat. A zero value
// (no bot) silently drops alerts.
type TelegramAlerter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramAlerter connects to the bot API when a token is configured.
func NewTelegramAlerter(cfg config.TelegramConfig) (*TelegramAlerter, error) {
	if cfg.Token == "" {
		log.Println("TelegramAlerter: No bot token configured, lead alerts disabled")
		return &TelegramAlerter{}, nil
	}
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &TelegramAlerter{bot: bot, chatID: cfg.ChatID}, nil
}

// NotifyLead sends a short summary of the lead.
func (t *TelegramAlerter) NotifyLead(ctx context.Context, lead *models.Lead) error {
	if t.bot == nil {
		return nil
	}

	msg := tgbotapi.NewMessage(t.chatID, leadText(lead))
	msg.ParseMode = tgbotapi.ModeHTML

	done := make(chan error, 1)
	go func() {
		_, err := t.bot.Send(msg)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send telegram alert: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("send telegram alert: %w", ctx.Err())
	}
}

func leadText(lead *models.Lead) string {
	return fmt.Sprintf("<b>New lead</b>\n%s &lt;%s&gt;\n\n%s",
		html.EscapeString(lead.Name),
		html.EscapeString(lead.Email),
		html.EscapeString(lead.Message),
	)
}
