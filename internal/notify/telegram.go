package notify

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier дублирует уведомления в телеграм тем, у кого
// привязан чат. Служебные события администратору сюда не идут.
type TelegramNotifier struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramNotifier(token string) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &TelegramNotifier{bot: bot}, nil
}

func (n *TelegramNotifier) Notify(_ context.Context, msg Message) error {
	if msg.TelegramID == 0 {
		return nil
	}

	text := renderTelegram(msg)
	if text == "" {
		return nil
	}

	if _, err := n.bot.Send(tgbotapi.NewMessage(msg.TelegramID, text)); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}

	slog.Info("telegram_sent", "kind", msg.Kind, "chat_id", msg.TelegramID)
	return nil
}

func renderTelegram(msg Message) string {
	p := msg.Payload

	switch msg.Kind {
	case KindBookingConfirmed:
		return fmt.Sprintf("Бронь подтверждена: %s, тренер %s. %s", p["service"], p["trainer"], p["slot"])
	case KindBookingUpdated:
		return fmt.Sprintf("Бронь перенесена. Новый слот: %s", p["slot"])
	case KindBookingCanceled:
		return "Ваша бронь отменена."
	case KindBookingRestored:
		return fmt.Sprintf("Бронь восстановлена: %s", p["slot"])
	}

	// welcome / admin_new_user уходят только почтой.
	return ""
}
