package error_notificator

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Vovarama1992/voice_translator/internal/config"
)

// maxDetails: лимит телеграма 4096, оставляем запас под шапку
const maxDetails = 3500

const sendTimeout = 10 * time.Second

type Infra struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewInfra: bot == nil → только лог.
func NewInfra(bot *tgbotapi.BotAPI, chatID int64) *Infra {
	return &Infra{bot: bot, chatID: chatID}
}

func NewTelegramInfra(cfg config.TelegramConfig) (*Infra, error) {
	if cfg.Token == "" || cfg.ChatID == 0 {
		log.Println("[error_notificator] telegram alerts disabled")
		return NewInfra(nil, 0), nil
	}

	bot, err := tgbotapi.NewBotAPIWithClient(cfg.Token, tgbotapi.APIEndpoint, &http.Client{Timeout: sendTimeout})
	if err != nil {
		return nil, fmt.Errorf("init telegram alert bot: %w", err)
	}
	log.Printf("[error_notificator] alerts via @%s → chat %d", bot.Self.UserName, cfg.ChatID)

	return NewInfra(bot, cfg.ChatID), nil
}

func (i *Infra) Notify(ctx context.Context, err error, details string) error {
	if i.bot == nil {
		log.Printf("[error_notificator] %v (%s)", err, details)
		return nil
	}

	if r := []rune(details); len(r) > maxDetails {
		details = string(r[:maxDetails]) + "…"
	}

	text := fmt.Sprintf(
		"❗ Ошибка в voice_translator\n\nОшибка: %v\n\nДетали: %s",
		err,
		details,
	)

	if _, sendErr := i.bot.Send(tgbotapi.NewMessage(i.chatID, text)); sendErr != nil {
		log.Printf("[error_notificator] send fail: %v", sendErr)
		return sendErr
	}

	return nil
}
