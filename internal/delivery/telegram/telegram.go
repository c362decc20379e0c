package telegram

import (
	"context"
	"time"

	"gopkg.in/telebot.v3"

	"trading-report/config"
	"trading-report/internal/service"
	"trading-report/pkg/logger"
	"trading-report/pkg/telegram"
)

// TelegramBotHandler exposes report generation over a Telegram bot. Long-poll
// based, no webhook endpoint.
type TelegramBotHandler struct {
	ctx      context.Context
	cfg      *config.Config
	bot      *telebot.Bot
	log      *logger.Logger
	telegram *telegram.RateLimitedSender
	service  *service.Service
}

func NewTelegramBotHandler(
	ctx context.Context,
	cfg *config.Config,
	log *logger.Logger,
	bot *telebot.Bot,
	sender *telegram.RateLimitedSender,
	service *service.Service) *TelegramBotHandler {
	return &TelegramBotHandler{
		ctx:      ctx,
		cfg:      cfg,
		bot:      bot,
		log:      log,
		telegram: sender,
		service:  service,
	}
}

func (t *TelegramBotHandler) Start() {
	t.log.Info("Starting Telegram bot...")

	t.RegisterHandlers()
	go t.bot.Start()
}

func (t *TelegramBotHandler) Stop() {
	t.log.Info("Stopping Telegram bot...")

	ctx, cancel := context.WithTimeout(t.ctx, 10*time.Second)
	defer cancel()

	stopDone := make(chan error, 1)
	go func() {
		t.bot.Stop()
		stopDone <- nil
	}()

	select {
	case <-stopDone:
		t.log.Info("Telegram bot stopped successfully")
	case <-ctx.Done():
		t.log.Warn("Timeout while stopping bot, forcing shutdown")
	}
}

func (t *TelegramBotHandler) WithContext(handler func(ctx context.Context, c telebot.Context) error) func(c telebot.Context) error {
	return func(c telebot.Context) error {
		ctx, cancel := context.WithTimeout(t.ctx, 5*time.Minute)
		defer cancel()

		return handler(ctx, c)
	}
}

func (t *TelegramBotHandler) RegisterHandlers() {
	t.bot.Handle("/start", t.WithContext(t.handleStart))
	t.bot.Handle("/report", t.WithContext(t.handleReport))
}

func (t *TelegramBotHandler) handleStart(ctx context.Context, c telebot.Context) error {
	message := `👋 <b>Trading report bot</b>

Commands:
📊 /report - Generate a performance report for the configured lookback window
🔁 /start - Show this message again`

	_, err := t.telegram.Send(ctx, c, message, telebot.ModeHTML)
	return err
}
