package telegram

import (
	"context"
	"sync"
	"time"

	"trading-report/config"
	"trading-report/pkg/logger"

	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"
)

type userLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimitedSender serializes outgoing bot traffic under the Telegram API
// limits: one global bucket plus one bucket per user.
type RateLimitedSender struct {
	cfg           *config.TelegramConfig
	log           *logger.Logger
	globalLimiter *rate.Limiter
	userLimiters  map[int64]*userLimiterEntry
	bot           *telebot.Bot
	mu            sync.Mutex
	wg            sync.WaitGroup
}

func NewRateLimitedSender(cfg *config.TelegramConfig, log *logger.Logger, bot *telebot.Bot) *RateLimitedSender {
	return &RateLimitedSender{
		cfg:           cfg,
		log:           log,
		bot:           bot,
		globalLimiter: rate.NewLimiter(rate.Limit(cfg.MaxGlobalRequestPerSecond), cfg.MaxGlobalRequestPerSecond),
		userLimiters:  make(map[int64]*userLimiterEntry),
	}
}

func (t *RateLimitedSender) Send(ctx context.Context, c telebot.Context, what interface{}, opts ...interface{}) (*telebot.Message, error) {
	if err := t.checkRateLimit(ctx, c.Sender().ID); err != nil {
		return nil, err
	}
	return t.bot.Send(c.Chat(), what, opts...)
}

func (t *RateLimitedSender) SendMessageUser(ctx context.Context, message string, chatID int64, opts ...interface{}) error {
	if err := t.checkRateLimit(ctx, chatID); err != nil {
		return err
	}
	_, err := t.bot.Send(&telebot.User{ID: chatID}, message, opts...)
	return err
}

func (t *RateLimitedSender) getUserLimiter(userID int64) *userLimiterEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	if entry, exists := t.userLimiters[userID]; exists {
		entry.lastAccess = time.Now()
		return entry
	}

	entry := &userLimiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(t.cfg.MaxUserRequestPerSecond), t.cfg.MaxUserRequestPerSecond),
		lastAccess: time.Now(),
	}
	t.userLimiters[userID] = entry
	return entry
}

func (t *RateLimitedSender) checkRateLimit(ctx context.Context, senderID int64) error {
	userLimiter := t.getUserLimiter(senderID)

	if err := t.globalLimiter.Wait(ctx); err != nil {
		t.log.ErrorContext(ctx, "Failed to wait for global rate limit", logger.ErrorField(err))
		return err
	}
	if err := userLimiter.limiter.Wait(ctx); err != nil {
		t.log.ErrorContext(ctx, "Failed to wait for user rate limit", logger.ErrorField(err))
		return err
	}
	return nil
}

// StartCleanupExpired drops per-user limiters that have been idle longer than
// the configured expiry. Runs until ctx is done.
func (t *RateLimitedSender) StartCleanupExpired(ctx context.Context) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		ticker := time.NewTicker(t.cfg.RateLimitCleanupDuration)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				t.log.Info("Stopping Telegram rate limiter cleanup")
				return
			case <-ticker.C:
				t.mu.Lock()
				now := time.Now()
				for userID, entry := range t.userLimiters {
					if now.Sub(entry.lastAccess) > t.cfg.RatelimitExpireDuration {
						delete(t.userLimiters, userID)
					}
				}
				t.mu.Unlock()
			}
		}
	}()
}

func (t *RateLimitedSender) StopCleanupExpired() {
	t.wg.Wait()
	t.log.Info("Telegram rate limiter stopped")
}
