package bot

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"cleanbook/internal/bot/state_manager"
	"cleanbook/internal/storage/memory"
	"cleanbook/internal/storage/redis"
)

type StateManager interface {
	GetUserDialogState(ctx context.Context, chatID int64) (*redis.UserState, error)
	SetStep(ctx context.Context, chatID int64, step string) error
	StartBooking(ctx context.Context, chatID int64, step string) error
	SetSpace(ctx context.Context, chatID int64, space redis.Space) error
	SetFrequency(ctx context.Context, chatID int64, frequency string) error
	ToggleAddOn(ctx context.Context, chatID int64, id string) (*redis.Booking, error)
	SetQuoteMessage(ctx context.Context, chatID int64, messageID int) error
	ClearState(ctx context.Context, chatID int64) error
}

var _ StateManager = (*state_manager.UserDialogStateManager)(nil)

// Sender is the subset of *tgbotapi.BotAPI the handlers use.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

var _ Sender = (*tgbotapi.BotAPI)(nil)

// RateLimiter counts user actions per window and reports whether the
// latest one went over limit. A limit of zero or less is always exceeded.
type RateLimiter interface {
	CheckRateLimit(ctx context.Context, userID int64, action string, limit int64, window time.Duration) (bool, error)
}

var (
	_ RateLimiter = (*redis.Storage)(nil)
	_ RateLimiter = (*memory.StateStore)(nil)
)
