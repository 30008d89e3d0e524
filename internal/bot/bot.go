package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"cleanbook/internal/config"
)

type Bot struct {
	botAPI   *tgbotapi.BotAPI
	api      Sender
	logger   *zap.Logger
	state    StateManager
	limiter  RateLimiter
	cfg      *config.Config
	handlers map[string]func(context.Context, int64, string)
}

func New(cfg *config.Config, state StateManager, limiter RateLimiter, logger *zap.Logger) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	botAPI.Debug = cfg.BotDebug

	logger.Info("Bot authorized",
		zap.String("username", botAPI.Self.UserName),
		zap.Int64("id", botAPI.Self.ID))

	b := newBot(botAPI, state, limiter, cfg, logger)
	b.botAPI = botAPI
	return b, nil
}

func newBot(api Sender, state StateManager, limiter RateLimiter, cfg *config.Config, logger *zap.Logger) *Bot {
	b := &Bot{
		api:     api,
		logger:  logger,
		state:   state,
		limiter: limiter,
		cfg:     cfg,
	}
	b.registerHandlers()
	return b
}

func (b *Bot) registerHandlers() {
	b.handlers = map[string]func(context.Context, int64, string){
		StepSpaceDetails: b.handleSpaceDetails,
		StepFrequency:    b.handleFrequency,
		StepConfirmation: b.handleConfirmation,
	}
}

// Start polls Telegram until ctx is cancelled. Updates are handled one at
// a time, so the last quote rendered for a chat always reflects its latest input.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Starting bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.botAPI.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Shutting down bot")
			b.botAPI.StopReceivingUpdates()
			return nil

		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if user := sentFrom(update); user != nil && b.throttled(ctx, user.ID) {
		if update.CallbackQuery != nil {
			b.answerCallback(update.CallbackQuery.ID, "Too many requests, please slow down.")
		}
		return
	}

	switch {
	case update.Message != nil:
		b.processMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.processCallback(ctx, update.CallbackQuery)
	}
}

func sentFrom(update tgbotapi.Update) *tgbotapi.User {
	switch {
	case update.Message != nil:
		return update.Message.From
	case update.CallbackQuery != nil:
		return update.CallbackQuery.From
	}
	return nil
}

// throttled reports whether userID went over the update limit. Limiter
// failures let the update through.
func (b *Bot) throttled(ctx context.Context, userID int64) bool {
	if b.limiter == nil || b.cfg.RateLimit <= 0 {
		return false
	}

	exceeded, err := b.limiter.CheckRateLimit(ctx, userID, "update", b.cfg.RateLimit, b.cfg.RateLimitWindow)
	if err != nil {
		b.logger.Warn("Rate limit check failed",
			zap.Int64("user_id", userID),
			zap.Error(err))
		return false
	}
	if exceeded {
		b.logger.Warn("Rate limit exceeded", zap.Int64("user_id", userID))
	}
	return exceeded
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	b.logger.Debug("Processing message",
		zap.Int64("chat_id", chatID),
		zap.String("text", msg.Text))

	if msg.IsCommand() {
		var userID int64
		if msg.From != nil {
			userID = msg.From.ID
		}
		b.handleCommand(ctx, chatID, userID, msg.Command())
		return
	}

	state, err := b.state.GetUserDialogState(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to get user state",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again.")
		return
	}

	if handler, exists := b.handlers[state.Step]; exists {
		handler(ctx, chatID, msg.Text)
	} else {
		b.handleDefault(ctx, chatID)
	}
}

func (b *Bot) processCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil {
		b.answerCallback(callback.ID, "")
		return
	}

	b.logger.Debug("Processing callback",
		zap.Int64("chat_id", callback.Message.Chat.ID),
		zap.String("data", callback.Data))

	b.handleAddOnCallback(ctx, callback)
}

func (b *Bot) sendMessage(msg tgbotapi.Chattable) (tgbotapi.Message, bool) {
	sent, err := b.api.Send(msg)
	if err != nil {
		b.logger.Error("Failed to send message", zap.Error(err))
		return tgbotapi.Message{}, false
	}
	return sent, true
}

func (b *Bot) sendText(chatID int64, text string) {
	b.sendMessage(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) sendError(chatID int64, text string) {
	b.sendText(chatID, "❌ "+text)
}

func (b *Bot) answerCallback(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		b.logger.Warn("Failed to answer callback",
			zap.String("callback_id", callbackID),
			zap.Error(err))
	}
}
