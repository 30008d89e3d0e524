package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const spaceDetailsPrompt = `Tell us about your space: send four numbers separated by spaces

bedrooms bathrooms half_baths square_feet

Example: 3 2 1 1500
Bedrooms 1-6, bathrooms 1-5, half baths 0-3, square feet 200-5000 (steps of 50).`

func (b *Bot) handleCommand(ctx context.Context, chatID, userID int64, command string) {
	switch command {
	case "start":
		b.handleStart(ctx, chatID)
	case "help":
		b.handleHelp(ctx, chatID)
	case "cancel":
		b.handleCancel(ctx, chatID)
	case "prices":
		b.handlePrices(ctx, chatID)
	case "ratecard":
		b.handleRateCard(ctx, chatID, userID)
	default:
		b.handleUnknownCommand(ctx, chatID)
	}
}

func (b *Bot) handleDefault(ctx context.Context, chatID int64) {
	b.sendText(chatID, "Send /start to get an instant cleaning quote.")
}

func (b *Bot) handleUnknownCommand(ctx context.Context, chatID int64) {
	b.sendError(chatID, "Unknown command. Use /help to see what I can do.")
}

func (b *Bot) handleHelp(ctx context.Context, chatID int64) {
	helpText := `Available commands:
/start - Get a cleaning quote
/prices - Add-on prices and recurring discounts
/cancel - Discard the current quote

Quotes are estimates for a single visit and are not stored.`
	b.sendText(chatID, helpText)
}

func (b *Bot) handleStart(ctx context.Context, chatID int64) {
	if err := b.state.StartBooking(ctx, chatID, StepSpaceDetails); err != nil {
		b.logger.Error("Failed to start booking",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again.")
		return
	}

	b.sendSpaceDetailsPrompt(chatID, "Hi! 👋 Let's put together a quote for your cleaning.\n\n"+spaceDetailsPrompt)
}

func (b *Bot) handleCancel(ctx context.Context, chatID int64) {
	if err := b.state.ClearState(ctx, chatID); err != nil {
		b.logger.Error("Failed to clear state",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}

	msg := tgbotapi.NewMessage(chatID, "Quote discarded. Send /start whenever you want a new one.")
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	b.sendMessage(msg)
}

func (b *Bot) handlePrices(ctx context.Context, chatID int64) {
	b.sendText(chatID, FormatPriceList())
}

func (b *Bot) sendSpaceDetailsPrompt(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	b.sendMessage(msg)
}
