package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"cleanbook/internal/pricing"
)

// Step 1: space details.
func (b *Bot) handleSpaceDetails(ctx context.Context, chatID int64, text string) {
	space, err := ParseSpaceDetails(text)
	if err != nil {
		b.logger.Debug("Rejected space details",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err))
		b.sendError(chatID, err.Error()+"\n\n"+spaceDetailsPrompt)
		return
	}

	if err := b.state.SetSpace(ctx, chatID, space); err != nil {
		b.logger.Error("Failed to set space details",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Failed to save your space details, please try again.")
		return
	}

	b.moveToFrequency(ctx, chatID)
}

func (b *Bot) moveToFrequency(ctx context.Context, chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "How often would you like us to clean? Recurring visits are discounted.")
	msg.ReplyMarkup = createFrequencyKeyboard()
	b.sendMessage(msg)

	if err := b.state.SetStep(ctx, chatID, StepFrequency); err != nil {
		b.logger.Error("Failed to set frequency state",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

// Step 2: frequency, then add-ons via inline toggles.
func (b *Bot) handleFrequency(ctx context.Context, chatID int64, text string) {
	if text == BtnBack {
		if err := b.state.SetStep(ctx, chatID, StepSpaceDetails); err != nil {
			b.logger.Error("Failed to set space details state",
				zap.Int64("chat_id", chatID),
				zap.Error(err))
		}
		// the posted quote no longer matches the wizard
		if err := b.state.SetQuoteMessage(ctx, chatID, 0); err != nil {
			b.logger.Error("Failed to reset quote message",
				zap.Int64("chat_id", chatID),
				zap.Error(err))
		}
		b.sendSpaceDetailsPrompt(chatID, spaceDetailsPrompt)
		return
	}

	freq, err := pricing.ParseFrequency(text)
	if err != nil {
		b.sendError(chatID, "Please choose one of the options on the keyboard.")
		return
	}

	if err := b.state.SetFrequency(ctx, chatID, string(freq)); err != nil {
		b.logger.Error("Failed to set frequency",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Failed to save the frequency, please try again.")
		return
	}

	b.sendLiveQuote(ctx, chatID)
}

// sendLiveQuote posts the current quote with add-on toggles and remembers
// the message so later toggles can edit it in place.
func (b *Bot) sendLiveQuote(ctx context.Context, chatID int64) {
	state, err := b.state.GetUserDialogState(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to get user state",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again.")
		return
	}

	req, ok := quoteRequest(state.Booking)
	if !ok {
		b.sendError(chatID, "Your session has expired. Send /start to begin again.")
		return
	}

	breakdown := pricing.Quote(req)
	b.logQuote(chatID, req, breakdown)

	msg := tgbotapi.NewMessage(chatID, FormatQuote(req, breakdown)+"\n\nTap to add extras, then Continue.")
	msg.ReplyMarkup = createAddOnKeyboard(state.Booking.AddOns)

	sent, ok := b.sendMessage(msg)
	if !ok {
		return
	}

	if err := b.state.SetQuoteMessage(ctx, chatID, sent.MessageID); err != nil {
		b.logger.Error("Failed to remember quote message",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

func (b *Bot) moveToConfirmation(ctx context.Context, chatID int64, req pricing.QuoteRequest) {
	breakdown := pricing.Quote(req)

	msg := tgbotapi.NewMessage(chatID, "Here is your quote:\n\n"+FormatQuote(req, breakdown))
	msg.ReplyMarkup = createConfirmationKeyboard()
	b.sendMessage(msg)

	if err := b.state.SetStep(ctx, chatID, StepConfirmation); err != nil {
		b.logger.Error("Failed to set confirmation state",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

// Step 3: confirmation.
func (b *Bot) handleConfirmation(ctx context.Context, chatID int64, text string) {
	switch text {
	case BtnBack:
		b.moveToFrequency(ctx, chatID)
		b.sendLiveQuote(ctx, chatID)

	case BtnSchedule:
		b.handleSchedule(ctx, chatID)

	default:
		b.sendError(chatID, "Please use the buttons below.")
	}
}

// handleSchedule ends the wizard. Nothing is submitted or stored.
func (b *Bot) handleSchedule(ctx context.Context, chatID int64) {
	state, err := b.state.GetUserDialogState(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to get user state",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again.")
		return
	}

	req, ok := quoteRequest(state.Booking)
	if !ok {
		b.sendError(chatID, "Your session has expired. Send /start to begin again.")
		return
	}

	total := pricing.Calculate(req)

	msg := tgbotapi.NewMessage(chatID,
		"📅 Thanks for choosing us! Your cleaning quote is "+pricing.FormatPerVisit(total)+".\n\n"+
			"Send /start to build another quote.")
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	b.sendMessage(msg)

	if err := b.state.ClearState(ctx, chatID); err != nil {
		b.logger.Error("Failed to clear state",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

func (b *Bot) logQuote(chatID int64, req pricing.QuoteRequest, breakdown pricing.Breakdown) {
	fields := []zap.Field{
		zap.Int64("chat_id", chatID),
		zap.Int("bedrooms", req.Bedrooms),
		zap.Int("bathrooms", req.Bathrooms),
		zap.Int("half_baths", req.HalfBaths),
		zap.Int("square_footage", req.SquareFootage),
		zap.String("frequency", string(req.Frequency)),
		zap.Strings("add_ons", breakdown.AppliedAddOns),
		zap.Float64("total", breakdown.Total),
	}
	if len(breakdown.IgnoredAddOns) > 0 {
		fields = append(fields, zap.Strings("ignored_add_ons", breakdown.IgnoredAddOns))
	}
	b.logger.Debug("Quote calculated", fields...)
}
