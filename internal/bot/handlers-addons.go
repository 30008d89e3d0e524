package bot

import (
	"context"
	"slices"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"cleanbook/internal/pricing"
)

func (b *Bot) handleAddOnCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID

	state, err := b.state.GetUserDialogState(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to get user state",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.answerCallback(callback.ID, "Something went wrong, please try again.")
		return
	}

	req, ok := quoteRequest(state.Booking)
	if !ok || (state.Step != StepFrequency && state.Step != StepConfirmation) {
		b.answerCallback(callback.ID, "This quote has expired. Send /start to begin again.")
		return
	}

	if state.Booking.QuoteMessageID != callback.Message.MessageID {
		b.answerCallback(callback.ID, "This quote has been replaced by a newer one.")
		return
	}

	if callback.Data == CallbackAddOnsDone {
		b.answerCallback(callback.ID, "")
		b.moveToConfirmation(ctx, chatID, req)
		return
	}

	id, found := strings.CutPrefix(callback.Data, CallbackAddOnPrefix)
	addOn, known := pricing.LookupAddOn(id)
	if !found || !known {
		// stale keyboards may carry ids that are no longer offered
		b.logger.Warn("Ignoring unknown add-on callback",
			zap.Int64("chat_id", chatID),
			zap.String("data", callback.Data))
		b.answerCallback(callback.ID, "")
		return
	}

	booking, err := b.state.ToggleAddOn(ctx, chatID, id)
	if err != nil {
		b.logger.Error("Failed to toggle add-on",
			zap.Int64("chat_id", chatID),
			zap.String("add_on", id),
			zap.Error(err))
		b.answerCallback(callback.ID, "Failed to update add-ons, please try again.")
		return
	}

	notice := "Removed " + addOn.Name
	if slices.Contains(booking.AddOns, id) {
		notice = "Added " + addOn.Name
	}
	b.answerCallback(callback.ID, notice)

	req.AddOns = booking.AddOns
	breakdown := pricing.Quote(req)
	b.logQuote(chatID, req, breakdown)

	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID,
		callback.Message.MessageID,
		FormatQuote(req, breakdown)+"\n\nTap to add extras, then Continue.",
		createAddOnKeyboard(booking.AddOns),
	)
	if _, err := b.api.Send(edit); err != nil {
		b.logger.Warn("Failed to edit quote message",
			zap.Int("message_id", callback.Message.MessageID),
			zap.Error(err))
	}

	if state.Step == StepConfirmation {
		// the confirmation summary is now stale
		b.moveToConfirmation(ctx, chatID, req)
	}
}
