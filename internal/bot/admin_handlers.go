package bot

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"cleanbook/internal/ratecard"
)

func (b *Bot) handleRateCard(ctx context.Context, chatID, userID int64) {
	if !b.cfg.IsAdmin(userID) {
		b.logger.Warn("Non-admin requested rate card",
			zap.Int64("chat_id", chatID),
			zap.Int64("user_id", userID))
		b.handleUnknownCommand(ctx, chatID)
		return
	}

	data, err := ratecard.Bytes(ratecard.DefaultSamples)
	if err != nil {
		b.logger.Error("Failed to build rate card", zap.Error(err))
		b.sendError(chatID, "Failed to build the rate card")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("rate-card-%s.xlsx", time.Now().Format("2006-01-02")),
		Bytes: data,
	})
	doc.Caption = "📊 Current rate card"

	if _, err := b.api.Send(doc); err != nil {
		b.logger.Error("Failed to send rate card", zap.Error(err))
		b.sendError(chatID, "Failed to send the rate card")
	}
}
