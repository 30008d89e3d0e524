package bot

import (
	"fmt"
	"slices"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"cleanbook/internal/pricing"
)

// BOT KEYBOARDS

func createFrequencyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	freqs := pricing.Frequencies()
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(freqs[0].Label()),
			tgbotapi.NewKeyboardButton(freqs[1].Label()),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(freqs[2].Label()),
			tgbotapi.NewKeyboardButton(freqs[3].Label()),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnBack),
		),
	)
}

func createConfirmationKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnSchedule),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnBack),
		),
	)
}

// createAddOnKeyboard lists every catalog add-on, two per row, marking the
// selected ones.
func createAddOnKeyboard(selected []string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton

	for _, a := range pricing.AddOns() {
		mark := "▫️"
		if slices.Contains(selected, a.ID) {
			mark = "✅"
		}
		label := fmt.Sprintf("%s %s +%s", mark, a.Name, pricing.FormatAmount(a.Price))
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, CallbackAddOnPrefix+a.ID))

		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Continue ➡️", CallbackAddOnsDone),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
