package core

import (
	"fmt"

	"github.com/matanjerbi/downloder-telegram-bot/pkg/config"
	"github.com/matanjerbi/downloder-telegram-bot/pkg/core/cache"
	"github.com/matanjerbi/downloder-telegram-bot/pkg/lang"

	"github.com/amarnathcjd/gogram/telegram"
)

// CloseBtn dismisses the current prompt. It never cancels a running download.
var CloseBtn = telegram.Button.Data("❌ Close", Query{Action: ActionClose}.String())

var qualityEmojis = []string{"1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣", "6️⃣"}

// ActionKeyboard is the first prompt shown when a link is recognized.
func ActionKeyboard(key string) *telegram.ReplyInlineMarkup {
	keyboard := telegram.NewKeyboard().
		AddRow(
			telegram.Button.Data("📊 Details", Query{Action: ActionInfo, Key: key}.String()),
			telegram.Button.Data("📥 Download", Query{Action: ActionDownload, Key: key}.String()),
		)
	return keyboard.Build()
}

// DetailsKeyboard follows the metadata details message.
func DetailsKeyboard(key string) *telegram.ReplyInlineMarkup {
	keyboard := telegram.NewKeyboard().
		AddRow(
			telegram.Button.Data("📥 Download", Query{Action: ActionDownload, Key: key}.String()),
			CloseBtn,
		)
	return keyboard.Build()
}

// QualityKeyboard lays out the derived quality options two per row, with
// a standalone close button at the bottom.
func QualityKeyboard(key string, options []cache.QualityOption) *telegram.ReplyInlineMarkup {
	var buttons []*telegram.KeyboardButtonCallback
	for i, opt := range options {
		label := opt.Label
		quality := fmt.Sprintf("%d", opt.Height)
		if opt.AudioOnly {
			quality = "audio"
		} else if i < len(qualityEmojis) {
			label = fmt.Sprintf("%s %s", qualityEmojis[i], opt.Label)
		}
		data := Query{Action: ActionQuality, Key: key, Quality: quality}.String()
		buttons = append(buttons, telegram.Button.Data(label, data))
	}

	keyboard := telegram.NewKeyboard()
	for i := 0; i < len(buttons); i += 2 {
		if i+1 < len(buttons) {
			keyboard.AddRow(buttons[i], buttons[i+1])
		} else {
			keyboard.AddRow(buttons[i])
		}
	}
	keyboard.AddRow(CloseBtn)
	return keyboard.Build()
}

// CancelKeyboard is attached to a running download's status message.
func CancelKeyboard(key string) *telegram.ReplyInlineMarkup {
	keyboard := telegram.NewKeyboard().
		AddRow(telegram.Button.Data("✋ Cancel", Query{Action: ActionCancel, Key: key}.String()))
	return keyboard.Build()
}

// LanguageKeyboard lists the loaded locales two per row.
func LanguageKeyboard() *telegram.ReplyInlineMarkup {
	keyboard := telegram.NewKeyboard()
	langs := lang.GetAvailableLangs()
	for i := 0; i < len(langs); i += 2 {
		if i+1 < len(langs) {
			keyboard.AddRow(
				telegram.Button.Data(lang.GetLangDisplayName(langs[i]), fmt.Sprintf("setlang_%s", langs[i])),
				telegram.Button.Data(lang.GetLangDisplayName(langs[i+1]), fmt.Sprintf("setlang_%s", langs[i+1])),
			)
		} else {
			keyboard.AddRow(telegram.Button.Data(lang.GetLangDisplayName(langs[i]), fmt.Sprintf("setlang_%s", langs[i])))
		}
	}
	keyboard.AddRow(CloseBtn)
	return keyboard.Build()
}

// SupportKeyboard links to the configured updates channel and support
// group.
func SupportKeyboard() *telegram.ReplyInlineMarkup {
	keyboard := telegram.NewKeyboard().
		AddRow(
			telegram.Button.URL("Uᴘᴅᴀᴛᴇꜱ", config.Conf.SupportChannel),
			telegram.Button.URL("Sᴜᴘᴘᴏʀᴛ", config.Conf.SupportGroup),
		).
		AddRow(CloseBtn)
	return keyboard.Build()
}
