package handlers

import (
	"fmt"
	"strings"

	"github.com/matanjerbi/downloder-telegram-bot/pkg/core"
	"github.com/matanjerbi/downloder-telegram-bot/pkg/core/db"
	"github.com/matanjerbi/downloder-telegram-bot/pkg/lang"

	"github.com/amarnathcjd/gogram/telegram"
)

func langHandler(m *telegram.NewMessage) error {
	langCode := chatLang(m.Client, m.ChatID())
	_, err := m.Reply(lang.GetString(langCode, "choose_lang"), telegram.SendOptions{
		ReplyMarkup: core.LanguageKeyboard(),
	})
	return err
}

func setLangCallbackHandler(c *telegram.CallbackQuery) error {
	parts := strings.SplitN(c.DataString(), "_", 2)
	if len(parts) < 2 {
		return nil
	}
	langCode := parts[1]

	// Validate that the language code is supported
	supportedLangs := lang.GetAvailableLangs()
	isValidLang := false
	for _, supportedLang := range supportedLangs {
		if supportedLang == langCode {
			isValidLang = true
			break
		}
	}

	if !isValidLang {
		_, err := c.Answer("❌ Unsupported language code", &telegram.CallbackOptions{Alert: true})
		return err
	}

	chatID, _ := getPeerId(c.Client, c.ChatID)
	ctx, cancel := db.Ctx()
	defer cancel()
	_ = db.Instance.SetLang(ctx, chatID, langCode)

	_, _ = c.Answer(fmt.Sprintf(lang.GetString(langCode, "lang_updated"), langCode), &telegram.CallbackOptions{Alert: true})
	_, err := c.Edit(fmt.Sprintf(lang.GetString(langCode, "lang_changed"), lang.GetLangDisplayName(langCode)))
	return err
}
