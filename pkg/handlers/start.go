package handlers

import (
	"fmt"
	"time"

	"github.com/matanjerbi/downloder-telegram-bot/pkg/config"
	"github.com/matanjerbi/downloder-telegram-bot/pkg/core"
	"github.com/matanjerbi/downloder-telegram-bot/pkg/core/db"
	"github.com/matanjerbi/downloder-telegram-bot/pkg/lang"

	"github.com/amarnathcjd/gogram/telegram"
)

// pingHandler handles the /ping command.
func pingHandler(m *telegram.NewMessage) error {
	start := time.Now()
	msg, err := m.Reply("⏱️ Pinging...")
	if err != nil {
		return err
	}
	latency := time.Since(start).Milliseconds()
	uptime := time.Since(startTime).Truncate(time.Second)

	langCode := chatLang(m.Client, m.ChatID())
	response := fmt.Sprintf(lang.GetString(langCode, "ping_text"), latency, uptime)
	_, err = msg.Edit(response)
	return err
}

// startHandler handles the /start command.
func startHandler(m *telegram.NewMessage) error {
	chatID, _ := getPeerId(m.Client, m.ChatID())

	if m.IsPrivate() {
		go func(chatID int64) {
			ctx, cancel := db.Ctx()
			defer cancel()
			_ = db.Instance.AddUser(ctx, chatID)
		}(chatID)
	} else {
		go func(chatID int64) {
			ctx, cancel := db.Ctx()
			defer cancel()
			_ = db.Instance.AddChat(ctx, chatID)
		}(chatID)
	}

	langCode := chatLang(m.Client, m.ChatID())
	response := fmt.Sprintf(lang.GetString(langCode, "start_text"), m.Sender.FirstName)
	_, err := m.Reply(response, telegram.SendOptions{
		ReplyMarkup: core.SupportKeyboard(),
		LinkPreview: false,
	})
	return err
}

// helpHandler handles the /help command.
func helpHandler(m *telegram.NewMessage) error {
	langCode := chatLang(m.Client, m.ChatID())
	response := fmt.Sprintf(lang.GetString(langCode, "help_text"), core.FormatSize(config.Conf.MaxFileSize))
	_, err := m.Reply(response, telegram.SendOptions{LinkPreview: false})
	return err
}

// privacyHandler handles the /privacy command.
func privacyHandler(m *telegram.NewMessage) error {
	langCode := chatLang(m.Client, m.ChatID())
	_, err := m.Reply(lang.GetString(langCode, "privacy_text"))
	return err
}
