package handlers

import (
	"strings"

	"github.com/matanjerbi/downloder-telegram-bot/pkg/core"
	"github.com/matanjerbi/downloder-telegram-bot/pkg/core/cache"
	"github.com/matanjerbi/downloder-telegram-bot/pkg/core/db"
	"github.com/matanjerbi/downloder-telegram-bot/pkg/lang"

	"github.com/amarnathcjd/gogram/telegram"
)

// hasLink filters plain messages down to the ones carrying an http(s)
// link. Commands are left to their own handlers.
func hasLink(m *telegram.NewMessage) bool {
	text := m.Text()
	if strings.HasPrefix(text, "/") {
		return false
	}
	return cache.ExtractURL(text) != ""
}

// linkWatcher handles a message containing a link. The link is parked
// in the session cache under a short key and the user is offered the
// details and download actions, which carry that key.
func linkWatcher(m *telegram.NewMessage) error {
	url := cache.ExtractURL(m.Text())
	if url == "" {
		return nil
	}

	chatID, _ := getPeerId(m.Client, m.ChatID())
	go func(chatID int64) {
		ctx, cancel := db.Ctx()
		defer cancel()
		if m.IsPrivate() {
			_ = db.Instance.AddUser(ctx, chatID)
		} else {
			_ = db.Instance.AddChat(ctx, chatID)
		}
	}(chatID)

	key := cache.Sessions.Put(url, m.SenderID())
	logAction(m.SenderID(), "URL_RECEIVED", url)

	langCode := chatLang(m.Client, m.ChatID())
	_, err := m.Reply(lang.GetString(langCode, "url_detected"), telegram.SendOptions{
		ReplyMarkup: core.ActionKeyboard(key),
		LinkPreview: false,
	})
	return err
}
