package handlers

import (
	"fmt"

	"github.com/matanjerbi/downloder-telegram-bot/pkg/config"
	"github.com/matanjerbi/downloder-telegram-bot/pkg/core/db"

	"github.com/Laky-64/gologging"
	"github.com/amarnathcjd/gogram/telegram"
)

// getPeerId gets the peer ID from a chat ID.
// It takes a telegram client and a chat ID as input.
// It returns the peer ID and an error if any.
func getPeerId(c *telegram.Client, chatId any) (int64, error) {
	peer, err := c.ResolvePeer(chatId)
	if err != nil {
		gologging.WarnF("failed to resolve Peer for %d", chatId)
		return 0, err
	}

	switch p := peer.(type) {
	case *telegram.InputPeerUser:
		return p.UserID, nil
	case *telegram.InputPeerChat:
		return -p.ChatID, nil
	case *telegram.InputPeerChannel:
		return -1000000000000 - p.ChannelID, nil
	default:
		return 0, fmt.Errorf("unsupported peer type %T", p)
	}
}

// logAction records a user-facing lifecycle event in a single greppable line.
func logAction(userID int64, action, detail string) {
	gologging.InfoF("[USER:%d] [%s] %s", userID, action, detail)
}

// isDev checks if the user is a developer.
// It takes a telegram.NewMessage object as input.
// It returns true if the user is a developer, otherwise false.
func isDev(m *telegram.NewMessage) bool {
	for _, dev := range config.Conf.DEVS {
		if dev == m.SenderID() {
			return true
		}
	}
	return false
}

// chatLang resolves the language code for the chat a message or
// callback originated from.
func chatLang(c *telegram.Client, chatId any) string {
	chatID, err := getPeerId(c, chatId)
	if err != nil {
		return "en"
	}
	ctx, cancel := db.Ctx()
	defer cancel()
	return db.Instance.GetLang(ctx, chatID)
}
