package core

import (
	"testing"

	"github.com/matanjerbi/downloder-telegram-bot/pkg/config"

	"github.com/amarnathcjd/gogram/telegram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportKeyboardUsesConfiguredLinks(t *testing.T) {
	old := config.Conf
	config.Conf = &config.BotConfig{
		SupportGroup:   "https://t.me/mygroup",
		SupportChannel: "https://t.me/mychannel",
	}
	t.Cleanup(func() { config.Conf = old })

	markup := SupportKeyboard()
	require.Len(t, markup.Rows, 2)
	require.Len(t, markup.Rows[0].Buttons, 2)

	updates, ok := markup.Rows[0].Buttons[0].(*telegram.KeyboardButtonURL)
	require.True(t, ok)
	assert.Equal(t, "https://t.me/mychannel", updates.URL)

	support, ok := markup.Rows[0].Buttons[1].(*telegram.KeyboardButtonURL)
	require.True(t, ok)
	assert.Equal(t, "https://t.me/mygroup", support.URL)
}
