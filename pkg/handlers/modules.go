package handlers

import (
	"time"

	"github.com/Laky-64/gologging"
	"github.com/amarnathcjd/gogram/telegram"
)

var startTime = time.Now()

// LoadModules loads all the handlers.
// It takes a telegram client as input.
func LoadModules(c *telegram.Client) {
	_, _ = c.UpdatesGetState()

	c.On("command:ping", pingHandler)
	c.On("command:start", startHandler)
	c.On("command:help", helpHandler)
	c.On("command:privacy", privacyHandler)
	c.On("command:lang", langHandler)

	c.On("command:stats", sysStatsHandler, telegram.FilterFunc(isDev))

	c.On("callback:info:.+", infoCallbackHandler)
	c.On("callback:download:.+", downloadCallbackHandler)
	c.On("callback:quality:.+", qualityCallbackHandler)
	c.On("callback:cancel:.+", cancelCallbackHandler)
	c.On("callback:close", closeCallbackHandler)
	c.On("callback:setlang_\\w+", setLangCallbackHandler)

	c.On(telegram.OnMessage, linkWatcher, telegram.FilterFunc(hasLink))

	gologging.Debug("Handlers loaded successfully.")
}
