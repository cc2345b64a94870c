package pkg

import (
	"os/exec"

	"github.com/matanjerbi/downloder-telegram-bot/pkg/handlers"

	"github.com/Laky-64/gologging"
	tg "github.com/amarnathcjd/gogram/telegram"
)

func Init(client *tg.Client) error {
	if _, err := exec.LookPath("yt-dlp"); err != nil {
		return err
	}
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		gologging.Warn("ffmpeg was not found in PATH. Audio extraction and format merging will fail.")
	}

	handlers.LoadModules(client)
	return nil
}
