package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matanjerbi/downloder-telegram-bot/pkg/config"
	"github.com/matanjerbi/downloder-telegram-bot/pkg/core"
	"github.com/matanjerbi/downloder-telegram-bot/pkg/core/cache"
	"github.com/matanjerbi/downloder-telegram-bot/pkg/core/db"
	"github.com/matanjerbi/downloder-telegram-bot/pkg/core/dl"
	"github.com/matanjerbi/downloder-telegram-bot/pkg/lang"

	"github.com/Laky-64/gologging"
	"github.com/amarnathcjd/gogram/telegram"
)

// runDownload drives one download from quality pick to delivered file.
// It runs on a supervised goroutine, keeps the user informed through
// edits of the status message, and always removes the local artifact
// before returning.
func runDownload(ctx context.Context, cb *telegram.CallbackQuery, q core.Query, url, langCode string) {
	start := time.Now()
	audioOnly := q.Quality == dl.QualityAudio

	_, _ = cb.Edit(lang.GetString(langCode, "downloading"), &telegram.SendOptions{
		ReplyMarkup: core.CancelKeyboard(q.Key),
	})
	logAction(cb.SenderID, "DOWNLOAD_START", fmt.Sprintf("%s quality=%s", url, q.Quality))

	dctx, cancel := context.WithTimeout(ctx, config.Conf.DownloadTimeout)
	defer cancel()

	path, err := dl.Download(dctx, url, dl.DownloadOptions{Quality: q.Quality, AudioOnly: audioOnly})
	if path != "" {
		defer dl.Cleanup(path)
	}
	if err != nil {
		reportDownloadError(cb, langCode, url, err)
		return
	}

	size, err := dl.ValidateArtifact(path, config.Conf.MaxFileSize)
	if err != nil {
		reportDownloadError(cb, langCode, url, err)
		return
	}

	_, _ = cb.Edit(lang.GetString(langCode, "uploading"))
	logAction(cb.SenderID, "UPLOAD_START", fmt.Sprintf("%s (%s)", path, core.FormatSize(size)))

	if err := deliverArtifact(cb, q, path, size, audioOnly, langCode); err != nil {
		gologging.ErrorF("Upload failed for %s: %v", url, err)
		_, _ = cb.Edit(lang.GetString(langCode, "error_download"))
		return
	}

	_, _ = cb.Delete()

	go func(userID int64) {
		ctx, cancel := db.Ctx()
		defer cancel()
		_ = db.Instance.RecordDownload(ctx, userID)
	}(cb.SenderID)

	logAction(cb.SenderID, "DOWNLOAD_COMPLETE",
		fmt.Sprintf("%s (%s in %s)", url, core.FormatSize(size), time.Since(start).Round(time.Second)))
}

// deliverArtifact uploads the finished file with attributes matching
// how it should be presented: streamable audio, streamable video, or a
// plain document for oversized video.
func deliverArtifact(cb *telegram.CallbackQuery, q core.Query, path string, size int64, audioOnly bool, langCode string) error {
	var meta *cache.MediaInfo
	if sess, ok := cache.Sessions.Get(q.Key); ok {
		meta = sess.Meta
	}

	title := "Media"
	performer := ""
	var duration float64
	if meta != nil {
		if meta.Title != "" {
			title = meta.Title
		}
		performer = meta.UploaderName()
		duration = meta.Duration
	}

	caption := fmt.Sprintf(lang.GetString(langCode, "done_caption"),
		title, core.FormatSize(size), cb.Client.Me().Username)

	opts := &telegram.MediaOptions{Caption: caption}
	switch core.PickUploadKind(size, audioOnly, config.Conf.StreamableSize) {
	case core.UploadAudio:
		opts.Attributes = []telegram.DocumentAttribute{
			&telegram.DocumentAttributeAudio{
				Duration:  int32(duration),
				Title:     title,
				Performer: performer,
			},
		}
	case core.UploadVideo:
		opts.Attributes = []telegram.DocumentAttribute{
			&telegram.DocumentAttributeVideo{
				Duration:          duration,
				SupportsStreaming: true,
			},
		}
	case core.UploadDocument:
		opts.ForceDocument = true
	}

	_, err := cb.Client.SendMedia(cb.ChatID, path, opts)
	return err
}

// reportDownloadError maps a failed download to its user-facing status
// text. User cancellation is not an error from the user's point of
// view and gets its own message.
func reportDownloadError(cb *telegram.CallbackQuery, langCode, url string, err error) {
	var text string
	switch {
	case errors.Is(err, context.Canceled):
		logAction(cb.SenderID, "DOWNLOAD_CANCELED", url)
		text = lang.GetString(langCode, "canceled")
	case errors.Is(err, dl.ErrRestricted):
		text = lang.GetString(langCode, "error_restricted")
	case errors.Is(err, dl.ErrFileTooLarge):
		text = fmt.Sprintf(lang.GetString(langCode, "error_too_large"), core.FormatSize(config.Conf.MaxFileSize))
	case errors.Is(err, dl.ErrArtifactMissing):
		text = lang.GetString(langCode, "error_file_not_found")
	default:
		text = lang.GetString(langCode, "error_download")
	}

	if !errors.Is(err, context.Canceled) {
		gologging.WarnF("Download failed for %s: %v", url, err)
	}
	_, _ = cb.Edit(text)
}
