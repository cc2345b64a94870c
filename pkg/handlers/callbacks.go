package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/matanjerbi/downloder-telegram-bot/pkg/config"
	"github.com/matanjerbi/downloder-telegram-bot/pkg/core"
	"github.com/matanjerbi/downloder-telegram-bot/pkg/core/cache"
	"github.com/matanjerbi/downloder-telegram-bot/pkg/core/dl"
	"github.com/matanjerbi/downloder-telegram-bot/pkg/lang"

	"github.com/Laky-64/gologging"
	"github.com/amarnathcjd/gogram/telegram"
)

// resolveQuery decodes a button payload and maps its session key back
// to a URL. Expired or malformed payloads are answered with an alert
// and reported as not ok.
func resolveQuery(cb *telegram.CallbackQuery) (core.Query, string, string, bool) {
	langCode := chatLang(cb.Client, cb.ChatID)

	q, err := core.ParseQuery(cb.DataString())
	if err != nil {
		gologging.WarnF("Dropping callback %q: %v", cb.DataString(), err)
		_, _ = cb.Answer(lang.GetString(langCode, "link_expired"), &telegram.CallbackOptions{Alert: true})
		return core.Query{}, "", langCode, false
	}

	url, ok := cache.Sessions.Resolve(q.Key, cb.SenderID)
	if !ok {
		_, _ = cb.Answer(lang.GetString(langCode, "link_expired"), &telegram.CallbackOptions{Alert: true})
		return core.Query{}, "", langCode, false
	}
	return q, url, langCode, true
}

// sessionMeta returns the resolver metadata for a session, fetching and
// attaching it on first use.
func sessionMeta(cb *telegram.CallbackQuery, q core.Query, url, langCode string) (*cache.MediaInfo, error) {
	if sess, ok := cache.Sessions.Get(q.Key); ok && sess.Meta != nil {
		return sess.Meta, nil
	}

	_, _ = cb.Edit(lang.GetString(langCode, "fetching_info"))
	logAction(cb.SenderID, "INFO_FETCH", url)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	info, err := dl.FetchMetadata(ctx, url)
	if err != nil {
		return nil, err
	}
	cache.Sessions.AttachMeta(q.Key, info)
	return info, nil
}

// metaErrorText maps a resolver failure to user-facing text.
func metaErrorText(langCode string, err error) string {
	if errors.Is(err, dl.ErrRestricted) {
		return lang.GetString(langCode, "error_restricted")
	}
	return lang.GetString(langCode, "error_not_supported")
}

// infoCallbackHandler handles the details button.
func infoCallbackHandler(cb *telegram.CallbackQuery) error {
	q, url, langCode, ok := resolveQuery(cb)
	if !ok {
		return nil
	}

	info, err := sessionMeta(cb, q, url, langCode)
	if err != nil {
		gologging.WarnF("Metadata fetch failed for %s: %v", url, err)
		_, _ = cb.Edit(metaErrorText(langCode, err))
		return nil
	}

	options := dl.QualityOptions(info, config.Conf.MaxQualities)
	_, err = cb.Edit(core.MediaDetails(info, options), &telegram.SendOptions{
		ReplyMarkup: core.DetailsKeyboard(q.Key),
		LinkPreview: false,
	})
	return err
}

// downloadCallbackHandler handles the download button by presenting
// the quality picker.
func downloadCallbackHandler(cb *telegram.CallbackQuery) error {
	q, url, langCode, ok := resolveQuery(cb)
	if !ok {
		return nil
	}

	info, err := sessionMeta(cb, q, url, langCode)
	if err != nil {
		gologging.WarnF("Metadata fetch failed for %s: %v", url, err)
		_, _ = cb.Edit(metaErrorText(langCode, err))
		return nil
	}

	options := dl.QualityOptions(info, config.Conf.MaxQualities)
	hasVideo := false
	for _, opt := range options {
		if !opt.AudioOnly {
			hasVideo = true
			break
		}
	}
	if !hasVideo {
		// Nothing to choose between. Skip the prompt and fetch the best
		// available profile right away.
		startDownload(cb, q.Key, dl.QualityBest, url, langCode)
		return nil
	}

	_, err = cb.Edit(lang.GetString(langCode, "select_quality"), &telegram.SendOptions{
		ReplyMarkup: core.QualityKeyboard(q.Key, options),
	})
	return err
}

// startDownload acknowledges the press and hands the download itself to
// the supervised registry. Acknowledgment happens before any heavy work
// because the transport enforces a short answer deadline.
func startDownload(cb *telegram.CallbackQuery, key, quality, url, langCode string) {
	if tasks.Busy(key) {
		_, _ = cb.Answer(lang.GetString(langCode, "error_busy"), &telegram.CallbackOptions{Alert: true})
		return
	}

	_, _ = cb.Answer(lang.GetString(langCode, "downloading"))

	q := core.Query{Action: core.ActionQuality, Key: key, Quality: quality}
	started := tasks.Go(key, func(ctx context.Context) {
		runDownload(ctx, cb, q, url, langCode)
	})
	if !started {
		_, _ = cb.Answer(lang.GetString(langCode, "error_busy"), &telegram.CallbackOptions{Alert: true})
	}
}

// qualityCallbackHandler handles a quality pick. The press is
// acknowledged before any slow work starts, then the download runs on
// its own supervised goroutine so the handler never blocks the update
// loop.
func qualityCallbackHandler(cb *telegram.CallbackQuery) error {
	q, url, langCode, ok := resolveQuery(cb)
	if !ok {
		return nil
	}

	startDownload(cb, q.Key, q.Quality, url, langCode)
	return nil
}

// cancelCallbackHandler stops the download that carries the pressed
// key. The worker itself reports the cancellation in the status
// message.
func cancelCallbackHandler(cb *telegram.CallbackQuery) error {
	q, err := core.ParseQuery(cb.DataString())
	langCode := chatLang(cb.Client, cb.ChatID)
	if err != nil {
		_, _ = cb.Answer(lang.GetString(langCode, "cancel_nothing"), &telegram.CallbackOptions{Alert: true})
		return nil
	}

	if tasks.Cancel(q.Key) {
		logAction(cb.SenderID, "DOWNLOAD_CANCEL", q.Key)
		_, _ = cb.Answer(lang.GetString(langCode, "canceled"))
	} else {
		_, _ = cb.Answer(lang.GetString(langCode, "cancel_nothing"), &telegram.CallbackOptions{Alert: true})
	}
	return nil
}

// closeCallbackHandler dismisses a prompt. Closing never cancels a
// running download.
func closeCallbackHandler(cb *telegram.CallbackQuery) error {
	langCode := chatLang(cb.Client, cb.ChatID)
	_, _ = cb.Answer(lang.GetString(langCode, "closed"))
	_, err := cb.Delete()
	return err
}
