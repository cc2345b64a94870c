package core

import (
	"fmt"
	"strings"

	"github.com/matanjerbi/downloder-telegram-bot/pkg/core/cache"
)

const unknownValue = "Unknown"

// FormatDuration converts seconds to M:SS, or H:MM:SS for durations of
// an hour or more. Zero and negative inputs render as Unknown.
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return unknownValue
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// FormatSize converts a byte count to a human-readable string with one
// decimal place (e.g. "12.3 MB").
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return unknownValue
	}

	size := float64(bytes)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f TB", size)
}

// FormatNumber renders a count with thousands separators (1,234,567).
func FormatNumber(n int64) string {
	if n <= 0 {
		return unknownValue
	}

	digits := fmt.Sprintf("%d", n)
	var sb strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(d)
	}
	return sb.String()
}

// FormatDate reformats a compact yyyymmdd date to dd/mm/yyyy.
func FormatDate(compact string) string {
	if len(compact) != 8 {
		return unknownValue
	}
	return fmt.Sprintf("%s/%s/%s", compact[6:8], compact[4:6], compact[:4])
}

// MediaDetails renders resolver metadata into the details message shown
// after an info request.
func MediaDetails(info *cache.MediaInfo, options []cache.QualityOption) string {
	title := info.Title
	if title == "" {
		title = unknownValue
	}
	if r := []rune(title); len(r) > 100 {
		title = string(r[:100])
	}

	uploader := info.UploaderName()
	if uploader == "" {
		uploader = unknownValue
	}

	source := info.Extractor
	if source == "" {
		source = unknownValue
	}
	source = strings.ReplaceAll(source, ":", " - ")

	var labels []string
	for _, opt := range options {
		if !opt.AudioOnly {
			labels = append(labels, opt.Label)
		}
	}
	qualities := strings.Join(labels, ", ")
	if qualities == "" {
		qualities = unknownValue
	}

	return fmt.Sprintf(`📹 *Media details*

*Title:* %s

⏱️ *Duration:* %s
👤 *Uploader:* %s
📅 *Uploaded:* %s
👁️ *Views:* %s
🌐 *Source:* %s

📊 *Available qualities:* %s
💾 *Approximate size:* %s`,
		title,
		FormatDuration(int(info.Duration)),
		uploader,
		FormatDate(info.UploadDate),
		FormatNumber(info.ViewCount),
		source,
		qualities,
		FormatSize(info.BestSize()),
	)
}

// UploadKind selects how a finished artifact is delivered.
type UploadKind int

const (
	// UploadAudio delivers the artifact as an audio stream.
	UploadAudio UploadKind = iota
	// UploadVideo delivers the artifact as a streaming-capable video message.
	UploadVideo
	// UploadDocument delivers the artifact as a generic file attachment.
	UploadDocument
)

// PickUploadKind chooses the delivery presentation for an artifact:
// audio-only artifacts stream as audio; video under the streaming
// threshold goes out as a playable video message, anything larger as a
// plain document.
func PickUploadKind(size int64, audioOnly bool, streamLimit int64) UploadKind {
	if audioOnly {
		return UploadAudio
	}
	if streamLimit > 0 && size > streamLimit {
		return UploadDocument
	}
	return UploadVideo
}
