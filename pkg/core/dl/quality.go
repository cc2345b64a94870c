package dl

import (
	"fmt"
	"sort"

	"github.com/matanjerbi/downloder-telegram-bot/pkg/core/cache"
)

const (
	// QualityBest selects the resolver's default best-available profile.
	QualityBest = "best"
	// QualityAudio is the wire value identifying the audio-only option.
	QualityAudio = "audio"
	// HeightAudio is the reserved sentinel height of the audio-only option.
	HeightAudio = 0
	// DefaultMaxQualities bounds the derived option list.
	DefaultMaxQualities = 6
)

// QualityOptions derives a ranked, deduplicated list of download options
// from resolver metadata. Video formats with a known height are kept,
// highest first, one per distinct height; if any audio-only format exists
// the best one (by bitrate) is appended with the sentinel height. The
// combined list is truncated from the tail to at most max entries.
//
// An empty result means the caller should download with QualityBest
// without prompting.
func QualityOptions(info *cache.MediaInfo, max int) []cache.QualityOption {
	if max <= 0 {
		max = DefaultMaxQualities
	}

	var video []cache.Format
	for _, f := range info.Formats {
		if f.HasVideo() && f.Height > 0 {
			video = append(video, f)
		}
	}
	sort.SliceStable(video, func(i, j int) bool {
		return video[i].Height > video[j].Height
	})

	var options []cache.QualityOption
	seen := make(map[int]bool)
	for _, f := range video {
		if seen[f.Height] {
			continue
		}
		seen[f.Height] = true
		options = append(options, cache.QualityOption{
			FormatID: f.FormatID,
			Height:   f.Height,
			Label:    fmt.Sprintf("%dp", f.Height),
			Size:     f.Size(),
			Ext:      coalesceExt(f.Ext, "mp4"),
		})
	}

	if best, ok := bestAudioFormat(info.Formats); ok {
		options = append(options, cache.QualityOption{
			FormatID:  best.FormatID,
			Height:    HeightAudio,
			Label:     "Audio only 🎵",
			Size:      best.Size(),
			Ext:       coalesceExt(best.Ext, "mp3"),
			AudioOnly: true,
		})
	}

	if len(options) > max {
		options = options[:max]
	}
	return options
}

// bestAudioFormat picks the audio-only format with the highest bitrate.
// A missing bitrate counts as zero.
func bestAudioFormat(formats []cache.Format) (cache.Format, bool) {
	var best cache.Format
	found := false
	for _, f := range formats {
		if f.HasVideo() || !f.HasAudio() {
			continue
		}
		if !found || f.ABR > best.ABR {
			best = f
			found = true
		}
	}
	return best, found
}

func coalesceExt(ext, def string) string {
	if ext != "" {
		return ext
	}
	return def
}
