package cache

// MediaInfo holds the metadata the resolver reports for a single link.
// Field names follow the resolver's JSON output.
type MediaInfo struct {
	Title          string   `json:"title"`
	Duration       float64  `json:"duration"`
	Uploader       string   `json:"uploader"`
	Channel        string   `json:"channel"`
	UploadDate     string   `json:"upload_date"`
	ViewCount      int64    `json:"view_count"`
	Extractor      string   `json:"extractor"`
	Filesize       int64    `json:"filesize"`
	FilesizeApprox int64    `json:"filesize_approx"`
	Formats        []Format `json:"formats"`
}

// Format describes one encoding the resolver offers for a media item.
// A codec value of "none" means the corresponding track is absent.
type Format struct {
	FormatID       string  `json:"format_id"`
	Height         int     `json:"height"`
	VCodec         string  `json:"vcodec"`
	ACodec         string  `json:"acodec"`
	ABR            float64 `json:"abr"`
	Ext            string  `json:"ext"`
	Filesize       int64   `json:"filesize"`
	FilesizeApprox int64   `json:"filesize_approx"`
}

// HasVideo reports whether the format carries a video track.
func (f Format) HasVideo() bool {
	return f.VCodec != "" && f.VCodec != "none"
}

// HasAudio reports whether the format carries an audio track.
func (f Format) HasAudio() bool {
	return f.ACodec != "" && f.ACodec != "none"
}

// Size returns the exact size when known, otherwise the resolver's estimate.
func (f Format) Size() int64 {
	if f.Filesize > 0 {
		return f.Filesize
	}
	return f.FilesizeApprox
}

// QualityOption is one selectable download profile offered to the user.
// Height 0 is reserved for the audio-only option.
type QualityOption struct {
	FormatID  string
	Height    int
	Label     string
	Size      int64
	Ext       string
	AudioOnly bool
}

// BestSize returns the most useful size estimate for the whole item:
// the item-level size if the resolver reports one, otherwise the first
// format with a known exact size.
func (m *MediaInfo) BestSize() int64 {
	if m.Filesize > 0 {
		return m.Filesize
	}
	if m.FilesizeApprox > 0 {
		return m.FilesizeApprox
	}
	for _, f := range m.Formats {
		if f.Filesize > 0 {
			return f.Filesize
		}
	}
	return 0
}

// UploaderName returns the uploader, falling back to the channel name.
func (m *MediaInfo) UploaderName() string {
	if m.Uploader != "" {
		return m.Uploader
	}
	return m.Channel
}
