package dl

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRestricted marks content that requires authentication at the source.
	ErrRestricted = errors.New("restricted content")
	// ErrExtractionFailed marks an unsupported source or a transient metadata failure.
	ErrExtractionFailed = errors.New("extraction failed")
	// ErrDownloadFailed is the generic download failure.
	ErrDownloadFailed = errors.New("download failed")
	// ErrFileTooLarge marks an artifact exceeding the upload ceiling.
	ErrFileTooLarge = errors.New("file exceeds the upload limit")
	// ErrArtifactMissing marks a download that reported success with no file on disk.
	ErrArtifactMissing = errors.New("downloaded file not found")
)

// restrictedMarkers are the resolver's tell-tales for content hidden
// behind a login or privacy wall.
var restrictedMarkers = []string{"private", "login", "sign in"}

// classifyResolverError maps resolver stderr output onto the error
// taxonomy. Restricted content is reported distinctly; everything else
// wraps the given fallback with a bounded amount of detail.
func classifyResolverError(stderr string, fallback error) error {
	lower := strings.ToLower(stderr)
	for _, marker := range restrictedMarkers {
		if strings.Contains(lower, marker) {
			return fmt.Errorf("%w: %s", ErrRestricted, errDetail(stderr))
		}
	}
	return fmt.Errorf("%w: %s", fallback, errDetail(stderr))
}

// errDetail reduces multi-line resolver output to a single bounded line.
func errDetail(stderr string) string {
	detail := strings.TrimSpace(stderr)
	if i := strings.IndexByte(detail, '\n'); i >= 0 {
		detail = detail[:i]
	}
	if r := []rune(detail); len(r) > 100 {
		detail = string(r[:100])
	}
	if detail == "" {
		detail = "no further detail"
	}
	return detail
}
