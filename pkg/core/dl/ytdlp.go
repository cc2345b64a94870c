package dl

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/big"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/matanjerbi/downloder-telegram-bot/pkg/config"
	"github.com/matanjerbi/downloder-telegram-bot/pkg/core/cache"
)

const (
	metadataTimeout = 60 * time.Second
	// socketTimeout bounds each network read inside the resolver so a
	// stalled connection cannot leak a download forever.
	socketTimeout = "30"
)

// DownloadOptions selects the profile for a download operation.
// Quality is QualityBest or a decimal height; AudioOnly overrides it.
type DownloadOptions struct {
	Quality   string
	AudioOnly bool
}

// FetchMetadata asks the resolver for structured metadata about a link.
// Restricted content is reported as ErrRestricted, anything else as
// ErrExtractionFailed.
func FetchMetadata(ctx context.Context, url string) (*cache.MediaInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, metadataTimeout)
	defer cancel()

	params := []string{
		"yt-dlp",
		"-J",
		"--no-warnings",
		"--skip-download",
		"--socket-timeout", socketTimeout,
	}
	params = appendAccessParams(params)
	params = append(params, url)

	// #nosec G204 - the parameters are constructed internally.
	cmd := exec.CommandContext(ctx, params[0], params[1:]...)
	output, err := cmd.Output()
	if err != nil {
		return nil, resolverError(ctx, err, ErrExtractionFailed)
	}

	var info cache.MediaInfo
	if err := json.Unmarshal(output, &info); err != nil {
		return nil, fmt.Errorf("%w: could not parse resolver metadata: %v", ErrExtractionFailed, err)
	}
	return &info, nil
}

// Download fetches the media behind url with the selected profile and
// returns the local artifact path. The context bounds the whole
// operation; the caller owns the returned file.
func Download(ctx context.Context, url string, opts DownloadOptions) (string, error) {
	params := BuildDownloadParams(url, opts)

	// #nosec G204 - the parameters are constructed internally.
	cmd := exec.CommandContext(ctx, params[0], params[1:]...)
	output, err := cmd.Output()
	if err != nil {
		return "", resolverError(ctx, err, ErrDownloadFailed)
	}

	path := lastNonEmptyLine(string(output))
	if path == "" {
		return "", fmt.Errorf("%w: the resolver reported no output path", ErrArtifactMissing)
	}
	return path, nil
}

// BuildDownloadParams constructs the resolver command line for a download.
func BuildDownloadParams(url string, opts DownloadOptions) []string {
	outputTemplate := filepath.Join(config.Conf.DownloadsDir, "%(title).50s-%(id)s.%(ext)s")

	params := []string{
		"yt-dlp",
		"--no-warnings",
		"--quiet",
		"--no-playlist",
		"--socket-timeout", socketTimeout,
		"--no-write-thumbnail",
		"--no-write-info-json",
		"-o", outputTemplate,
	}

	if opts.AudioOnly {
		params = append(params,
			"-f", "bestaudio/best",
			"-x",
			"--audio-format", "mp3",
			"--audio-quality", "192K",
		)
	} else {
		selector := "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"
		if opts.Quality != QualityBest && opts.Quality != "" {
			selector = fmt.Sprintf(
				"bestvideo[height<=%[1]s][ext=mp4]+bestaudio[ext=m4a]/best[height<=%[1]s][ext=mp4]/best",
				opts.Quality,
			)
		}
		params = append(params, "-f", selector, "--merge-output-format", "mp4")
	}

	params = appendAccessParams(params)
	params = append(params, url, "--print", "after_move:filepath")
	return params
}

// appendAccessParams adds cookie and proxy flags when configured.
func appendAccessParams(params []string) []string {
	if cookieFile := getCookieFile(); cookieFile != "" {
		params = append(params, "--cookies", cookieFile)
	} else if config.Conf.Proxy != "" {
		params = append(params, "--proxy", config.Conf.Proxy)
	}
	return params
}

// getCookieFile returns a randomly selected cookie file from the
// configured list, or "" when none are available.
func getCookieFile() string {
	cookiesPath := config.Conf.CookiesPath
	if len(cookiesPath) == 0 {
		return ""
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(cookiesPath))))
	if err != nil {
		log.Printf("Could not generate a random number: %v", err)
		return cookiesPath[0]
	}
	return cookiesPath[n.Int64()]
}

// resolverError converts an exec failure into the error taxonomy,
// inspecting stderr when the resolver exited with a status code.
// The context is consulted first: a canceled or expired context kills
// the subprocess, which then also reports an exit error.
func resolverError(ctx context.Context, err error, fallback error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: the resolver timed out", fallback)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return classifyResolverError(string(exitErr.Stderr), fallback)
	}
	return fmt.Errorf("%w: %v", fallback, err)
}

// ValidateArtifact checks that the artifact exists and respects the size
// ceiling. An oversized artifact is deleted before reporting
// ErrFileTooLarge; no upload must be attempted for it.
func ValidateArtifact(path string, maxSize int64) (int64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrArtifactMissing, path)
	}
	if maxSize > 0 && fi.Size() > maxSize {
		_ = os.Remove(path)
		return fi.Size(), fmt.Errorf("%w: %d bytes", ErrFileTooLarge, fi.Size())
	}
	return fi.Size(), nil
}

// Cleanup removes a downloaded artifact. Missing files are not an error;
// anything else is logged and swallowed, cleanup never fails a request.
func Cleanup(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to remove artifact %s: %v", path, err)
	}
}

// lastNonEmptyLine extracts the final printed line from resolver output.
// With post-processing enabled the resolver may print intermediate paths;
// the last one is the artifact's final location.
func lastNonEmptyLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
