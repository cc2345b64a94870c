package config

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Laky-64/gologging"
)

var cookiesDir = "cookies"

// saveCookiesFromEnv writes a cookies.txt from the YOUTUBE_COOKIES_BASE64
// environment variable when it is set. Hosted deployments cannot ship a
// cookie file, so the material travels base64-encoded in the environment.
// It returns the file path, or "" when the variable is absent.
func saveCookiesFromEnv() (string, error) {
	encoded := os.Getenv("YOUTUBE_COOKIES_BASE64")
	if encoded == "" {
		return "", nil
	}

	content, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("failed to decode YOUTUBE_COOKIES_BASE64: %w", err)
	}

	path := "cookies.txt"
	if err := os.WriteFile(path, content, 0600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	gologging.InfoF("Cookies were created from the environment.")
	return path, nil
}

// fetchContent downloads content from Pastebin or Batbin.
// It returns the content of the URL as a string and an error if any.
func fetchContent(url string) (string, error) {
	parts := strings.Split(strings.Trim(url, "/"), "/")
	id := parts[len(parts)-1]

	var rawURL string
	if strings.Contains(url, "pastebin.com") {
		rawURL = fmt.Sprintf("https://pastebin.com/raw/%s", id)
	} else {
		rawURL = fmt.Sprintf("https://batbin.me/raw/%s", id)
	}

	resp, err := http.Get(rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to GET %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read body from %s: %w", rawURL, err)
	}

	return string(body), nil
}

// saveContent saves content to a file under the cookies dir and returns the file path.
func saveContent(url, content string) (string, error) {
	parts := strings.Split(strings.Trim(url, "/"), "/")
	filename := parts[len(parts)-1]
	if filename == "" {
		filename = "file_" + strings.ReplaceAll(strings.Split(strings.ReplaceAll(url, "/", "_"), "?")[0], "#", "")
	}
	filename += ".txt"

	filePath := filepath.Join(cookiesDir, filename)
	// #nosec G304
	f, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", filePath, err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", filePath, err)
	}

	return filePath, nil
}

// saveAllCookies downloads all URLs and stores paths in Conf.CookiesPath.
func saveAllCookies(urls []string) {
	for _, url := range urls {
		content, err := fetchContent(url)
		if err != nil {
			gologging.WarnF("Error fetching cookies: %v", err)
			continue
		}

		path, err := saveContent(url, content)
		if err != nil {
			gologging.WarnF("Error saving cookies: %v", err)
			continue
		}

		Conf.CookiesPath = append(Conf.CookiesPath, path)
	}
}
