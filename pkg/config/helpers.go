package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// getEnvStr retrieves a string from an environment variable or returns a default value.
// It returns the value of the environment variable if it exists, otherwise it returns the default value.
func getEnvStr(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

// getEnvInt64 retrieves an int64 from an environment variable or returns a default value.
// It returns the value of the environment variable if it exists and is a valid int64, otherwise it returns the default value.
func getEnvInt64(key string, def int64) int64 {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	i, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return def
	}
	return i
}

// getEnvInt32 retrieves an int32 from an environment variable or returns a default value.
// It returns the value of the environment variable if it exists and is a valid int32, otherwise it returns the default value.
func getEnvInt32(key string, def int32) int32 {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	i, err := strconv.ParseInt(val, 10, 32)
	if err != nil {
		return def
	}
	return int32(i)
}

// processCookieURLs processes a string of cookie URLs into a slice of strings.
func processCookieURLs(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Fields(strings.ReplaceAll(value, ",", " "))
	var urls []string
	for _, u := range parts {
		if u != "" {
			urls = append(urls, strings.TrimSpace(u))
		}
	}
	return urls
}

// containsInt checks if a slice of int64 contains a specific value.
func containsInt(list []int64, x int64) bool {
	for _, v := range list {
		if v == x {
			return true
		}
	}
	return false
}

// validate checks if the bot configuration is valid.
// Missing startup credentials are the only fatal condition in the process.
func (c *BotConfig) validate() error {
	var missing []string
	if c.ApiId == 0 {
		missing = append(missing, "API_ID")
	}
	if c.ApiHash == "" {
		missing = append(missing, "API_HASH")
	}
	if c.Token == "" {
		missing = append(missing, "TOKEN")
	}
	if c.MongoUri == "" {
		missing = append(missing, "MONGO_URI")
	}
	if c.DbName == "" {
		missing = append(missing, "DB_NAME")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}

	if c.MaxQualities <= 0 {
		c.MaxQualities = 6
	}

	if err := os.MkdirAll(c.DownloadsDir, 0750); err != nil {
		return fmt.Errorf("failed to create downloads dir: %v", err)
	}

	return nil
}
