package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Laky-64/gologging"
	"github.com/joho/godotenv"
)

// BotConfig holds the configuration for the bot.
type BotConfig struct {
	ApiId           int32         // ApiId is the Telegram API ID.
	ApiHash         string        // ApiHash is the Telegram API hash.
	Token           string        // Token is the bot token.
	MongoUri        string        // MongoUri is the MongoDB connection string.
	DbName          string        // DbName is the name of the database.
	OwnerId         int64         // OwnerId is the user ID of the bot owner.
	LoggerId        int64         // LoggerId is the chat ID used for startup notices.
	SupportGroup    string        // SupportGroup is the Telegram group link.
	SupportChannel  string        // SupportChannel is the Telegram channel link.
	Proxy           string        // Proxy is the proxy URL passed to the resolver.
	DownloadsDir    string        // DownloadsDir is the directory where downloads are stored.
	MaxFileSize     int64         // MaxFileSize is the upload ceiling for delivered artifacts.
	StreamableSize  int64         // StreamableSize is the ceiling for streaming video messages.
	MaxQualities    int           // MaxQualities bounds the quality option list.
	DownloadTimeout time.Duration // DownloadTimeout bounds one download operation end to end.
	DEVS            []int64       // DEVS is a list of developer user IDs.
	CookiesPath     []string      // CookiesPath is a list of paths to resolver cookie files.
	cookiesUrl      []string      // cookiesUrl is a list of URLs to cookie files.
}

// Conf is the global configuration for the bot.
var Conf *BotConfig

// LoadConfig loads the configuration from environment variables and sets
// the global Conf. It also validates the configuration and prepares
// resolver cookies if any are provided.
func LoadConfig() error {
	_ = godotenv.Load()

	Conf = &BotConfig{
		ApiId:           getEnvInt32("API_ID", 0),
		ApiHash:         os.Getenv("API_HASH"),
		Token:           os.Getenv("TOKEN"),
		MongoUri:        os.Getenv("MONGO_URI"),
		DbName:          getEnvStr("DB_NAME", "DownloaderBot"),
		OwnerId:         getEnvInt64("OWNER_ID", 0),
		LoggerId:        getEnvInt64("LOGGER_ID", 0),
		SupportGroup:    getEnvStr("SUPPORT_GROUP", "https://t.me/GuardxSupport"),
		SupportChannel:  getEnvStr("SUPPORT_CHANNEL", "https://t.me/FallenProjects"),
		Proxy:           os.Getenv("PROXY_URL"),
		DownloadsDir:    getEnvStr("DOWNLOADS_DIR", "downloads"),
		MaxFileSize:     getEnvInt64("MAX_FILE_SIZE", 2*1024*1024*1024),
		StreamableSize:  getEnvInt64("STREAMABLE_SIZE", 50*1024*1024),
		MaxQualities:    int(getEnvInt64("MAX_QUALITIES", 6)),
		DownloadTimeout: time.Duration(getEnvInt64("DOWNLOAD_TIMEOUT", 600)) * time.Second,
		cookiesUrl:      processCookieURLs(os.Getenv("COOKIES_URL")),
	}

	// Parse DEVS list
	devsEnv := os.Getenv("DEVS")
	if devsEnv != "" {
		for _, idStr := range strings.Fields(devsEnv) {
			if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
				Conf.DEVS = append(Conf.DEVS, id)
			}
		}
	}
	if Conf.OwnerId != 0 && !containsInt(Conf.DEVS, Conf.OwnerId) {
		Conf.DEVS = append(Conf.DEVS, Conf.OwnerId)
	}

	if err := Conf.validate(); err != nil {
		return err
	}

	if path, err := saveCookiesFromEnv(); err != nil {
		gologging.WarnF("Could not prepare cookies from the environment: %v", err)
	} else if path != "" {
		Conf.CookiesPath = append(Conf.CookiesPath, path)
	}

	if len(Conf.cookiesUrl) > 0 {
		if err := os.MkdirAll(cookiesDir, 0750); err != nil {
			return fmt.Errorf("failed to create the cookies dir: %w", err)
		}
		gologging.InfoF("Saving cookies...")
		go saveAllCookies(Conf.cookiesUrl)
	}
	return nil
}
