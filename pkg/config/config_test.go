package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("X_STR", "value")
	t.Setenv("X_I64", "123")
	t.Setenv("X_BAD", "not-a-number")

	assert.Equal(t, "value", getEnvStr("X_STR", "def"))
	assert.Equal(t, "def", getEnvStr("X_UNSET", "def"))
	assert.Equal(t, int64(123), getEnvInt64("X_I64", 0))
	assert.Equal(t, int64(9), getEnvInt64("X_BAD", 9))
	assert.Equal(t, int64(9), getEnvInt64("X_UNSET", 9))
	assert.Equal(t, int32(123), getEnvInt32("X_I64", 0))
}

func TestProcessCookieURLs(t *testing.T) {
	assert.Empty(t, processCookieURLs(""))
	assert.Equal(t, []string{"https://a", "https://b"}, processCookieURLs("https://a,https://b"))
	assert.Equal(t, []string{"https://a", "https://b"}, processCookieURLs("https://a https://b"))
}

func TestValidateReportsMissing(t *testing.T) {
	c := &BotConfig{DownloadsDir: t.TempDir()}
	err := c.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_ID")
	assert.Contains(t, err.Error(), "TOKEN")
	assert.Contains(t, err.Error(), "MONGO_URI")
}

func TestValidateDefaults(t *testing.T) {
	c := &BotConfig{
		ApiId:        1,
		ApiHash:      "hash",
		Token:        "token",
		MongoUri:     "mongodb://localhost",
		DbName:       "db",
		DownloadsDir: t.TempDir(),
	}
	require.NoError(t, c.validate())
	assert.Equal(t, 6, c.MaxQualities)
}
