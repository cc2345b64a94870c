package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seedTranslations(t *testing.T) {
	t.Helper()
	old := translations
	translations = map[string]map[string]string{
		"en": {"greeting": "hello", "only_en": "english"},
		"es": {"greeting": "hola"},
	}
	t.Cleanup(func() { translations = old })
}

func TestGetString(t *testing.T) {
	seedTranslations(t)

	assert.Equal(t, "hola", GetString("es", "greeting"))
	assert.Equal(t, "hello", GetString("en", "greeting"))
}

func TestGetStringFallsBackToEnglish(t *testing.T) {
	seedTranslations(t)

	assert.Equal(t, "english", GetString("es", "only_en"))
	assert.Equal(t, "hello", GetString("zz", "greeting"))
}

func TestGetStringUnknownKey(t *testing.T) {
	seedTranslations(t)

	assert.Equal(t, "no_such_key", GetString("en", "no_such_key"))
}

func TestGetAvailableLangsSorted(t *testing.T) {
	seedTranslations(t)

	assert.Equal(t, []string{"en", "es"}, GetAvailableLangs())
}

func TestGetLangDisplayName(t *testing.T) {
	assert.Equal(t, "🇬🇧 English", GetLangDisplayName("en"))
	assert.Equal(t, "xx", GetLangDisplayName("xx"))
}
