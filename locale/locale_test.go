package locale

import (
	"os"
	"testing"

	"github.com/Strum355/log"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	log.InitSimpleLogger(&log.Config{Output: os.Stdout})
	os.Exit(m.Run())
}

func TestLoad(t *testing.T) {
	m := Load("fr")
	assert.Equal(t, french, m)

	m = Load("en")
	assert.Equal(t, english, m)
}

func TestLoad_CaseInsensitive(t *testing.T) {
	assert.Equal(t, french, Load("FR"))
}

func TestLoad_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, english, Load("de"))
	assert.Equal(t, english, Load(""))
}

func TestSupported(t *testing.T) {
	assert.ElementsMatch(t, []string{"en", "fr"}, Supported())
}

func TestCatalogsComplete(t *testing.T) {
	for code, m := range catalogs {
		assert.NotEmpty(t, m.NothingPlaying, "locale %s", code)
		assert.NotEmpty(t, m.VoiceChannelNeeded, "locale %s", code)
		assert.NotEmpty(t, m.DestroyedPlayerDescription, "locale %s", code)
	}
}
