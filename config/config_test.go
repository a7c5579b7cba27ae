package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5250", cfg.Server.Port)
	assert.Equal(t, 1500, cfg.Contact.DelayMS)
	assert.Equal(t, 1500*time.Millisecond, cfg.ContactDelay())
	assert.Equal(t, 1280, cfg.Scene.DefaultWidth)
	assert.True(t, cfg.AllowAllOrigins())
	assert.Equal(t, time.Hour, cfg.Contact.Retention)
	assert.Equal(t, time.Minute, cfg.Contact.SweepInterval)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("CONTACT_DELAY_MS", "10")
	t.Setenv("CORS_ORIGINS", "https://www.sipkagroup.nz,https://sipkagroup.nz")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Millisecond, cfg.ContactDelay())
	assert.Equal(t, []string{"https://www.sipkagroup.nz", "https://sipkagroup.nz"}, cfg.Server.CORSOrigins)
	assert.False(t, cfg.AllowAllOrigins())
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Setenv("CONTACT_WORKERS", "many")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestOutboundLinks(t *testing.T) {
	links := OutboundLinks()
	require.Len(t, links, 1+len(Company.Partners))
	assert.Equal(t, Company.ClientPortalURL, links[0])
}

func TestTelHref(t *testing.T) {
	assert.Equal(t, "tel:+6491234567", TelHref("+64 9 123 4567"))
}
