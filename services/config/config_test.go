package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fakeConfig(values map[string]string) *Config {
	return &Config{Lookup: func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}}
}

func TestConfig_ReturnsOverriddenValues(t *testing.T) {
	c := fakeConfig(map[string]string{
		"TIKA_HOST":       "tika.internal",
		"TIKA_PORT":       "9999",
		"XDG_MIME_BIN":    "/opt/bin/xdg-mime",
		"WKHTMLTOPDF_BIN": "/opt/bin/wkhtmltopdf",
	})

	assert.Equal(t, "tika.internal", c.TikaHost())
	assert.Equal(t, "9999", c.TikaPort())
	assert.Equal(t, "/opt/bin/xdg-mime", c.XdgMimeBinary())
	assert.Equal(t, "/opt/bin/wkhtmltopdf", c.WkhtmltopdfBinary())
}

func TestConfig_FallsBackToDefaultsWhenUnset(t *testing.T) {
	c := fakeConfig(nil)

	assert.Equal(t, "localhost", c.TikaHost())
	assert.Equal(t, "9998", c.TikaPort())
	assert.Equal(t, "xdg-mime", c.XdgMimeBinary())
	assert.Equal(t, "wkhtmltopdf", c.WkhtmltopdfBinary())
}
