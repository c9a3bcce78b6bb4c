// Package config reads the environment-wide configuration values the
// pipeline's external collaborators need (Tika's host/port, the paths to the
// xdg-mime and wkhtmltopdf binaries). There is no file or flag layer here:
// every value is an environment variable with a sensible default, consistent
// with how these collaborators are configured in every deployment the
// pipeline runs in.
package config

import "os"

// Config resolves the environment variables the pipeline's service
// collaborators depend on. It is a thin struct rather than a package of free
// functions so tests can construct one with Lookup overridden.
type Config struct {
	// Lookup resolves an environment variable by name. Defaults to
	// os.LookupEnv; tests may override it.
	Lookup func(key string) (string, bool)
}

// New returns a Config backed by the process environment.
func New() *Config {
	return &Config{Lookup: os.LookupEnv}
}

// Get returns the value of key, or ok=false if it is unset.
func (c *Config) Get(key string) (string, bool) {
	if c.Lookup == nil {
		return os.LookupEnv(key)
	}
	return c.Lookup(key)
}

// GetOr returns the value of key, or def if it is unset.
func (c *Config) GetOr(key, def string) string {
	if v, ok := c.Get(key); ok {
		return v
	}
	return def
}

// TikaHost returns the TIKA_HOST value, defaulting to localhost.
func (c *Config) TikaHost() string { return c.GetOr("TIKA_HOST", "localhost") }

// TikaPort returns the TIKA_PORT value, defaulting to 9998.
func (c *Config) TikaPort() string { return c.GetOr("TIKA_PORT", "9998") }

// XdgMimeBinary returns the path to the xdg-mime binary, defaulting to
// resolving "xdg-mime" on PATH.
func (c *Config) XdgMimeBinary() string { return c.GetOr("XDG_MIME_BIN", "xdg-mime") }

// WkhtmltopdfBinary returns the path to the wkhtmltopdf binary, defaulting
// to resolving "wkhtmltopdf" on PATH.
func (c *Config) WkhtmltopdfBinary() string { return c.GetOr("WKHTMLTOPDF_BIN", "wkhtmltopdf") }
