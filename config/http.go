package config

// HTTPConfig defines the listen address of the derived-state HTTP surface.
type HTTPConfig struct {
	Addr string `json:"addr"`
	// Enabled gates the server entirely; the one-shot CLI commands run
	// without it.
	Enabled bool `json:"enabled"`
}

// SetDefaults applies sane defaults.
func (c *HTTPConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}
