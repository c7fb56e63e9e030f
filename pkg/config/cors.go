package config

import (
	"fmt"
	"strings"
)

const defaultCORSMaxAge = 300

type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowedOrigins"`
	MaxAge         int      `koanf:"maxAge"`
}

// String returns a string representation of the CORS configuration.
func (c *CORSConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- CORS ---\n")
	b.WriteString(fmt.Sprintf("  allowedOrigins: %s\n", strings.Join(c.AllowedOrigins, ", ")))
	b.WriteString(fmt.Sprintf("  maxAge: %d\n", c.MaxAge))
	return b.String()
}

func (c *CORSConfig) Validate() error {
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.MaxAge <= 0 {
		c.MaxAge = defaultCORSMaxAge
	}
	return nil
}
