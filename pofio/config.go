package pofio

import (
	"github.com/pofkit/pof/endian"
	"github.com/pofkit/pof/internal/options"
)

// Config holds the construction-time settings shared by Writer and
// Reader: the endian engine for fixed-width bodies and whether
// identity/reference tracking is active for this stream.
type Config struct {
	engine           endian.EndianEngine
	enableReferences bool
}

func newConfig(opts ...Option) *Config {
	cfg := &Config{engine: endian.GetBigEndianEngine()}
	_ = options.Apply(cfg, opts...)

	return cfg
}

// Option configures a Writer or Reader.
type Option = options.Option[*Config]

// WithEndian overrides the engine used for fixed-width bodies
// (float32/float64). The default is endian.GetBigEndianEngine().
func WithEndian(engine endian.EndianEngine) Option {
	return options.NoError(func(c *Config) {
		c.engine = engine
	})
}

// WithReferences turns on identity/reference tracking for the stream:
// a Writer consults an identity.Table before writing a reference-eligible
// value, and a Reader registers placeholders so cyclic graphs decode.
func WithReferences() Option {
	return options.NoError(func(c *Config) {
		c.enableReferences = true
	})
}
