package reflectcodec

import "github.com/pofkit/pof/internal/options"

// config holds NewCodec's construction-time settings.
type config struct {
	autoIndex bool
}

func newConfig(opts ...Option) *config {
	cfg := &config{}
	_ = options.Apply(cfg, opts...)

	return cfg
}

// Option configures a Codec built by NewCodec.
type Option = options.Option[*config]

// WithAutoIndex lets a `pof` tag omit its index (e.g. `pof:"name"`
// instead of `pof:"0,name"`); every field tagged this way is assigned
// an index by sorting its attributes' names and numbering them in that
// order from 0, skipping any index an explicitly-indexed attribute
// already holds. The
// default requires every tagged field to carry an explicit index and
// rejects the type with errs.ErrMissingIndex otherwise, since property
// order is normally part of the wire contract a reader and writer must
// agree on independently of either side's field declaration order.
func WithAutoIndex() Option {
	return options.NoError(func(c *config) {
		c.autoIndex = true
	})
}
