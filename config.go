package huffpack

// Format selects the artifact layout.
type Format uint8

const (
	// FormatCurrent prefixes the artifact with a magic and the original
	// byte count, so decoding stops exactly at the last symbol.
	FormatCurrent Format = iota
	// FormatLegacy is the headerless layout: root byte, tree, payload.
	// Padding bits may decode as extra symbols.
	FormatLegacy
)

func (f Format) String() string {
	switch f {
	case FormatCurrent:
		return "current"
	case FormatLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

const defaultMaxOutput = 1 << 30 // 1 GiB

// Config holds configuration for encoding and decoding.
type Config struct {
	Format         Format // Layout written by the encoder (default FormatCurrent)
	LegacyFallback bool   // Parse artifacts without a magic as legacy (default true)
	MaxOutput      uint64 // Largest original byte count a decoder accepts (0 = 1 GiB)
}

// Option is a functional option for configuring encoders and decoders.
type Option func(*Config)

// WithFormat sets the artifact layout written by the encoder.
func WithFormat(f Format) Option {
	return func(c *Config) {
		c.Format = f
	}
}

// WithLegacyFallback controls whether input without the current magic is
// decoded as a legacy artifact. When disabled such input fails with
// ErrUnknownFormat.
func WithLegacyFallback(enabled bool) Option {
	return func(c *Config) {
		c.LegacyFallback = enabled
	}
}

// WithMaxOutput limits the original byte count a decoder will accept.
func WithMaxOutput(n uint64) Option {
	return func(c *Config) {
		c.MaxOutput = n
	}
}

func newConfig(opts []Option) Config {
	cfg := Config{LegacyFallback: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func resolveMaxOutput(cfg Config) uint64 {
	if cfg.MaxOutput == 0 {
		return defaultMaxOutput
	}
	return cfg.MaxOutput
}
