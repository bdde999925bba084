package config

const (
	// False-positive rate used when none is given.
	DefaultErrorRate = 0.001
	// Capacity of the first filter when none is given.
	DefaultCapacity = 1000
	// Growth factor between consecutive filters of a scalable chain.
	DefaultExpansionRate = 2

	// Fraction of the previous filter's error budget each new filter keeps.
	// The first filter gets error * (1 - TighteningRatio).
	TighteningRatio = 0.9
)

// Options configures a scalable filter.
type Options struct {
	Capacity      int     `mapstructure:"capacity"`
	ErrorRate     float64 `mapstructure:"errorRate"`
	ExpansionRate int     `mapstructure:"expansionRate"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() *Options {
	return &Options{
		Capacity:      DefaultCapacity,
		ErrorRate:     DefaultErrorRate,
		ExpansionRate: DefaultExpansionRate,
	}
}

// WithDefaults returns a copy with zero fields replaced by their defaults.
// Negative or out-of-range values are kept so construction can reject them.
func (opts Options) WithDefaults() Options {
	if opts.Capacity == 0 {
		opts.Capacity = DefaultCapacity
	}
	if opts.ErrorRate == 0 {
		opts.ErrorRate = DefaultErrorRate
	}
	if opts.ExpansionRate == 0 {
		opts.ExpansionRate = DefaultExpansionRate
	}
	return opts
}
