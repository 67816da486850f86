package cfgloader

// Options holds configuration options for Load and MustLoad.
type Options struct {
	// Silent disables config logging to stdout when set to true.
	Silent bool

	// Dir overrides the directory searched for ${ENVIRONMENT}.yaml files.
	// Defaults to ./config.
	Dir string
}

// Option is a functional option for configuring Load behavior.
type Option func(*Options)

// WithSilent disables config logging to stdout.
func WithSilent() Option {
	return func(o *Options) {
		o.Silent = true
	}
}

// WithDir sets the directory searched for config files.
func WithDir(dir string) Option {
	return func(o *Options) {
		o.Dir = dir
	}
}
