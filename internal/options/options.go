// Package options implements the functional option pattern shared by the
// configurable entry points of this module: suggestion queries, archive
// ingestion and the HTTP server.
//
// An Option[T] mutates a package-private config struct and may fail, so
// option validation lives next to the option instead of being spread over
// the constructors:
//
//	cfg := defaultConfig()
//	if err := options.Apply(cfg, opts...); err != nil {
//	    return nil, err
//	}
package options

// Option configures a value of type T and reports an invalid setting.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a plain function to the Option interface.
type Func[T any] struct {
	applyFunc func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New wraps a fallible configuration function into an option.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// Apply runs opts against target in order, stopping at the first error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}

// NoError wraps an infallible configuration function into an option.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}
