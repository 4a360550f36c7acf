// Package options implements the generic functional-options pattern used by
// pngb.Builder.FinalizeWithOptions (WithExecutor, WithPlugins) to configure
// how a PNGB container is finalized without a combinatorial explosion of
// Finalize variants. The pattern itself has no PNGB-specific surface to
// carry — Option[T]/Func[T] are type parameters over an arbitrary config
// struct, not over anything the wire format defines — so this package stays
// a single, type-agnostic utility shared by any future config struct that
// needs the same opts... shape.
package options

// Option represents a functional option for configuring any type T.
// This is a generic interface that can be used with any type.
type Option[T any] interface {
	apply(T) error
}

// Func is a generic functional option that wraps a function.
// It implements the Option interface for any type T.
type Func[T any] struct {
	applyFunc func(T) error
}

// apply implements the Option interface.
func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New creates a new functional option from a function.
// This is the generic factory function for creating options.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// Apply applies multiple options to a target object, in order. Builder.
// FinalizeWithOptions calls this once against a finalizeConfig populated
// by WithExecutor/WithPlugins before serializing the container.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}

// NoError creates a functional option from a function that doesn't return an error.
// This is a convenience function for options that can't fail. Both of
// pngb's finalize options (WithExecutor, WithPlugins) are built with this,
// since neither one can fail on valid input.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}
