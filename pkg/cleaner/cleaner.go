// Package cleaner provides interfaces and building blocks for text cleaning
// passes. Passes are composed into pipelines with NewChain.
package cleaner

// Cleaner transforms text into a cleaner form.
type Cleaner interface {
	// Clean transforms the input text. Implementations must be safe for
	// concurrent use and must not retain the input.
	Clean(text string) (string, error)

	// Name returns the cleaner type for logging/debugging.
	Name() string
}
