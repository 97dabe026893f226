package cleaner

// FuncCleaner adapts a pure text transformation into a named Cleaner.
type FuncCleaner struct {
	name string
	fn   func(string) string
}

// Func wraps fn as a Cleaner called name. fn must be safe for concurrent use.
func Func(name string, fn func(string) string) *FuncCleaner {
	return &FuncCleaner{name: name, fn: fn}
}

// Clean applies the wrapped function. It never fails.
func (c *FuncCleaner) Clean(text string) (string, error) {
	return c.fn(text), nil
}

// Name returns the name given to Func.
func (c *FuncCleaner) Name() string {
	return c.name
}
