package format

// Option is a functional option for configuring an Engine.
type Option func(*Engine)

// WithFontCatalog sets the families accepted by FontFamily attributes.
func WithFontCatalog(c *FontCatalog) Option {
	return func(e *Engine) {
		if c != nil {
			e.catalog = c
		}
	}
}

// WithSizeRange sets the inclusive range of accepted font sizes.
func WithSizeRange(minSize, maxSize int) Option {
	return func(e *Engine) {
		if minSize > 0 && minSize <= maxSize {
			e.minSize = minSize
			e.maxSize = maxSize
		}
	}
}

// WithDefaultsObserver registers fn to be called after the defaults change.
func WithDefaultsObserver(fn func(Defaults)) Option {
	return func(e *Engine) {
		e.onDefaults = fn
	}
}
