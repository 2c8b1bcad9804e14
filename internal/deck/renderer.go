package deck

// BuiltSlide is an opaque handle to a slide produced by a rendering backend.
type BuiltSlide interface {
	// Describe returns a short human-readable summary of the built slide.
	Describe() string
}

// Renderer turns compiled slide configs into built slides. The compiler never
// calls a Renderer; the orchestrating host composes the two.
type Renderer interface {
	BuildSlide(index int, slide *SlideConfig) (BuiltSlide, error)
}
