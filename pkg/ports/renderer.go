package ports

// Renderer turns a render context into a response body. The host's
// template layer lives behind this interface; the engine only
// produces contexts, never markup.
type Renderer interface {
	Render(templateID string, data any) ([]byte, error)
}
