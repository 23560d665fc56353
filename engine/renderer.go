package engine

import "encoding/json"

// Renderer serializes handler payloads. Each application instance carries
// exactly one renderer; response construction helpers compose the content
// type from MediaType and Charset.
type Renderer interface {
	Render(req Request, payload any, statusCode int) ([]byte, error)
	MediaType() string
	Charset() string
}

// JSONRenderer is the default renderer.
type JSONRenderer struct{}

func (JSONRenderer) Render(_ Request, payload any, _ int) ([]byte, error) {
	return json.Marshal(payload)
}

func (JSONRenderer) MediaType() string { return "application/json" }

func (JSONRenderer) Charset() string { return "utf-8" }
