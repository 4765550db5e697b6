// Package embeddings provides text embedding backends for the semantic
// index. The catalog is Thai-language content, so the configured model must
// handle multilingual input.
package embeddings

import "context"

// Embedder turns texts into dense vectors for similarity search.
type Embedder interface {
	// Embed generates one vector per input text, preserving order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the vector dimensionality of this model.
	Dimensions() int

	// Name returns the model identifier.
	Name() string
}
