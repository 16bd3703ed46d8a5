// Package ai defines the contract the scoring pipeline has with the external
// language-model service: a prompt goes in, text expected to contain a JSON
// array comes out. Everything else about the provider is its own business.
package ai

import "context"

// Generator produces one text completion per prompt.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}
