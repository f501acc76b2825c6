package llm

import (
	"context"
)

// LLMClient generates a completion for a single prompt. The genotype parser
// uses it to place free-text picks its grammar does not know.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const (
	systemPrompt = "You map reptile morph descriptions to gene catalog keys. Answer with JSON only."
	maxTokens    = 1024
)
