// Package oracle wraps the external language-understanding service
// behind a validating classifier: one structured-output request per
// attempt, schema validation on receipt, retry on malformed output.
package oracle

import "context"

// LLMClient is the minimal surface the classifier needs from a
// provider: a single structured-output completion.
type LLMClient interface {
	// CompleteWithSchema sends one request constrained to the given
	// JSON schema and returns the raw response text.
	CompleteWithSchema(ctx context.Context, systemPrompt, userPrompt, jsonSchema string) (string, error)
}

// ClientFactory builds a request-scoped client. The classifier invokes
// it once per Classify call so credentials and model settings are bound
// per request; no process-wide mutable handle exists.
type ClientFactory func() LLMClient
