// Package embedder provides text embedding clients for vector
// representations of article titles and topics.
//
// The Client interface abstracts the provider; the OpenAI implementation
// covers text-embedding-3-small and compatible endpoints. Failures are
// expected and callers treat a nil vector as "unscored" rather than fatal.
//
// # Usage
//
//	client := embedder.NewOpenAIClient(embedder.Config{
//	    APIKey: apiKey,
//	    Model:  "text-embedding-3-small",
//	})
//	vec, err := client.EmbedSingle(ctx, "tariff dispute escalates")
//
// Wrap the client with NewCircuitBreakerClient to stop hammering a provider
// that is consistently failing.
package embedder
