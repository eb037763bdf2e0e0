package llm

import "context"

// Completer is the single entry point to a language model provider. The
// returned text must never be trusted to be valid JSON; callers validate.
type Completer interface {
	Complete(ctx context.Context, system, prompt string, maxTokens int) (string, error)
	ModelName() string
}

const CuratorSystemPrompt = `You are an editorial AI assistant helping curate a personal morning digest. You will be given a user profile and a set of content items from various sources. Your job is to score each item for relevance to the user's interests and return structured JSON. Be strict: only high-quality, specific, relevant items should score above 0.7. General news filler, clickbait, or off-topic items should score below 0.5.`

const EditorSystemPrompt = `You are a concise, friendly assistant writing a personal morning digest. Write in plain English. No hype, no filler. Be direct and specific. Use bullet points. Do not exceed the requested length.`
