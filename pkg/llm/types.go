package llm

import "context"

// Request carries the caller-facing inputs for one generation. The model
// identifier is client state and is injected into the wire request.
type Request struct {
	SystemInstruction string `json:"system_instruction"`
	UserPrompt        string `json:"user_prompt"`
}

// Generator is the seam the generation pipeline depends on. The production
// implementation is Client; tests and unconfigured deployments substitute
// their own.
type Generator interface {
	Generate(ctx context.Context, req Request) (text string, err error)
}

// GeminiRequest represents the generateContent API request format.
type GeminiRequest struct {
	SystemInstruction *GeminiContent  `json:"systemInstruction,omitempty"`
	Contents          []GeminiContent `json:"contents"`
}

// GeminiContent is a role-tagged list of parts.
type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

// GeminiPart is a single text part.
type GeminiPart struct {
	Text string `json:"text"`
}

// GeminiResponse represents the generateContent API response format.
type GeminiResponse struct {
	Candidates []GeminiCandidate `json:"candidates"`
}

// GeminiCandidate is one generated candidate.
type GeminiCandidate struct {
	Content      GeminiContent `json:"content"`
	FinishReason string        `json:"finishReason,omitempty"`
}
