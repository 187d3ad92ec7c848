package model

import "context"

// Generator converts memo text into a learning-content bundle via an
// external text-generation service.
type Generator interface {
	Generate(ctx context.Context, sourceText string) (TransformResult, error)
}

// Synthesizer renders dialogue exchanges as one concatenated audio stream.
type Synthesizer interface {
	Synthesize(ctx context.Context, exchanges []Exchange) ([]byte, error)
}

// LinkMetadata holds parsed title and description of a linked page.
type LinkMetadata struct {
	Title       string
	Description string
}

// LinkParser fetches metadata for a URL. Fetch failures degrade to a
// fallback value instead of an error.
type LinkParser interface {
	Parse(ctx context.Context, url string) LinkMetadata
}

// AudioResult is what an audio-generation request returns: a playable
// presigned URL and whether synthesis was skipped for a stored file.
type AudioResult struct {
	URL    string
	Cached bool
}
