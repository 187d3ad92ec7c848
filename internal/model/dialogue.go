package model

// Exchange is one speaker-tagged line of a generated dialogue.
type Exchange struct {
	Speaker string `json:"speaker"`
	Line    string `json:"line"`
	Korean  string `json:"korean"`
}

// Dialogue is a generated A/B role-play scene.
type Dialogue struct {
	Title     string     `json:"title"`
	Situation string     `json:"situation"`
	Exchanges []Exchange `json:"exchanges"`
}

// TransformResult is the complete bundle produced by one generation call.
type TransformResult struct {
	SummaryKo string   `json:"summary_ko"`
	SummaryEn string   `json:"summary_en"`
	Dialogue  Dialogue `json:"dialogue"`
}

// TransformOutcome is what a transform request returns to the caller:
// the result bundle, the user's remaining credits, and whether the result
// came from the stored copy.
type TransformOutcome struct {
	Result           TransformResult
	CreditsRemaining int
	Cached           bool
}
