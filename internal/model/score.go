package model

// NeutralScore is the midpoint of the 1-7 scale, used when a group has no
// responses and as the default for missing answers.
const NeutralScore = 4.0

// ChannelScore holds the scores for one channel
type ChannelScore struct {
	Name    string             `json:"name"`    // display name, ordinal prefix stripped
	Score   float64            `json:"score"`   // unweighted mean of factor scores
	Factors map[string]float64 `json:"factors"` // factor code -> mean of normalized answers
}

// ScoreReport is the full set of scores derived from one session's responses.
// It is ephemeral: recomputed on every request, never persisted or cached.
type ScoreReport struct {
	Channels       map[string]ChannelScore `json:"channels"` // keyed by raw channel label
	FactorsSummary map[string]float64      `json:"factorsSummary"`
	TotalScore     float64                 `json:"totalScore"`
	ResponseCount  int                     `json:"responseCount"`
	TotalQuestions int                     `json:"totalQuestions"`
	CompletionRate float64                 `json:"completionRate"`
}
